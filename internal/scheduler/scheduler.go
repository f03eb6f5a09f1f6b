package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"ojolmate-backend/internal/alerts"
	"ojolmate-backend/internal/models"
	"ojolmate-backend/internal/notify"
)

// Background check identifiers handed to the platform task registration.
const (
	TaskFuelAlert    = "FUEL_ALERT_TASK"
	TaskServiceAlert = "SERVICE_ALERT_TASK"
)

// Trigger slots, one per check type.
const (
	triggerFuelCheck    = "fuel-check"
	triggerServiceCheck = "service-check"
)

type Config struct {
	// FuelCheckInterval is the self-reschedule delay while the fuel-low condition
	// persists.
	FuelCheckInterval time.Duration
	// ServiceCheckHour/Minute is the daily wall-clock time of the service check.
	ServiceCheckHour   int
	ServiceCheckMinute int

	FuelTaskInterval    time.Duration
	ServiceTaskInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		FuelCheckInterval:   5 * time.Minute,
		ServiceCheckHour:    8,
		ServiceCheckMinute:  0,
		FuelTaskInterval:    5 * time.Minute,
		ServiceTaskInterval: 3 * time.Hour,
	}
}

// Scheduler owns the triggers that re-run alert derivation outside the foreground
// lifetime. The fuel check is a self-rescheduling one-shot: it re-arms only while
// a fuel alert keeps being derived, and the chain terminates otherwise until a new
// fuel log re-initiates it. The service check is a fixed daily trigger that the
// platform's repeat semantics keep armed.
type Scheduler struct {
	engine     *alerts.Engine
	store      *alerts.Store
	dispatcher *notify.Dispatcher
	platform   notify.Platform
	cfg        Config

	mu sync.Mutex
	// pending trigger handles, empty when a check is not armed
	fuelTrigger    string
	serviceTrigger string
	// service alerts already surfaced this process lifetime
	notified map[int64]bool

	now func() time.Time
}

func New(engine *alerts.Engine, store *alerts.Store, dispatcher *notify.Dispatcher, platform notify.Platform, cfg Config) *Scheduler {
	if cfg.FuelCheckInterval <= 0 {
		cfg.FuelCheckInterval = DefaultConfig().FuelCheckInterval
	}
	return &Scheduler{
		engine:     engine,
		store:      store,
		dispatcher: dispatcher,
		platform:   platform,
		cfg:        cfg,
		notified:   make(map[int64]bool),
		now:        time.Now,
	}
}

// Start registers routing handlers and background tasks, then arms both checks.
func (s *Scheduler) Start(ctx context.Context) error {
	s.dispatcher.Handle(notify.EventFuelCheckRun, s.RunFuelCheck)
	s.dispatcher.Handle(notify.EventServiceCheckRun, s.RunServiceCheck)

	s.dispatcher.RequestPermission(ctx)
	if _, err := s.dispatcher.EnsureChannel(ctx); err != nil {
		log.Printf("Failed to create notification channel: %v", err)
	}

	fuelTask := notify.TaskConfig{
		TaskID:          TaskFuelAlert,
		Periodic:        true,
		StopOnTerminate: false,
		StartOnBoot:     true,
		MinimumInterval: s.cfg.FuelTaskInterval,
	}
	if err := s.platform.RegisterTask(fuelTask, s.runTask); err != nil {
		return err
	}

	serviceTask := notify.TaskConfig{
		TaskID:          TaskServiceAlert,
		Periodic:        true,
		StopOnTerminate: false,
		StartOnBoot:     true,
		MinimumInterval: s.cfg.ServiceTaskInterval,
	}
	if err := s.platform.RegisterTask(serviceTask, s.runTask); err != nil {
		return err
	}

	if err := s.ArmFuelCheck(ctx, s.cfg.FuelCheckInterval); err != nil {
		log.Printf("Failed to arm fuel check: %v", err)
	}
	if err := s.ArmDailyServiceCheck(ctx); err != nil {
		log.Printf("Failed to arm daily service check: %v", err)
	}
	return nil
}

// ArmFuelCheck schedules the next fuel check after delay, replacing any pending
// fuel-check trigger: arming is an explicit cancel-if-present then create.
func (s *Scheduler) ArmFuelCheck(ctx context.Context, delay time.Duration) error {
	s.mu.Lock()
	prev := s.fuelTrigger
	s.mu.Unlock()

	if prev != "" {
		if err := s.platform.CancelTriggerNotification(ctx, prev); err != nil {
			log.Printf("Failed to cancel pending fuel check trigger: %v", err)
		}
	}

	n := notify.Notification{
		ID:    triggerFuelCheck,
		Title: "Fuel check",
		Body:  "Checking predicted fuel range...",
		Data:  map[string]string{notify.DataTypeKey: notify.EventFuelCheckRun},
	}
	id, err := s.platform.CreateTriggerNotification(ctx, n, notify.Trigger{
		Timestamp: s.now().Add(delay),
		Exact:     true,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.fuelTrigger = id
	s.mu.Unlock()
	return nil
}

// KickFuelCheck re-initiates the fuel check chain, typically after a fuel log
// write terminated it.
func (s *Scheduler) KickFuelCheck(ctx context.Context) {
	if err := s.ArmFuelCheck(ctx, s.cfg.FuelCheckInterval); err != nil {
		log.Printf("Failed to re-arm fuel check: %v", err)
	}
}

// ArmDailyServiceCheck schedules the repeating service check at the configured
// wall-clock time. The platform's daily repeat keeps it armed afterwards.
func (s *Scheduler) ArmDailyServiceCheck(ctx context.Context) error {
	s.mu.Lock()
	prev := s.serviceTrigger
	s.mu.Unlock()

	if prev != "" {
		if err := s.platform.CancelTriggerNotification(ctx, prev); err != nil {
			log.Printf("Failed to cancel pending service check trigger: %v", err)
		}
	}

	n := notify.Notification{
		ID:    triggerServiceCheck,
		Title: "Service check",
		Body:  "Checking scheduled services...",
		Data:  map[string]string{notify.DataTypeKey: notify.EventServiceCheckRun},
	}
	id, err := s.platform.CreateTriggerNotification(ctx, n, notify.Trigger{
		Timestamp: nextDailyOccurrence(s.now(), s.cfg.ServiceCheckHour, s.cfg.ServiceCheckMinute),
		Repeat:    notify.RepeatDaily,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.serviceTrigger = id
	s.mu.Unlock()
	return nil
}

// RunFuelCheck derives alerts and, while a fuel alert persists, displays it and
// re-arms the next check. Without a fuel alert the chain terminates.
func (s *Scheduler) RunFuelCheck(ctx context.Context) error {
	derived, err := s.engine.Derive(ctx)
	if err != nil {
		return err
	}

	var fuel *models.Alert
	for i := range derived {
		if derived[i].Type == models.AlertTypeFuel {
			fuel = &derived[i]
			break
		}
	}

	if fuel == nil {
		s.disarmFuelCheck(ctx)
		return nil
	}

	s.store.Upsert(ctx, *fuel)
	s.dispatcher.Show(ctx, "Fuel alert", fuel.Message, map[string]string{"route": "Alerts"})

	return s.ArmFuelCheck(ctx, s.cfg.FuelCheckInterval)
}

func (s *Scheduler) disarmFuelCheck(ctx context.Context) {
	s.mu.Lock()
	prev := s.fuelTrigger
	s.fuelTrigger = ""
	s.mu.Unlock()

	if prev != "" {
		if err := s.platform.CancelTriggerNotification(ctx, prev); err != nil {
			log.Printf("Failed to cancel fuel check trigger: %v", err)
		}
	}
}

// RunServiceCheck derives alerts and shows one notification per due service item
// not yet surfaced this process lifetime. Re-arming is the platform's job.
func (s *Scheduler) RunServiceCheck(ctx context.Context) error {
	derived, err := s.engine.Derive(ctx)
	if err != nil {
		return err
	}

	for _, a := range derived {
		if a.Type != models.AlertTypeService {
			continue
		}
		s.store.Upsert(ctx, a)

		s.mu.Lock()
		seen := s.notified[a.ID]
		s.notified[a.ID] = true
		s.mu.Unlock()
		if seen {
			continue
		}

		s.dispatcher.Show(ctx, "Service due", a.Message, map[string]string{"route": "Alerts"})
	}
	return nil
}

// HandleTask is the background-task entry point. Whatever happens, the platform
// is told the invocation finished; leaving a task hanging gets the app penalized.
func (s *Scheduler) HandleTask(ctx context.Context, taskID string) {
	defer s.platform.Finish(taskID)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Background task %s panicked: %v", taskID, r)
		}
	}()

	var err error
	switch taskID {
	case TaskFuelAlert:
		err = s.RunFuelCheck(ctx)
	case TaskServiceAlert:
		err = s.RunServiceCheck(ctx)
	default:
		if err = s.RunFuelCheck(ctx); err == nil {
			err = s.RunServiceCheck(ctx)
		}
	}
	if err != nil {
		log.Printf("Background task %s failed: %v", taskID, err)
	}
}

// HandleTimeout acknowledges an out-of-budget task immediately, attempting no
// further work in the same invocation.
func (s *Scheduler) HandleTimeout(taskID string) {
	log.Printf("Background task %s timed out", taskID)
	s.platform.Finish(taskID)
}

func (s *Scheduler) runTask(taskID string) {
	s.HandleTask(context.Background(), taskID)
}

// nextDailyOccurrence returns the next time the given wall-clock time comes
// around, today if still ahead, otherwise tomorrow.
func nextDailyOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
