package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ojolmate-backend/internal/alerts"
	"ojolmate-backend/internal/models"
	"ojolmate-backend/internal/notify"
)

type fakeStorage struct {
	fuelLogs    []models.FuelLogEntry
	serviceLogs []models.ServiceLogEntry
	settings    *models.Settings
	err         error
}

func (f *fakeStorage) FuelLogs(ctx context.Context) ([]models.FuelLogEntry, error) {
	return f.fuelLogs, f.err
}

func (f *fakeStorage) ServiceLogs(ctx context.Context) ([]models.ServiceLogEntry, error) {
	return f.serviceLogs, f.err
}

func (f *fakeStorage) Settings(ctx context.Context) (*models.Settings, error) {
	return f.settings, f.err
}

// fakePlatform records trigger and task traffic without running timers.
type fakePlatform struct {
	mu        sync.Mutex
	created   []createdTrigger
	cancelled []string
	displayed []notify.Notification
	tasks     []notify.TaskConfig
	finished  map[string]int
	events    chan notify.Event
	createErr error
}

type createdTrigger struct {
	notification notify.Notification
	trigger      notify.Trigger
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		finished: make(map[string]int),
		events:   make(chan notify.Event, 8),
	}
}

func (f *fakePlatform) CreateChannel(ctx context.Context, id, name, importance string) (string, error) {
	return id, nil
}

func (f *fakePlatform) RequestPermission(ctx context.Context) error { return nil }

func (f *fakePlatform) DisplayNotification(ctx context.Context, n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.displayed = append(f.displayed, n)
	return nil
}

func (f *fakePlatform) CreateTriggerNotification(ctx context.Context, n notify.Notification, t notify.Trigger) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, createdTrigger{notification: n, trigger: t})
	return n.ID, nil
}

func (f *fakePlatform) CancelTriggerNotification(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakePlatform) TriggerNotifications(ctx context.Context) ([]notify.Notification, error) {
	return nil, nil
}

func (f *fakePlatform) RegisterTask(cfg notify.TaskConfig, fn notify.TaskFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, cfg)
	return nil
}

func (f *fakePlatform) Finish(taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished[taskID]++
}

func (f *fakePlatform) Events() <-chan notify.Event { return f.events }

func (f *fakePlatform) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakePlatform) cancelledIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.cancelled))
	copy(out, f.cancelled)
	return out
}

func (f *fakePlatform) displayedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.displayed)
}

// lowFuelStorage yields an average of 10 km/L with 1 L remaining, a predicted
// range of 10 km, well below the default 50 km threshold.
func lowFuelStorage() *fakeStorage {
	return &fakeStorage{
		fuelLogs: []models.FuelLogEntry{
			{ID: 2, Date: "2026-03-14", Time: "09:00", Liter: 1, Odometer: 110},
			{ID: 1, Date: "2026-03-13", Time: "09:00", Liter: 5, Odometer: 100},
		},
		settings: models.DefaultSettings(),
	}
}

func newTestScheduler(storage alerts.Storage, platform *fakePlatform) (*Scheduler, *alerts.Store) {
	engine := alerts.NewEngine(storage)
	store := alerts.NewStore(nil)
	dispatcher := notify.NewDispatcher(platform)
	sched := New(engine, store, dispatcher, platform, DefaultConfig())
	return sched, store
}

func TestScheduler_ArmFuelCheckReplacesPending(t *testing.T) {
	platform := newFakePlatform()
	sched, _ := newTestScheduler(lowFuelStorage(), platform)
	ctx := context.Background()

	require.NoError(t, sched.ArmFuelCheck(ctx, time.Minute))
	require.NoError(t, sched.ArmFuelCheck(ctx, time.Minute))

	// second arm cancels the first before creating its replacement
	assert.Equal(t, 2, platform.createdCount())
	assert.Equal(t, []string{"fuel-check"}, platform.cancelledIDs())
}

func TestScheduler_RunFuelCheck(t *testing.T) {
	t.Run("LowFuelDisplaysAndRearms", func(t *testing.T) {
		platform := newFakePlatform()
		sched, store := newTestScheduler(lowFuelStorage(), platform)
		ctx := context.Background()

		require.NoError(t, sched.RunFuelCheck(ctx))

		assert.Equal(t, 1, platform.displayedCount())
		assert.Equal(t, 1, platform.createdCount())

		unread := store.Unread(models.AlertTypeFuel)
		require.Len(t, unread, 1)
		assert.Contains(t, unread[0].Message, "Fuel running low")
	})

	t.Run("NoAlertTerminatesChain", func(t *testing.T) {
		storage := &fakeStorage{settings: models.DefaultSettings()} // no fuel logs
		platform := newFakePlatform()
		sched, store := newTestScheduler(storage, platform)
		ctx := context.Background()

		require.NoError(t, sched.ArmFuelCheck(ctx, time.Minute))
		require.NoError(t, sched.RunFuelCheck(ctx))

		// the pending trigger is cancelled and no replacement is created
		assert.Equal(t, []string{"fuel-check"}, platform.cancelledIDs())
		assert.Equal(t, 1, platform.createdCount())
		assert.Zero(t, platform.displayedCount())
		assert.Empty(t, store.List())
	})

	t.Run("KickRestartsChain", func(t *testing.T) {
		platform := newFakePlatform()
		sched, _ := newTestScheduler(lowFuelStorage(), platform)

		sched.KickFuelCheck(context.Background())
		assert.Equal(t, 1, platform.createdCount())
	})
}

func TestScheduler_RunServiceCheck(t *testing.T) {
	storage := lowFuelStorage()
	storage.serviceLogs = []models.ServiceLogEntry{
		{ID: 7, Component: "Oli mesin", Odometer: 100, Date: "2026-03-01", Completion: models.CompletionUnconfirmed},
		{ID: 9, Component: "Ban depan", Odometer: 400, Date: "2026-03-02", Completion: models.CompletionUnconfirmed},
	}
	platform := newFakePlatform()
	sched, store := newTestScheduler(storage, platform)
	ctx := context.Background()

	require.NoError(t, sched.RunServiceCheck(ctx))

	// only the due entry (odometer 100 <= 110) is surfaced
	unread := store.Unread(models.AlertTypeService)
	require.Len(t, unread, 1)
	assert.Equal(t, int64(7), unread[0].ID)
	assert.Equal(t, 1, platform.displayedCount())

	// a second run upserts nothing new and stays quiet about known alerts
	require.NoError(t, sched.RunServiceCheck(ctx))
	assert.Len(t, store.Unread(models.AlertTypeService), 1)
	assert.Equal(t, 1, platform.displayedCount())
}

func TestScheduler_HandleTask(t *testing.T) {
	t.Run("FinishesOnSuccess", func(t *testing.T) {
		platform := newFakePlatform()
		sched, _ := newTestScheduler(lowFuelStorage(), platform)

		sched.HandleTask(context.Background(), TaskFuelAlert)
		assert.Equal(t, 1, platform.finished[TaskFuelAlert])
	})

	t.Run("FinishesOnStorageError", func(t *testing.T) {
		platform := newFakePlatform()
		storage := &fakeStorage{err: errors.New("db unavailable")}
		sched, _ := newTestScheduler(storage, platform)

		sched.HandleTask(context.Background(), TaskServiceAlert)
		assert.Equal(t, 1, platform.finished[TaskServiceAlert])
	})

	t.Run("UnknownTaskRunsBothChecks", func(t *testing.T) {
		storage := lowFuelStorage()
		storage.serviceLogs = []models.ServiceLogEntry{
			{ID: 3, Component: "Rantai", Odometer: 50, Completion: models.CompletionUnconfirmed},
		}
		platform := newFakePlatform()
		sched, store := newTestScheduler(storage, platform)

		sched.HandleTask(context.Background(), "SOME_OTHER_TASK")

		assert.Len(t, store.Unread(models.AlertTypeFuel), 1)
		assert.Len(t, store.Unread(models.AlertTypeService), 1)
		assert.Equal(t, 1, platform.finished["SOME_OTHER_TASK"])
	})
}

func TestScheduler_HandleTimeout(t *testing.T) {
	platform := newFakePlatform()
	sched, _ := newTestScheduler(lowFuelStorage(), platform)

	sched.HandleTimeout(TaskFuelAlert)
	assert.Equal(t, 1, platform.finished[TaskFuelAlert])
}

func TestScheduler_Start(t *testing.T) {
	platform := newFakePlatform()
	sched, _ := newTestScheduler(lowFuelStorage(), platform)

	require.NoError(t, sched.Start(context.Background()))

	platform.mu.Lock()
	defer platform.mu.Unlock()
	require.Len(t, platform.tasks, 2)
	assert.Equal(t, TaskFuelAlert, platform.tasks[0].TaskID)
	assert.True(t, platform.tasks[0].Periodic)
	assert.False(t, platform.tasks[0].StopOnTerminate)
	assert.True(t, platform.tasks[0].StartOnBoot)
	assert.Equal(t, TaskServiceAlert, platform.tasks[1].TaskID)

	// both checks armed
	ids := make([]string, 0, len(platform.created))
	for _, c := range platform.created {
		ids = append(ids, c.notification.ID)
	}
	assert.Contains(t, ids, "fuel-check")
	assert.Contains(t, ids, "service-check")
}

func TestNextDailyOccurrence(t *testing.T) {
	loc := time.UTC

	t.Run("LaterToday", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 6, 30, 0, 0, loc)
		next := nextDailyOccurrence(now, 8, 0)
		assert.Equal(t, time.Date(2026, 3, 14, 8, 0, 0, 0, loc), next)
	})

	t.Run("AlreadyPassedRollsToTomorrow", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 9, 15, 0, 0, loc)
		next := nextDailyOccurrence(now, 8, 0)
		assert.Equal(t, time.Date(2026, 3, 15, 8, 0, 0, 0, loc), next)
	})

	t.Run("ExactMomentRollsToTomorrow", func(t *testing.T) {
		now := time.Date(2026, 3, 14, 8, 0, 0, 0, loc)
		next := nextDailyOccurrence(now, 8, 0)
		assert.Equal(t, time.Date(2026, 3, 15, 8, 0, 0, 0, loc), next)
	})
}
