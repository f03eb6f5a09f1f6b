package notify

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"
)

// LocalPlatform is the in-process Platform implementation: triggers are timers,
// periodic background tasks are tickers, permission is always granted, and every
// delivery lands on the event stream for the dispatcher to route. Press events are
// emitted by the application shell via EmitPress.
type LocalPlatform struct {
	mu       sync.Mutex
	channels map[string]string
	pending  map[string]*pendingTrigger
	tasks    map[string]*taskRunner
	finished map[string]int
	events   chan Event
	seq      int64
	closed   bool
}

type pendingTrigger struct {
	notification Notification
	trigger      Trigger
	timer        *time.Timer
}

type taskRunner struct {
	cfg    TaskConfig
	fn     TaskFunc
	ticker *time.Ticker
	stop   chan struct{}
}

func NewLocalPlatform() *LocalPlatform {
	return &LocalPlatform{
		channels: make(map[string]string),
		pending:  make(map[string]*pendingTrigger),
		tasks:    make(map[string]*taskRunner),
		finished: make(map[string]int),
		events:   make(chan Event, 64),
	}
}

func (p *LocalPlatform) CreateChannel(ctx context.Context, id, name, importance string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels[id] = name
	return id, nil
}

// RequestPermission always grants; there is no permission concept in-process.
func (p *LocalPlatform) RequestPermission(ctx context.Context) error {
	return nil
}

func (p *LocalPlatform) DisplayNotification(ctx context.Context, n Notification) error {
	log.Printf("Notification: %s - %s", n.Title, n.Body)
	return nil
}

// CreateTriggerNotification schedules n. A pending trigger with the same
// notification id is replaced, keeping a single slot per id.
func (p *LocalPlatform) CreateTriggerNotification(ctx context.Context, n Notification, t Trigger) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := n.ID
	if id == "" {
		p.seq++
		id = "trigger-" + strconv.FormatInt(p.seq, 10)
		n.ID = id
	}

	if prev, ok := p.pending[id]; ok {
		prev.timer.Stop()
		delete(p.pending, id)
	}

	pt := &pendingTrigger{notification: n, trigger: t}
	pt.timer = time.AfterFunc(time.Until(t.Timestamp), func() {
		p.fire(id)
	})
	p.pending[id] = pt

	return id, nil
}

func (p *LocalPlatform) fire(id string) {
	p.mu.Lock()
	pt, ok := p.pending[id]
	if !ok || p.closed {
		p.mu.Unlock()
		return
	}

	if pt.trigger.Repeat == RepeatDaily {
		pt.trigger.Timestamp = pt.trigger.Timestamp.Add(24 * time.Hour)
		pt.timer = time.AfterFunc(time.Until(pt.trigger.Timestamp), func() {
			p.fire(id)
		})
	} else {
		delete(p.pending, id)
	}
	n := pt.notification
	p.mu.Unlock()

	p.emit(Event{Type: EventDelivered, Notification: n})
}

// CancelTriggerNotification is a no-op for unknown ids: arming is
// cancel-if-present then create.
func (p *LocalPlatform) CancelTriggerNotification(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pt, ok := p.pending[id]; ok {
		pt.timer.Stop()
		delete(p.pending, id)
	}
	return nil
}

func (p *LocalPlatform) TriggerNotifications(ctx context.Context) ([]Notification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Notification, 0, len(p.pending))
	for _, pt := range p.pending {
		out = append(out, pt.notification)
	}
	return out, nil
}

// RegisterTask starts a periodic runner for the task. Non-periodic tasks fire once
// after the minimum interval.
func (p *LocalPlatform) RegisterTask(cfg TaskConfig, fn TaskFunc) error {
	interval := cfg.MinimumInterval
	if interval <= 0 {
		interval = time.Minute
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if prev, ok := p.tasks[cfg.TaskID]; ok {
		close(prev.stop)
		if prev.ticker != nil {
			prev.ticker.Stop()
		}
	}

	runner := &taskRunner{cfg: cfg, fn: fn, stop: make(chan struct{})}
	p.tasks[cfg.TaskID] = runner

	if !cfg.Periodic {
		time.AfterFunc(interval, func() {
			select {
			case <-runner.stop:
			default:
				fn(cfg.TaskID)
			}
		})
		return nil
	}

	runner.ticker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-runner.ticker.C:
				fn(cfg.TaskID)
			case <-runner.stop:
				return
			}
		}
	}()
	return nil
}

// Finish records completion of a background task invocation.
func (p *LocalPlatform) Finish(taskID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.finished[taskID]++
}

// Finished reports how many invocations of the task have completed.
func (p *LocalPlatform) Finished(taskID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finished[taskID]
}

func (p *LocalPlatform) Events() <-chan Event {
	return p.events
}

// EmitPress feeds a tap event into the stream, for the application shell.
func (p *LocalPlatform) EmitPress(n Notification) {
	p.emit(Event{Type: EventPress, Notification: n})
}

func (p *LocalPlatform) emit(ev Event) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	select {
	case p.events <- ev:
	default:
		log.Printf("Notification event dropped: %s", ev.Notification.Title)
	}
}

// Close stops all timers and tickers. Pending events remain readable.
func (p *LocalPlatform) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	for id, pt := range p.pending {
		pt.timer.Stop()
		delete(p.pending, id)
	}
	for id, runner := range p.tasks {
		close(runner.stop)
		if runner.ticker != nil {
			runner.ticker.Stop()
		}
		delete(p.tasks, id)
	}
}
