package notify

import (
	"context"
	"log"
	"sync"
)

// Handler reacts to a routed notification event.
type Handler func(ctx context.Context) error

// Dispatcher is the thin layer between derived alerts and the notification
// platform. Display failures never propagate: a denied permission or broken
// channel degrades to notifications simply not appearing.
type Dispatcher struct {
	platform Platform

	mu          sync.Mutex
	channelID   string
	handlers    map[string]Handler
	onPress     func(Notification)
	subscribers map[chan Notification]struct{}
}

func NewDispatcher(platform Platform) *Dispatcher {
	return &Dispatcher{
		platform:    platform,
		handlers:    make(map[string]Handler),
		subscribers: make(map[chan Notification]struct{}),
	}
}

// EnsureChannel creates the single default high-importance channel. Safe to call
// before every display; creation happens once.
func (d *Dispatcher) EnsureChannel(ctx context.Context) (string, error) {
	d.mu.Lock()
	if d.channelID != "" {
		id := d.channelID
		d.mu.Unlock()
		return id, nil
	}
	d.mu.Unlock()

	id, err := d.platform.CreateChannel(ctx, DefaultChannelID, DefaultChannelName, ImportanceHigh)
	if err != nil {
		return "", err
	}

	d.mu.Lock()
	d.channelID = id
	d.mu.Unlock()
	return id, nil
}

// RequestPermission asks for notification permission. Denial is logged, never
// surfaced; later displays degrade silently.
func (d *Dispatcher) RequestPermission(ctx context.Context) {
	if err := d.platform.RequestPermission(ctx); err != nil {
		log.Printf("Notification permission not granted: %v", err)
	}
}

// Show displays a notification. data carries the routing tag for tap handling.
// All failures are logged and swallowed.
func (d *Dispatcher) Show(ctx context.Context, title, body string, data map[string]string) {
	channelID, err := d.EnsureChannel(ctx)
	if err != nil {
		log.Printf("Failed to create notification channel: %v", err)
		return
	}

	n := Notification{
		ChannelID: channelID,
		Title:     title,
		Body:      body,
		Data:      data,
	}
	if err := d.platform.DisplayNotification(ctx, n); err != nil {
		log.Printf("Failed to display notification: %v", err)
		return
	}

	d.broadcast(n)
}

// Handle registers the handler for a routing tag (the notification data "type").
func (d *Dispatcher) Handle(tag string, h Handler) {
	d.mu.Lock()
	d.handlers[tag] = h
	d.mu.Unlock()
}

// OnPress registers the handler for notification taps without a routing tag.
func (d *Dispatcher) OnPress(fn func(Notification)) {
	d.mu.Lock()
	d.onPress = fn
	d.mu.Unlock()
}

// Run consumes the platform event stream until ctx is cancelled, routing each
// event by its data tag. Routed handlers run for delivered triggers and presses
// alike; untagged presses go to the press handler.
func (d *Dispatcher) Run(ctx context.Context) {
	events := d.platform.Events()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			d.route(ctx, ev)
		}
	}
}

func (d *Dispatcher) route(ctx context.Context, ev Event) {
	tag := ev.Notification.Data[DataTypeKey]

	d.mu.Lock()
	handler := d.handlers[tag]
	onPress := d.onPress
	d.mu.Unlock()

	if handler != nil {
		if err := handler(ctx); err != nil {
			log.Printf("Notification handler %q failed: %v", tag, err)
		}
		return
	}

	if (ev.Type == EventPress || ev.Type == EventActionPress) && onPress != nil {
		onPress(ev.Notification)
	}
}

// Subscribe returns a channel receiving every displayed notification. Slow
// subscribers miss notifications rather than blocking delivery.
func (d *Dispatcher) Subscribe() chan Notification {
	ch := make(chan Notification, 8)
	d.mu.Lock()
	d.subscribers[ch] = struct{}{}
	d.mu.Unlock()
	return ch
}

func (d *Dispatcher) Unsubscribe(ch chan Notification) {
	d.mu.Lock()
	delete(d.subscribers, ch)
	d.mu.Unlock()
}

func (d *Dispatcher) broadcast(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for ch := range d.subscribers {
		select {
		case ch <- n:
		default:
		}
	}
}
