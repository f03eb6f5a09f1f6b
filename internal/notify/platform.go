package notify

import (
	"context"
	"time"
)

// Routing tags carried in notification data under DataTypeKey. Background handlers
// use them to decide which check to run.
const (
	DataTypeKey          = "type"
	EventFuelCheckRun    = "FUEL_CHECK_RUN"
	EventServiceCheckRun = "SERVICE_CHECK_RUN"
)

const (
	DefaultChannelID   = "default"
	DefaultChannelName = "Default"
	ImportanceHigh     = "high"
)

// RepeatFrequency of a trigger.
type RepeatFrequency int

const (
	RepeatNone RepeatFrequency = iota
	RepeatDaily
)

// Trigger is a platform-scheduled future point in time that delivers a
// notification.
type Trigger struct {
	Timestamp time.Time
	Repeat    RepeatFrequency
	Exact     bool
}

// Notification is the content handed to the platform. ID is the trigger slot:
// creating a trigger with an id that already has a pending trigger supersedes it.
type Notification struct {
	ID        string            `json:"id,omitempty"`
	ChannelID string            `json:"channelId,omitempty"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}

// EventType of a platform event.
type EventType int

const (
	// EventDelivered means a scheduled trigger fired and its notification was shown.
	EventDelivered EventType = iota
	EventPress
	EventActionPress
)

// Event is delivered on the platform's event stream for both foreground and
// background delivery.
type Event struct {
	Type         EventType
	Notification Notification
}

// TaskConfig describes a background check registration.
type TaskConfig struct {
	TaskID          string
	Periodic        bool
	StopOnTerminate bool
	StartOnBoot     bool
	MinimumInterval time.Duration
}

// TaskFunc runs a background task. Implementations must call Platform.Finish with
// the task id when done, whatever the outcome.
type TaskFunc func(taskID string)

// Platform is the notification capability this app consumes. Implementations may
// silently no-op operations the underlying system has no concept of (permissions,
// channels).
type Platform interface {
	CreateChannel(ctx context.Context, id, name, importance string) (string, error)
	RequestPermission(ctx context.Context) error
	DisplayNotification(ctx context.Context, n Notification) error

	// CreateTriggerNotification schedules n for delivery per t and returns the
	// trigger id. A pending trigger with the same notification id is replaced.
	CreateTriggerNotification(ctx context.Context, n Notification, t Trigger) (string, error)
	CancelTriggerNotification(ctx context.Context, id string) error
	TriggerNotifications(ctx context.Context) ([]Notification, error)

	RegisterTask(cfg TaskConfig, fn TaskFunc) error
	// Finish acknowledges completion of a background task invocation. It must be
	// called exactly once per invocation or the host may penalize the app.
	Finish(taskID string)

	Events() <-chan Event
}
