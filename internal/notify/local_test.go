package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, events <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(timeout):
		t.Fatal("timed out waiting for platform event")
		return Event{}
	}
}

func TestLocalPlatform_TriggerFires(t *testing.T) {
	p := NewLocalPlatform()
	defer p.Close()
	ctx := context.Background()

	n := Notification{
		ID:    "fuel-check",
		Title: "Fuel check",
		Data:  map[string]string{DataTypeKey: EventFuelCheckRun},
	}
	_, err := p.CreateTriggerNotification(ctx, n, Trigger{Timestamp: time.Now().Add(20 * time.Millisecond)})
	require.NoError(t, err)

	ev := waitForEvent(t, p.Events(), time.Second)
	assert.Equal(t, EventDelivered, ev.Type)
	assert.Equal(t, EventFuelCheckRun, ev.Notification.Data[DataTypeKey])

	// a one-shot trigger is consumed by firing
	pending, err := p.TriggerNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestLocalPlatform_SameIDReplacesPendingTrigger(t *testing.T) {
	p := NewLocalPlatform()
	defer p.Close()
	ctx := context.Background()

	n := Notification{ID: "fuel-check", Title: "first"}
	_, err := p.CreateTriggerNotification(ctx, n, Trigger{Timestamp: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	n.Title = "second"
	_, err = p.CreateTriggerNotification(ctx, n, Trigger{Timestamp: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	pending, err := p.TriggerNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Title)
}

func TestLocalPlatform_CancelStopsTrigger(t *testing.T) {
	p := NewLocalPlatform()
	defer p.Close()
	ctx := context.Background()

	n := Notification{ID: "service-check", Title: "Service check"}
	id, err := p.CreateTriggerNotification(ctx, n, Trigger{Timestamp: time.Now().Add(30 * time.Millisecond)})
	require.NoError(t, err)

	require.NoError(t, p.CancelTriggerNotification(ctx, id))

	select {
	case ev := <-p.Events():
		t.Fatalf("unexpected event after cancel: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}

	t.Run("CancelUnknownIDIsNoOp", func(t *testing.T) {
		assert.NoError(t, p.CancelTriggerNotification(ctx, "no-such-trigger"))
	})
}

func TestLocalPlatform_DailyRepeatRearms(t *testing.T) {
	p := NewLocalPlatform()
	defer p.Close()
	ctx := context.Background()

	n := Notification{ID: "service-check", Title: "Service check"}
	_, err := p.CreateTriggerNotification(ctx, n, Trigger{
		Timestamp: time.Now().Add(20 * time.Millisecond),
		Repeat:    RepeatDaily,
	})
	require.NoError(t, err)

	waitForEvent(t, p.Events(), time.Second)

	// the repeating trigger stays pending for the next day
	pending, err := p.TriggerNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestLocalPlatform_PeriodicTask(t *testing.T) {
	p := NewLocalPlatform()
	defer p.Close()

	ran := make(chan string, 4)
	err := p.RegisterTask(TaskConfig{
		TaskID:          "FUEL_ALERT_TASK",
		Periodic:        true,
		MinimumInterval: 20 * time.Millisecond,
	}, func(taskID string) {
		ran <- taskID
		p.Finish(taskID)
	})
	require.NoError(t, err)

	select {
	case taskID := <-ran:
		assert.Equal(t, "FUEL_ALERT_TASK", taskID)
	case <-time.After(time.Second):
		t.Fatal("periodic task never ran")
	}

	assert.Eventually(t, func() bool {
		return p.Finished("FUEL_ALERT_TASK") >= 1
	}, time.Second, 10*time.Millisecond)
}
