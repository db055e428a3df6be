package notifications_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/notifications"
)

type recorder struct {
	mu     sync.Mutex
	events []notifications.Event
	err    error
}

func (r *recorder) Deliver(_ context.Context, ev notifications.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) Events() []notifications.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifications.Event(nil), r.events...)
}

func TestToaster_Notify(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	toaster := notifications.NewToaster(notifications.WithDeliverer(rec))
	defer toaster.Close()

	shown, err := toaster.Notify(context.Background(), notifications.Success("Submitted!", "Account created."))
	require.NoError(t, err)

	assert.NotEmpty(t, shown.ID)
	assert.False(t, shown.CreatedAt.IsZero())
	assert.Equal(t, notifications.SeveritySuccess, shown.Severity)
	assert.Equal(t, 3*time.Second, shown.Duration)
	assert.True(t, shown.Dismissible)
	assert.Equal(t, shown.CreatedAt.Add(3*time.Second), shown.ExpiresAt())

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notifications.EventShown, events[0].Type)
	assert.Equal(t, "Submitted!", events[0].Toast.Title)

	active := toaster.Active("")
	require.Len(t, active, 1)
	assert.Equal(t, shown.ID, active[0].ID)
}

func TestToaster_AutoDismiss(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	toaster := notifications.NewToaster(notifications.WithDeliverer(rec))
	defer toaster.Close()

	toast := notifications.Success("Submitted!", "Account created.")
	toast.Duration = 20 * time.Millisecond
	_, err := toaster.Notify(context.Background(), toast)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(toaster.Active("")) == 0 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		events := rec.Events()
		return len(events) == 2 && events[1].Type == notifications.EventDismissed
	}, time.Second, 5*time.Millisecond)
}

func TestToaster_Dismiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rec := &recorder{}
	toaster := notifications.NewToaster(notifications.WithDeliverer(rec))
	defer toaster.Close()

	shown, err := toaster.Notify(ctx, notifications.Success("Submitted!", "Account created."))
	require.NoError(t, err)

	require.NoError(t, toaster.Dismiss(ctx, shown.ID))
	assert.Empty(t, toaster.Active(""))
	assert.ErrorIs(t, toaster.Dismiss(ctx, shown.ID), notifications.ErrToastNotFound)

	sticky := notifications.Toast{Title: "Heads up", Dismissible: false}
	stickyShown, err := toaster.Notify(ctx, sticky)
	require.NoError(t, err)
	assert.Equal(t, notifications.SeverityInfo, stickyShown.Severity)
	assert.True(t, stickyShown.ExpiresAt().IsZero())
	assert.ErrorIs(t, toaster.Dismiss(ctx, stickyShown.ID), notifications.ErrNotDismissible)
	assert.Len(t, toaster.Active(""), 1)
}

func TestToaster_ActiveBySession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	toaster := notifications.NewToaster(notifications.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))
	defer toaster.Close()

	for _, session := range []string{"a", "b", "a"} {
		toast := notifications.Success("Submitted!", "Account created.")
		toast.Session = session
		_, err := toaster.Notify(ctx, toast)
		require.NoError(t, err)
	}

	a := toaster.Active("a")
	require.Len(t, a, 2)
	assert.True(t, a[0].CreatedAt.Before(a[1].CreatedAt))
	assert.Len(t, toaster.Active("b"), 1)
	assert.Len(t, toaster.Active(""), 3)
}

func TestToaster_DeliveryFailureIsBestEffort(t *testing.T) {
	t.Parallel()

	rec := &recorder{err: errors.New("presenter down")}
	toaster := notifications.NewToaster(notifications.WithDeliverer(rec))
	defer toaster.Close()

	_, err := toaster.Notify(context.Background(), notifications.Failure("Submission failed", "boom"))
	require.NoError(t, err)
	assert.Len(t, toaster.Active(""), 1)
}

func TestToaster_Close(t *testing.T) {
	t.Parallel()

	toaster := notifications.NewToaster()
	_, err := toaster.Notify(context.Background(), notifications.Success("a", "b"))
	require.NoError(t, err)

	toaster.Close()
	assert.Empty(t, toaster.Active(""))

	_, err = toaster.Notify(context.Background(), notifications.Success("a", "b"))
	assert.ErrorIs(t, err, notifications.ErrToasterClosed)
}

func TestToast_JSON(t *testing.T) {
	t.Parallel()

	toast := notifications.Success("Submitted!", "Account created.")
	toast.ID = "t1"

	data, err := json.Marshal(toast)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"durationMs":3000`)
	assert.Contains(t, string(data), `"severity":"success"`)
	assert.Contains(t, string(data), `"dismissible":true`)

	var decoded notifications.Toast
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, toast.Duration, decoded.Duration)
	assert.Equal(t, toast.Title, decoded.Title)
	assert.NotContains(t, string(data), "expiresAt", "unstamped toast has no expiry")

	toast.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err = json.Marshal(toast)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"expiresAt":"2024-05-01T12:00:03Z"`)

	toast.Duration = 0
	data, err = json.Marshal(toast)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "expiresAt", "sticky toast never expires")
}
