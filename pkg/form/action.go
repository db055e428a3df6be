package form

import (
	"context"
	"time"

	"github.com/dmitrymomot/formflow/pkg/async"
	"github.com/dmitrymomot/formflow/pkg/notifications"
)

// DefaultSubmitDelay is how long the simulated action takes.
const DefaultSubmitDelay = 1500 * time.Millisecond

// Action performs the submission of a validated record and returns the
// result record. It must honour ctx cancellation.
type Action[T any] func(ctx context.Context, values T) (T, error)

// Simulate returns an action that waits for delay and then echoes the
// submitted values back as the result.
func Simulate[T any](delay time.Duration) Action[T] {
	return func(ctx context.Context, values T) (T, error) {
		if err := async.Sleep(ctx, delay); err != nil {
			var zero T
			return zero, err
		}
		return values, nil
	}
}

// Notifier presents toasts. *notifications.Toaster implements it.
type Notifier interface {
	Notify(ctx context.Context, toast notifications.Toast) (notifications.Toast, error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, toast notifications.Toast) (notifications.Toast, error)

func (f NotifierFunc) Notify(ctx context.Context, toast notifications.Toast) (notifications.Toast, error) {
	return f(ctx, toast)
}

type nopNotifier struct{}

func (nopNotifier) Notify(_ context.Context, toast notifications.Toast) (notifications.Toast, error) {
	return toast, nil
}
