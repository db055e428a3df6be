package form

import (
	"context"
	"log/slog"
	"time"
)

// Option configures a Controller.
type Option[T any] func(*Controller[T])

func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(c *Controller[T]) {
		if log != nil {
			c.log = log
		}
	}
}

// WithAction replaces the simulated action.
func WithAction[T any](action Action[T]) Option[T] {
	return func(c *Controller[T]) {
		if action != nil {
			c.action = action
		}
	}
}

// WithSubmitDelay keeps the simulated action but changes its delay.
func WithSubmitDelay[T any](d time.Duration) Option[T] {
	return func(c *Controller[T]) {
		c.action = Simulate[T](d)
	}
}

func WithNotifier[T any](n Notifier) Option[T] {
	return func(c *Controller[T]) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithSession tags emitted toasts and log records with a session id.
func WithSession[T any](id string) Option[T] {
	return func(c *Controller[T]) {
		c.session = id
	}
}

func WithToastDuration[T any](d time.Duration) Option[T] {
	return func(c *Controller[T]) {
		if d > 0 {
			c.toastDuration = d
		}
	}
}

// WithSuccessMessage overrides the success toast text.
func WithSuccessMessage[T any](title, description string) Option[T] {
	return func(c *Controller[T]) {
		c.successTitle = title
		c.successDescription = description
	}
}

// WithFailureTitle overrides the title of the toast shown when the action fails.
func WithFailureTitle[T any](title string) Option[T] {
	return func(c *Controller[T]) {
		c.failureTitle = title
	}
}

// WithValidateOnChange re-validates a field on every update instead of only
// clearing its error.
func WithValidateOnChange[T any]() Option[T] {
	return func(c *Controller[T]) {
		c.validateOnChange = true
	}
}

// WithStatusListener calls fn after every status transition. It runs with the
// controller lock held and must not call back into the controller.
func WithStatusListener[T any](fn func(ctx context.Context, from, to Status)) Option[T] {
	return func(c *Controller[T]) {
		c.onStatus = fn
	}
}
