package form

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/statemachine"
)

// Status is the lifecycle stage of a form's submission.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

// Event drives the status machine.
type Event string

const (
	EventSubmit     Event = "submit"
	EventResolve    Event = "resolve"
	EventReject     Event = "reject"
	EventInvalidate Event = "invalidate"
)

func newLifecycle(log *slog.Logger, form string, onChange func(ctx context.Context, from, to Status)) *statemachine.Machine[Status, Event] {
	trace := func(ctx context.Context, from, to Status, event Event, _ any) error {
		log.DebugContext(ctx, "form status changed",
			logger.Form(form),
			slog.String("from", from.String()),
			logger.Status(to),
			slog.String("event", string(event)),
		)
		if onChange != nil {
			onChange(ctx, from, to)
		}
		return nil
	}

	return statemachine.New(StatusIdle,
		statemachine.WithTransition(StatusSubmitting, EventSubmit,
			statemachine.From(StatusIdle, StatusSucceeded, StatusFailed),
			statemachine.WithAction(trace)),
		statemachine.WithTransition(StatusSucceeded, EventResolve,
			statemachine.From(StatusSubmitting),
			statemachine.WithAction(trace)),
		statemachine.WithTransition(StatusFailed, EventReject,
			statemachine.From(StatusSubmitting),
			statemachine.WithAction(trace)),
		statemachine.WithTransition(StatusIdle, EventInvalidate,
			statemachine.From(StatusSucceeded, StatusFailed),
			statemachine.WithAction(trace)),
	)
}
