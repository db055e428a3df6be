package statemachine

import (
	"errors"
	"fmt"
)

// ErrNoTransition indicates no transition exists for the given state/event combination.
type ErrNoTransition struct {
	State string
	Event string
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for event '%s'", e.State, e.Event)
}

func newErrNoTransition(state, event any) *ErrNoTransition {
	return &ErrNoTransition{State: fmt.Sprint(state), Event: fmt.Sprint(event)}
}

// ErrTransitionRejected indicates all possible transitions were blocked by guards.
type ErrTransitionRejected struct {
	State string
	Event string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state '%s' for event '%s' was rejected by guards", e.State, e.Event)
}

func newErrTransitionRejected(state, event any) *ErrTransitionRejected {
	return &ErrTransitionRejected{State: fmt.Sprint(state), Event: fmt.Sprint(event)}
}

func IsNoTransitionError(err error) bool {
	var e *ErrNoTransition
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}
