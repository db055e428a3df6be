// Package statemachine implements a small, generic finite state machine.
//
// States and events are any comparable types, typically string-based enums,
// so transitions are checked by the compiler instead of being looked up by
// free-form names. A transition may carry guards, which must all pass, and
// actions, which run in order before the state changes; an action error
// aborts the transition.
//
// # Usage
//
//	type Status string
//	type Event string
//
//	m := statemachine.New[Status, Event]("idle",
//	    statemachine.WithTransition[Status, Event]("submitting", "submit",
//	        statemachine.From[Status]("idle", "succeeded", "failed")),
//	    statemachine.WithTransition[Status, Event]("succeeded", "resolve",
//	        statemachine.From[Status]("submitting")),
//	)
//	if err := m.Fire(ctx, "submit", nil); err != nil {
//	    // statemachine.IsNoTransitionError(err) when not allowed here
//	}
//
// All methods are safe for concurrent use.
package statemachine
