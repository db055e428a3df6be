package statemachine

// Option configures a machine during construction.
type Option[S, E comparable] func(*Machine[S, E])

// TransitionOption configures a single transition with guards and actions.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// New creates a machine in the initial state.
func New[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := newMachine[S, E](initial)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithTransition adds a transition from each of the given states.
func WithTransition[S, E comparable](to S, event E, from []S, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		for _, f := range from {
			t := Transition[S, E]{From: f, To: to, Event: event}
			for _, opt := range opts {
				opt(&t)
			}
			m.AddTransition(t)
		}
	}
}

// From is sugar for the from-state list of WithTransition.
func From[S comparable](states ...S) []S {
	return states
}

func WithGuard[S, E comparable](guard Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if guard != nil {
			t.Guards = append(t.Guards, guard)
		}
	}
}

func WithAction[S, E comparable](action Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if action != nil {
			t.Actions = append(t.Actions, action)
		}
	}
}
