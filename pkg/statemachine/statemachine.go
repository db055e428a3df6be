package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Action executes side effects during a transition. Returning an error prevents the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Transition defines a state change triggered by an event, with optional guards and actions.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // All must pass for transition to proceed
	Actions []Action[S, E] // Executed in order before state change
}

type key[S, E comparable] struct {
	from  S
	event E
}

// Machine is a thread-safe in-memory finite state machine over typed states and events.
type Machine[S, E comparable] struct {
	current     S
	transitions map[key[S, E]][]Transition[S, E]
	mu          sync.RWMutex
}

func newMachine[S, E comparable](initial S) *Machine[S, E] {
	return &Machine[S, E]{
		current:     initial,
		transitions: make(map[key[S, E]][]Transition[S, E]),
	}
}

func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in state s.
func (m *Machine[S, E]) Is(s S) bool {
	return m.Current() == s
}

// AddTransition registers a transition. Several transitions may share the
// same from/event pair; the first whose guards pass wins.
func (m *Machine[S, E]) AddTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key[S, E]{from: t.From, event: t.Event}
	m.transitions[k] = append(m.transitions[k], t)
}

// Fire applies event to the current state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.transitions[key[S, E]{from: m.current, event: event}]
	if len(candidates) == 0 {
		return newErrNoTransition(m.current, event)
	}

	t := m.selectTransition(ctx, candidates, event, data)
	if t == nil {
		return newErrTransitionRejected(m.current, event)
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.To
	return nil
}

// CanFire reports whether event would apply in the current state.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	candidates := m.transitions[key[S, E]{from: m.current, event: event}]
	return m.selectTransition(ctx, candidates, event, data) != nil
}

// selectTransition must be called with the lock held.
func (m *Machine[S, E]) selectTransition(ctx context.Context, candidates []Transition[S, E], event E, data any) *Transition[S, E] {
	for i, t := range candidates {
		passed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, m.current, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return &candidates[i]
		}
	}
	return nil
}
