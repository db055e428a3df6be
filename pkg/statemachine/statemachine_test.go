package statemachine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrymomot/formflow/pkg/statemachine"
)

type state string
type event string

const (
	draft     state = "draft"
	inReview  state = "in_review"
	approved  state = "approved"
	rejected  state = "rejected"
	submit    event = "submit"
	approve   event = "approve"
	reject    event = "reject"
	unrelated event = "unrelated"
)

func newReviewMachine(opts ...statemachine.TransitionOption[state, event]) *statemachine.Machine[state, event] {
	return statemachine.New[state, event](draft,
		statemachine.WithTransition(inReview, submit, statemachine.From(draft, rejected), opts...),
		statemachine.WithTransition[state, event](approved, approve, statemachine.From(inReview)),
		statemachine.WithTransition[state, event](rejected, reject, statemachine.From(inReview)),
	)
}

func TestMachine_BasicTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newReviewMachine()

	if m.Current() != draft {
		t.Fatalf("Expected initial state %s, got %s", draft, m.Current())
	}

	if !m.CanFire(ctx, submit, nil) {
		t.Fatal("Expected CanFire to return true for submit in draft")
	}
	if err := m.Fire(ctx, submit, nil); err != nil {
		t.Fatalf("Failed to fire submit: %v", err)
	}
	if !m.Is(inReview) {
		t.Fatalf("Expected %s, got %s", inReview, m.Current())
	}

	if err := m.Fire(ctx, reject, nil); err != nil {
		t.Fatalf("Failed to fire reject: %v", err)
	}
	if err := m.Fire(ctx, submit, nil); err != nil {
		t.Fatalf("Expected resubmission from rejected: %v", err)
	}

	if m.CanFire(ctx, submit, nil) {
		t.Fatal("Expected CanFire false for submit while in review")
	}
}

func TestMachine_NoTransition(t *testing.T) {
	t.Parallel()
	m := newReviewMachine()

	err := m.Fire(context.Background(), approve, nil)
	if !statemachine.IsNoTransitionError(err) {
		t.Fatalf("Expected ErrNoTransition, got %v", err)
	}
	if err.Error() != "no transition available from state 'draft' for event 'approve'" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if m.CanFire(context.Background(), unrelated, nil) {
		t.Error("Expected CanFire false for unknown event")
	}
	if m.Current() != draft {
		t.Errorf("State must not change, got %s", m.Current())
	}
}

func TestMachine_Guards(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	allow := false
	m := newReviewMachine(statemachine.WithGuard(func(_ context.Context, from state, _ event, data any) bool {
		return allow && data == "ok"
	}))

	if m.CanFire(ctx, submit, "ok") {
		t.Fatal("Expected guard to block")
	}
	err := m.Fire(ctx, submit, "ok")
	if !statemachine.IsTransitionRejectedError(err) {
		t.Fatalf("Expected ErrTransitionRejected, got %v", err)
	}

	allow = true
	if err := m.Fire(ctx, submit, "ok"); err != nil {
		t.Fatalf("Expected guard to pass: %v", err)
	}
}

func TestMachine_Actions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls []string
	record := statemachine.WithAction(func(_ context.Context, from, to state, ev event, _ any) error {
		calls = append(calls, string(from)+"->"+string(to)+":"+string(ev))
		return nil
	})
	m := newReviewMachine(record)

	if err := m.Fire(ctx, submit, nil); err != nil {
		t.Fatalf("Failed to fire: %v", err)
	}
	if len(calls) != 1 || calls[0] != "draft->in_review:submit" {
		t.Fatalf("Unexpected action calls: %v", calls)
	}

	failing := errors.New("nope")
	m2 := newReviewMachine(statemachine.WithAction(func(context.Context, state, state, event, any) error {
		return failing
	}))
	if err := m2.Fire(ctx, submit, nil); !errors.Is(err, failing) {
		t.Fatalf("Expected action error, got %v", err)
	}
	if m2.Current() != draft {
		t.Fatalf("Failed action must abort transition, got %s", m2.Current())
	}
}
