package form

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formflow/pkg/async"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/notifications"
	"github.com/dmitrymomot/formflow/pkg/statemachine"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

const (
	DefaultSuccessTitle       = "Submitted!"
	DefaultSuccessDescription = "Account created."
	DefaultFailureTitle       = "Submission failed"
)

// Outcome tells what a call to Submit did.
type Outcome string

const (
	OutcomeStarted Outcome = "started"
	OutcomeInvalid Outcome = "invalid"
	OutcomeIgnored Outcome = "ignored"
)

// Submission is the handle returned by Submit.
type Submission[T any] struct {
	ID      string
	Outcome Outcome
	Errors  validator.ValidationErrors

	run *run[T]
}

type run[T any] struct {
	id     string
	future *async.Future[T]
	done   chan struct{}
}

// Wait blocks until a started submission has settled and returns the action's
// result. Invalid submissions return their validation errors and ignored ones
// return ErrSubmitIgnored.
func (s Submission[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	switch s.Outcome {
	case OutcomeInvalid:
		return zero, s.Errors
	case OutcomeIgnored:
		return zero, ErrSubmitIgnored
	}
	if s.run == nil {
		return zero, ErrSubmitNotStarted
	}
	select {
	case <-s.run.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	return s.run.future.AwaitContext(ctx)
}

// State is a consistent snapshot of a controller. ValidationErrors holds the
// same entries as Errors in field declaration order.
type State[T any] struct {
	Values           T
	Errors           map[string]string
	ValidationErrors validator.ValidationErrors
	Status           Status
	Result          *T
	Err             error
	PasswordVisible bool
}

// Controller owns one mounted form instance. All methods are safe for
// concurrent use.
type Controller[T any] struct {
	mu sync.Mutex

	schema *Schema[T]
	fsm    *statemachine.Machine[Status, Event]
	values T
	errors map[string]validator.ValidationError
	result *T
	err    error

	inflight *run[T]
	closed   bool
	ctx      context.Context
	cancel   context.CancelFunc

	visibility PasswordVisibility

	log                *slog.Logger
	action             Action[T]
	notifier           Notifier
	session            string
	toastDuration      time.Duration
	successTitle       string
	successDescription string
	failureTitle       string
	validateOnChange   bool
	onStatus           func(ctx context.Context, from, to Status)
}

// NewController mounts a form: zero values, no errors, status Idle.
func NewController[T any](schema *Schema[T], opts ...Option[T]) *Controller[T] {
	if schema == nil {
		panic(fmt.Errorf("%w: nil schema", ErrInvalidField))
	}

	c := &Controller[T]{
		schema:             schema,
		errors:             make(map[string]validator.ValidationError),
		log:                slog.Default(),
		action:             Simulate[T](DefaultSubmitDelay),
		notifier:           nopNotifier{},
		toastDuration:      notifications.DefaultDuration,
		successTitle:       DefaultSuccessTitle,
		successDescription: DefaultSuccessDescription,
		failureTitle:       DefaultFailureTitle,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.With(logger.Component("form"), logger.Form(schema.Name()), logger.SessionID(c.session))
	c.fsm = newLifecycle(c.log, schema.Name(), c.onStatus)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

func (c *Controller[T]) Schema() *Schema[T] {
	return c.schema
}

// Update applies fn to the values and clears the error entries of the named
// fields. With WithValidateOnChange those fields are validated again instead.
// Unknown field names are rejected before fn runs.
func (c *Controller[T]) Update(fn func(*T), fields ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	for _, name := range fields {
		if !c.schema.Has(name) {
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	fn(&c.values)

	for _, name := range fields {
		delete(c.errors, name)
		if !c.validateOnChange {
			continue
		}
		f, _ := c.schema.Field(name)
		if verr := validator.Check(f.Name, f.Value(c.values), f.Rules); verr != nil {
			c.errors[name] = *verr
		}
	}
	return nil
}

// Submit validates every field and, when all pass, starts the action in the
// background. The action runs on the controller's lifetime, not on ctx.
func (c *Controller[T]) Submit(ctx context.Context) Submission[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.fsm.CanFire(ctx, EventSubmit, nil) {
		c.log.DebugContext(ctx, "submit ignored", logger.Status(c.fsm.Current()))
		return Submission[T]{Outcome: OutcomeIgnored}
	}

	errs := c.schema.Validate(c.values)
	clear(c.errors)
	for _, verr := range errs {
		c.errors[verr.Field] = verr
	}

	if !errs.IsEmpty() {
		if !c.fsm.Is(StatusIdle) {
			if err := c.fsm.Fire(ctx, EventInvalidate, nil); err != nil {
				c.log.ErrorContext(ctx, "failed to reset form status", logger.Error(err))
			}
		}
		c.log.DebugContext(ctx, "form validation failed", logger.Fields(errs.Fields()...))
		return Submission[T]{Outcome: OutcomeInvalid, Errors: errs}
	}

	if err := c.fsm.Fire(ctx, EventSubmit, nil); err != nil {
		c.log.ErrorContext(ctx, "failed to start submission", logger.Error(err))
		return Submission[T]{Outcome: OutcomeIgnored}
	}

	c.result = nil
	c.err = nil

	r := &run[T]{
		id:   uuid.NewString(),
		done: make(chan struct{}),
	}
	r.future = async.Go(c.ctx, c.values, c.action)
	c.inflight = r
	go c.settle(r)

	c.log.InfoContext(ctx, "submission started", logger.SubmissionID(r.id))
	return Submission[T]{ID: r.id, Outcome: OutcomeStarted, run: r}
}

func (c *Controller[T]) settle(r *run[T]) {
	started := time.Now()
	defer close(r.done)
	res, err := r.future.AwaitContext(c.ctx)

	c.mu.Lock()
	if c.closed || c.inflight != r {
		c.mu.Unlock()
		c.log.Debug("submission completed after unmount", logger.SubmissionID(r.id))
		return
	}
	c.inflight = nil

	ctx := c.ctx
	var toast notifications.Toast
	if err != nil {
		c.err = err
		if ferr := c.fsm.Fire(ctx, EventReject, nil); ferr != nil {
			c.log.Error("failed to record submission failure", logger.Error(ferr))
		}
		toast = notifications.Failure(c.failureTitle, err.Error())
		c.log.Warn("submission failed",
			logger.SubmissionID(r.id), logger.Error(err), logger.Duration(time.Since(started)))
	} else {
		c.result = &res
		if ferr := c.fsm.Fire(ctx, EventResolve, nil); ferr != nil {
			c.log.Error("failed to record submission result", logger.Error(ferr))
		}
		toast = notifications.Success(c.successTitle, c.successDescription)
		c.log.Info("submission succeeded",
			logger.SubmissionID(r.id), logger.Duration(time.Since(started)))
		c.log.Debug("submission result", logger.SubmissionID(r.id), slog.Any("result", res))
	}
	toast.Session = c.session
	toast.Duration = c.toastDuration
	c.mu.Unlock()

	if _, nerr := c.notifier.Notify(ctx, toast); nerr != nil {
		c.log.Error("failed to show toast", logger.SubmissionID(r.id), logger.Error(nerr))
	}
}

func (c *Controller[T]) Values() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Errors returns the current field -> message mapping.
func (c *Controller[T]) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMap()
}

// ValidationErrors returns the current error entries in field declaration order.
func (c *Controller[T]) ValidationErrors() validator.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderedErrors()
}

func (c *Controller[T]) Status() Status {
	return c.fsm.Current()
}

// Result returns the record produced by the last successful submission.
func (c *Controller[T]) Result() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		var zero T
		return zero, false
	}
	return *c.result, true
}

// Err returns the error of the last failed submission.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Controller[T]) PasswordVisibility() *PasswordVisibility {
	return &c.visibility
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State[T]{
		Values:           c.values,
		Errors:           c.errorMap(),
		ValidationErrors: c.orderedErrors(),
		Status:           c.fsm.Current(),
		Err:              c.err,
		PasswordVisible:  c.visibility.Visible(),
	}
	if c.result != nil {
		res := *c.result
		st.Result = &res
	}
	return st
}

// Closed reports whether the form has been unmounted.
func (c *Controller[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close unmounts the form. An in-flight action is cancelled and its completion
// changes nothing. Safe to call more than once.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.inflight != nil {
		c.inflight.future.Cancel()
		c.inflight = nil
	}
	c.cancel()
}

func (c *Controller[T]) errorMap() map[string]string {
	m := make(map[string]string, len(c.errors))
	for name, verr := range c.errors {
		m[name] = verr.Message
	}
	return m
}

func (c *Controller[T]) orderedErrors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, name := range c.schema.FieldNames() {
		if verr, ok := c.errors[name]; ok {
			errs.Add(verr)
		}
	}
	return errs
}
