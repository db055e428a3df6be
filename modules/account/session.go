package account

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/formflow/pkg/binder"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Snapshot is the externally visible state of a mounted form. Passwords are
// never included in Values or Result.
type Snapshot struct {
	ID              string            `json:"id"`
	Form            string            `json:"form"`
	Status          form.Status       `json:"status"`
	Values          any               `json:"values"`
	Errors          map[string]string `json:"errors"`
	Result          any               `json:"result,omitempty"`
	Error           string            `json:"error,omitempty"`
	PasswordVisible bool              `json:"passwordVisible"`
	PasswordInput   string            `json:"passwordInput"`

	validation validator.ValidationErrors
}

// Submission reports how a submit request was handled.
type Submission struct {
	ID      string            `json:"id,omitempty"`
	Outcome form.Outcome      `json:"outcome"`
	Errors  map[string]string `json:"errors,omitempty"`

	validation validator.ValidationErrors
	wait       func(ctx context.Context) error
}

// Wait blocks until a started submission settles and returns the action
// error. Invalid submissions return their ValidationErrors, ignored ones
// form.ErrSubmitIgnored.
func (s Submission) Wait(ctx context.Context) error {
	if s.wait == nil {
		return form.ErrSubmitNotStarted
	}
	return s.wait(ctx)
}

// session erases the record type of a mounted controller.
type session interface {
	id() string
	form() string
	bind(r *http.Request) ([]string, error)
	set(values url.Values) ([]string, error)
	submit(ctx context.Context) Submission
	togglePassword() bool
	status() form.Status
	snapshot() Snapshot
	close()
}

type mounted[T any] struct {
	sid    string
	ctrl   *form.Controller[T]
	merge  func(dst *T, src T, fields []string)
	redact func(T) T
}

func (m *mounted[T]) id() string   { return m.sid }
func (m *mounted[T]) form() string { return m.ctrl.Schema().Name() }

func (m *mounted[T]) bind(r *http.Request) ([]string, error) {
	var src T
	fields, err := binder.Bind(r, &src)
	if err != nil {
		return nil, err
	}
	return m.apply(src, fields)
}

func (m *mounted[T]) set(values url.Values) ([]string, error) {
	var src T
	fields, err := binder.Values(values, &src)
	if err != nil {
		return nil, err
	}
	return m.apply(src, fields)
}

func (m *mounted[T]) apply(src T, fields []string) ([]string, error) {
	if len(fields) == 0 {
		return nil, nil
	}
	err := m.ctrl.Update(func(v *T) { m.merge(v, src, fields) }, fields...)
	if err != nil {
		return nil, err
	}
	return fields, nil
}

func (m *mounted[T]) submit(ctx context.Context) Submission {
	sub := m.ctrl.Submit(ctx)
	return Submission{
		ID:         sub.ID,
		Outcome:    sub.Outcome,
		validation: sub.Errors,
		wait: func(ctx context.Context) error {
			_, err := sub.Wait(ctx)
			return err
		},
	}
}

func (m *mounted[T]) togglePassword() bool {
	return m.ctrl.PasswordVisibility().Toggle()
}

func (m *mounted[T]) status() form.Status {
	return m.ctrl.Status()
}

func (m *mounted[T]) snapshot() Snapshot {
	state := m.ctrl.State()
	snap := Snapshot{
		ID:              m.sid,
		Form:            m.form(),
		Status:          state.Status,
		Values:          m.redact(state.Values),
		PasswordVisible: state.PasswordVisible,
		PasswordInput:   m.ctrl.PasswordVisibility().InputType(),
		validation:      state.ValidationErrors,
	}
	if state.Result != nil {
		snap.Result = m.redact(*state.Result)
	}
	if state.Err != nil {
		snap.Error = state.Err.Error()
	}
	return snap
}

func (m *mounted[T]) close() {
	m.ctrl.Close()
}
