package main

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formflow/modules/account"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/i18n"
	"github.com/dmitrymomot/formflow/pkg/notifications"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

var (
	submitForm  string
	submitSet   []string
	submitLang  string
	submitDelay time.Duration
)

func init() {
	submitCmd.Flags().StringVar(&submitForm, "form", account.FormSignUp, "Form to submit (login, signup or hook)")
	submitCmd.Flags().StringArrayVar(&submitSet, "set", nil, "Field value as name=value; repeatable")
	submitCmd.Flags().StringVar(&submitLang, "lang", "", "Language of messages; defaults to FORMFLOW_LANG")
	submitCmd.Flags().DurationVar(&submitDelay, "delay", -1, "Override the simulated submit delay")
	rootCmd.AddCommand(submitCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill and submit a form once",
	Long: `Mount a form, assign the given values, submit it and print the outcome
together with the final state and the toasts shown.

Exit codes: 3 when validation fails, 4 when the action fails.

Example:
  formflow submit --form login --set email=a@b.com --set 'password=Abcdef1!'`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

type submitOutput struct {
	Submission account.Submission    `json:"submission"`
	State      account.Snapshot      `json:"state"`
	Toasts     []notifications.Toast `json:"toasts"`
}

type toastLog struct {
	mu     sync.Mutex
	toasts []notifications.Toast
}

func (l *toastLog) Notify(_ context.Context, toast notifications.Toast) (notifications.Toast, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.toasts = append(l.toasts, toast)
	return toast, nil
}

func (l *toastLog) list() []notifications.Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.toasts)
}

func parseAssignments(pairs []string) (url.Values, error) {
	values := url.Values{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", pair)
		}
		values.Add(name, value)
	}
	return values, nil
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if submitDelay >= 0 {
		cfg.Form.SubmitDelay = submitDelay
	}

	values, err := parseAssignments(submitSet)
	if err != nil {
		return exitWith(ExitError, err)
	}

	ctx := cmd.Context()
	tr, err := account.NewTranslator(ctx, i18n.WithDefaultLanguage(cfg.Form.DefaultLanguage), i18n.WithLogger(log))
	if err != nil {
		return exitWith(ExitConfig, err)
	}
	lang := tr.Match(submitLang)

	toasts := &toastLog{}
	svc := account.NewService(cfg.Form,
		account.WithLogger(log),
		account.WithTranslator(tr),
		account.WithNotifier(toasts),
	)
	defer svc.Close()

	snap, err := svc.Mount(ctx, submitForm, lang)
	if err != nil {
		return exitWith(ExitError, err)
	}

	fields, err := svc.Set(snap.ID, values)
	if err != nil {
		return exitWith(ExitError, err)
	}
	for name := range values {
		if !slices.Contains(fields, name) {
			return exitWith(ExitError, fmt.Errorf("%w: %q", form.ErrUnknownField, name))
		}
	}

	sub, err := svc.Submit(ctx, snap.ID, lang)
	if err != nil {
		return exitWith(ExitError, err)
	}
	waitErr := sub.Wait(ctx)

	state, err := svc.Snapshot(snap.ID, lang)
	if err != nil {
		return exitWith(ExitError, err)
	}
	if err := render(cmd.OutOrStdout(), submitOutput{Submission: sub, State: state, Toasts: toasts.list()}); err != nil {
		return err
	}

	switch {
	case waitErr == nil:
		return nil
	case validator.IsValidationError(waitErr):
		return exitWith(ExitInvalid, nil)
	default:
		return exitWith(ExitFailed, nil)
	}
}
