package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formflow/modules/account"
	"github.com/dmitrymomot/formflow/pkg/httpserver"
	"github.com/dmitrymomot/formflow/pkg/i18n"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/notifications"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the form API over HTTP",
	Long: `Serve the form API until SIGINT or SIGTERM.

Routes:
  GET    /health/live
  GET    /health/ready
  GET    /api/forms[/{form}]
  POST   /api/forms/{form}/sessions
  GET    /api/sessions/{id}
  PATCH  /api/sessions/{id}
  DELETE /api/sessions/{id}
  POST   /api/sessions/{id}/submit
  POST   /api/sessions/{id}/password-visibility
  GET    /api/sessions/{id}/toasts
  GET    /api/sessions/{id}/stream
  GET    /api/toasts
  DELETE /api/toasts/{id}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tr, err := account.NewTranslator(ctx,
		i18n.WithDefaultLanguage(cfg.Form.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(),
	)
	if err != nil {
		return exitWith(ExitConfig, err)
	}

	stream := notifications.NewBroadcastDeliverer(cfg.Form.StreamBuffer)
	toaster := notifications.NewToaster(
		notifications.WithDeliverer(notifications.NewMultiDeliverer(log, stream, notifications.NewLogDeliverer(log))),
		notifications.WithLogger(log),
	)
	svc := account.NewService(cfg.Form,
		account.WithLogger(log),
		account.WithTranslator(tr),
		account.WithNotifier(toaster),
	)

	r := chi.NewRouter()
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, func(context.Context) error {
		if len(tr.SupportedLanguages()) == 0 {
			return i18n.ErrNoTranslations
		}
		return nil
	}))
	r.Mount("/api", account.Router(account.RouterOptions{
		Service:    svc,
		Translator: tr,
		Toaster:    toaster,
		Stream:     stream,
		Logger:     log,
	}))

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithShutdownHook(func(context.Context) error {
			svc.Close()
			toaster.Close()
			return stream.Close()
		}),
	)

	log.InfoContext(ctx, "starting", logger.Component("formflow"))
	if err := srv.Run(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return exitWith(ExitError, err)
	}
	return nil
}
