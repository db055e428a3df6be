// Package logger builds *slog.Logger instances the same way across the
// library, the HTTP surface and the CLI, and provides attribute helpers so
// keys stay consistent (form, field, status, session_id, toast_id, ...).
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formflow"),
//	    logger.WithContextValue("session_id", sessionKey{}),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "form submitted",
//	    logger.Form("signup"),
//	    logger.Status(form.StatusSucceeded),
//	)
//
// Options that receive invalid input (WithFormat, WithLevelName) panic:
// misconfiguration must stop startup rather than degrade logging silently.
// Error and the ID helpers return an empty attribute for nil or empty input,
// which slog omits.
package logger
