package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formflow/pkg/logger"
)

// NewErrorHandler renders errors as JSON envelopes. Client errors are logged
// at warn level and server errors at error level.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		resp := JSONError(err)
		status := http.StatusInternalServerError
		if jr, ok := resp.(*jsonResponse); ok {
			status = jr.status
		}

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error", logger.Error(renderErr))
		}
	}
}
