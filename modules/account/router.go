package account

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formflow/handler"
	"github.com/dmitrymomot/formflow/pkg/binder"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/i18n"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/notifications"
	"github.com/dmitrymomot/formflow/pkg/requestid"
)

// RouterOptions configures the form API. Service is required; the rest are
// optional. Without Toaster the toast routes are absent; without Stream the
// session stream carries no toasts.
type RouterOptions struct {
	Service    *Service
	Translator *i18n.Translator
	Toaster    *notifications.Toaster
	Stream     *notifications.BroadcastDeliverer
	Logger     *slog.Logger
}

// Router creates the form API router.
//
// Example:
//
//	svc := account.NewService(cfg, account.WithNotifier(toaster))
//
//	r := chi.NewRouter()
//	r.Mount("/api", account.Router(account.RouterOptions{
//	    Service: svc,
//	    Toaster: toaster,
//	}))
func Router(opts RouterOptions) chi.Router {
	if opts.Service == nil {
		panic("account: router requires a service")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	h := &api{
		svc:     opts.Service,
		toaster: opts.Toaster,
		stream:  opts.Stream,
		log:     log.With(logger.Component("account_api")),
		onError: handler.NewErrorHandler(log),
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	if opts.Translator != nil {
		r.Use(i18n.Middleware(opts.Translator))
	}

	r.Get("/forms", wrap(h, h.listForms))
	r.Get("/forms/{form}", wrap(h, h.describe, bindFormName))
	r.Post("/forms/{form}/sessions", wrap(h, h.mount, bindFormName))

	r.Route("/sessions/{id}", func(s chi.Router) {
		s.Get("/", wrap(h, h.snapshot, bindSessionID))
		s.Patch("/", wrap(h, h.update, bindSessionID))
		s.Delete("/", wrap(h, h.unmount, bindSessionID))
		s.Post("/submit", wrap(h, h.submit, bindSessionID))
		s.Post("/password-visibility", wrap(h, h.togglePassword, bindSessionID))
		if opts.Toaster != nil {
			s.Get("/toasts", wrap(h, h.toasts, bindSessionID))
		}
		s.Get("/stream", wrap(h, h.streamSession, bindSessionID))
	})

	if opts.Toaster != nil {
		r.Get("/toasts", wrap(h, h.allToasts))
		r.Delete("/toasts/{id}", wrap(h, h.dismiss, bindToastID))
	}

	return r
}

type api struct {
	svc     *Service
	toaster *notifications.Toaster
	stream  *notifications.BroadcastDeliverer
	log     *slog.Logger
	onError handler.ErrorHandler[handler.Context]
}

func wrap[R any](h *api, fn handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	opts := []handler.WrapOption[handler.Context, R]{
		handler.WithErrorHandler[handler.Context, R](h.onError),
	}
	for _, b := range binders {
		opts = append(opts, handler.WithBinder[handler.Context, R](b))
	}
	return handler.Wrap(fn, opts...)
}

type formRequest struct {
	Form string
}

type sessionRequest struct {
	ID string
}

type toastRequest struct {
	ID string
}

func bindFormName(r *http.Request, v any) error {
	req, ok := v.(*formRequest)
	if !ok {
		return handler.ErrInternalServerError
	}
	req.Form = chi.URLParam(r, "form")
	return nil
}

func bindSessionID(r *http.Request, v any) error {
	req, ok := v.(*sessionRequest)
	if !ok {
		return handler.ErrInternalServerError
	}
	req.ID = chi.URLParam(r, "id")
	if req.ID == "" {
		return handler.ErrBadRequest
	}
	return nil
}

func bindToastID(r *http.Request, v any) error {
	req, ok := v.(*toastRequest)
	if !ok {
		return handler.ErrInternalServerError
	}
	req.ID = chi.URLParam(r, "id")
	if req.ID == "" {
		return handler.ErrBadRequest
	}
	return nil
}

func (h *api) listForms(ctx handler.Context, _ struct{}) handler.Response {
	names := FormNames()
	forms := make([]FormInfo, 0, len(names))
	for _, name := range names {
		info, err := Describe(name)
		if err != nil {
			return handler.JSONError(httpError(err))
		}
		forms = append(forms, info)
	}
	return handler.JSON(forms)
}

func (h *api) describe(ctx handler.Context, req formRequest) handler.Response {
	info, err := Describe(req.Form)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(info)
}

func (h *api) mount(ctx handler.Context, req formRequest) handler.Response {
	snap, err := h.svc.Mount(ctx, req.Form, i18n.GetLocale(ctx))
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(snap, handler.WithJSONStatus(http.StatusCreated))
}

func (h *api) snapshot(ctx handler.Context, req sessionRequest) handler.Response {
	snap, err := h.svc.Snapshot(req.ID, i18n.GetLocale(ctx))
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(snap)
}

func (h *api) update(ctx handler.Context, req sessionRequest) handler.Response {
	fields, err := h.svc.Bind(req.ID, ctx.Request())
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	snap, err := h.svc.Snapshot(req.ID, i18n.GetLocale(ctx))
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(snap, handler.WithJSONMeta(map[string]any{"updated": fields}))
}

func (h *api) submit(ctx handler.Context, req sessionRequest) handler.Response {
	sub, err := h.svc.Submit(ctx, req.ID, i18n.GetLocale(ctx))
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	switch sub.Outcome {
	case form.OutcomeInvalid:
		return handler.JSONError(handler.ValidationError(sub.Errors))
	case form.OutcomeStarted:
		return handler.JSON(sub, handler.WithJSONStatus(http.StatusAccepted))
	default:
		return handler.JSON(sub, handler.WithJSONStatus(http.StatusConflict))
	}
}

func (h *api) togglePassword(ctx handler.Context, req sessionRequest) handler.Response {
	visible, err := h.svc.TogglePassword(req.ID)
	if err != nil {
		return handler.JSONError(httpError(err))
	}
	input := InputPassword
	if visible {
		input = InputText
	}
	return handler.JSON(map[string]any{"visible": visible, "input": input})
}

func (h *api) unmount(ctx handler.Context, req sessionRequest) handler.Response {
	if err := h.svc.Unmount(ctx, req.ID); err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.Empty()
}

func (h *api) toasts(ctx handler.Context, req sessionRequest) handler.Response {
	if _, err := h.svc.Snapshot(req.ID, ""); err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.JSON(h.toaster.Active(req.ID))
}

func (h *api) allToasts(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(h.toaster.Active(""))
}

func (h *api) dismiss(ctx handler.Context, req toastRequest) handler.Response {
	if err := h.toaster.Dismiss(ctx, req.ID); err != nil {
		return handler.JSONError(httpError(err))
	}
	return handler.Empty()
}

// streamSession pushes the session state and its toasts as datastar signals.
// The form signal is sent on every change of the session; a dismissed toast
// is sent as null, which removes it on the client. The stream ends when the
// session is unmounted.
func (h *api) streamSession(ctx handler.Context, req sessionRequest) handler.Response {
	lang := i18n.GetLocale(ctx)
	if _, err := h.svc.Snapshot(req.ID, lang); err != nil {
		return handler.JSONError(httpError(err))
	}

	return handler.SSE(func(sc handler.StreamContext) error {
		changes := h.svc.Subscribe(sc)
		defer changes.Close()

		var toasts <-chan notifications.Event
		if h.stream != nil {
			sub := h.stream.Subscribe(sc)
			defer sub.Close()
			toasts = sub.Messages()
		}

		snap, err := h.svc.Snapshot(req.ID, lang)
		if err != nil {
			return nil
		}
		if err := sc.SendSignal("form", snap); err != nil {
			return err
		}

		for {
			var signals map[string]any

			select {
			case <-sc.Done():
				return nil
			case change, ok := <-changes.Messages():
				if !ok || (change.Session == req.ID && change.Closed) {
					return nil
				}
				if change.Session != req.ID {
					continue
				}
				signals = map[string]any{}
			case ev, ok := <-toasts:
				if !ok {
					toasts = nil
					continue
				}
				if ev.Toast.Session != req.ID {
					continue
				}
				var toast any
				if ev.Type == notifications.EventShown {
					toast = ev.Toast
				}
				signals = map[string]any{
					"toasts": map[string]any{ev.Toast.ID: toast},
				}
			}

			current, err := h.svc.Snapshot(req.ID, lang)
			if err != nil {
				return nil
			}
			signals["form"] = current
			if err := sc.SendSignals(signals); err != nil {
				h.log.DebugContext(sc, "stream closed", logger.SessionID(req.ID), logger.Error(err))
				return nil
			}
		}
	})
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrUnknownForm),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, notifications.ErrToastNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, form.ErrClosed),
		errors.Is(err, ErrServiceClosed):
		return errors.Join(handler.ErrGone, err)
	case errors.Is(err, notifications.ErrNotDismissible):
		return errors.Join(handler.ErrConflict, err)
	case errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrMissingContentType):
		return errors.Join(handler.ErrUnsupportedMediaType, err)
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, form.ErrUnknownField):
		return errors.Join(handler.ErrBadRequest, err)
	default:
		return err
	}
}
