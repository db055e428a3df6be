package account

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formflow/pkg/broadcast"
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/i18n"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/phone"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Translation keys of the toast texts.
const (
	KeySuccessTitle       = "toast.success.title"
	KeySuccessDescription = "toast.success.description"
	KeyFailureTitle       = "toast.failure.title"
)

// Service keeps the mounted forms of every client session. Each mounted form
// owns its controller; Unmount disposes it.
type Service struct {
	cfg        Config
	log        *slog.Logger
	translator *i18n.Translator
	notifier   form.Notifier
	phone      *phone.Validator

	loginSchema  *form.Schema[Login]
	signUpSchema *form.Schema[SignUp]
	hookSchema   *form.Schema[HookForm]

	loginAction  form.Action[Login]
	signUpAction form.Action[SignUp]
	hookAction   form.Action[HookForm]

	changes *broadcast.MemoryBroadcaster[Change]

	mu       sync.RWMutex
	sessions map[string]session
	closed   bool
}

type ServiceOption func(*Service)

func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTranslator localizes validation messages and toast texts.
func WithTranslator(t *i18n.Translator) ServiceOption {
	return func(s *Service) {
		s.translator = t
	}
}

// WithNotifier receives the toasts emitted when submissions settle.
func WithNotifier(n form.Notifier) ServiceOption {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithLoginAction(a form.Action[Login]) ServiceOption {
	return func(s *Service) {
		s.loginAction = a
	}
}

func WithSignUpAction(a form.Action[SignUp]) ServiceOption {
	return func(s *Service) {
		s.signUpAction = a
	}
}

func WithHookAction(a form.Action[HookForm]) ServiceOption {
	return func(s *Service) {
		s.hookAction = a
	}
}

func NewService(cfg Config, opts ...ServiceOption) *Service {
	pv := phone.New(phone.WithDefaultRegion(cfg.PhoneRegion))
	s := &Service{
		cfg:          cfg,
		log:          logger.Discard(),
		phone:        pv,
		loginSchema:  LoginSchema(),
		signUpSchema: SignUpSchema(pv),
		hookSchema:   HookFormSchema(pv),
		sessions:     make(map[string]session),
		changes:      broadcast.NewMemoryBroadcaster[Change](changeBuffer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("account"))
	return s
}

// Mount creates a form session in its initial state. lang selects the
// language of the toasts the session emits.
func (s *Service) Mount(ctx context.Context, name, lang string) (Snapshot, error) {
	id := uuid.NewString()

	var sess session
	switch name {
	case FormLogin:
		sess = mountForm(s, id, lang, s.loginSchema, s.loginAction, nil, mergeLogin, redactLogin)
	case FormSignUp:
		sess = mountForm(s, id, lang, s.signUpSchema, s.signUpAction, s.normalizeSignUp, mergeSignUp, redactSignUp)
	case FormHook:
		sess = mountForm(s, id, lang, s.hookSchema, s.hookAction, s.normalizeHookForm, mergeHookForm, redactHookForm)
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.close()
		return Snapshot{}, ErrServiceClosed
	}
	s.sessions[id] = sess
	s.mu.Unlock()

	s.log.InfoContext(ctx, "form mounted", logger.Form(name), logger.SessionID(id))
	return s.localize(sess.snapshot(), lang), nil
}

// mountForm builds the controller of one session. normalize, when set, runs
// on the validated record before the action sees it.
func mountForm[T any](s *Service, id, lang string, schema *form.Schema[T], action form.Action[T], normalize func(T) T, merge func(*T, T, []string), redact func(T) T) session {
	if normalize != nil {
		if action == nil {
			action = form.Simulate[T](s.cfg.SubmitDelay)
		}
		next := action
		action = func(ctx context.Context, values T) (T, error) {
			return next(ctx, normalize(values))
		}
	}

	opts := []form.Option[T]{
		form.WithLogger[T](s.log),
		form.WithSubmitDelay[T](s.cfg.SubmitDelay),
		form.WithSession[T](id),
		form.WithToastDuration[T](s.cfg.ToastDuration),
		form.WithSuccessMessage[T](
			s.text(lang, KeySuccessTitle, form.DefaultSuccessTitle),
			s.text(lang, KeySuccessDescription, form.DefaultSuccessDescription),
		),
		form.WithFailureTitle[T](s.text(lang, KeyFailureTitle, form.DefaultFailureTitle)),
		form.WithStatusListener[T](func(ctx context.Context, _, to form.Status) {
			s.publish(ctx, Change{Session: id, Status: to})
		}),
	}
	if action != nil {
		opts = append(opts, form.WithAction(action))
	}
	if s.notifier != nil {
		opts = append(opts, form.WithNotifier[T](s.notifier))
	}
	if s.cfg.ValidateOnChange {
		opts = append(opts, form.WithValidateOnChange[T]())
	}
	return &mounted[T]{
		sid:    id,
		ctrl:   form.NewController(schema, opts...),
		merge:  merge,
		redact: redact,
	}
}

// formatPhone returns number in E.164 form, or number unchanged when it does
// not parse.
func (s *Service) formatPhone(number string) string {
	if formatted, err := s.phone.Format(number); err == nil {
		return formatted
	}
	return number
}

func (s *Service) normalizeSignUp(v SignUp) SignUp {
	v.Phone = s.formatPhone(v.Phone)
	return v
}

func (s *Service) normalizeHookForm(v HookForm) HookForm {
	v.Phone = s.formatPhone(v.Phone)
	return v
}

// Snapshot returns the current state of a session with validation messages
// in lang.
func (s *Service) Snapshot(id, lang string) (Snapshot, error) {
	sess, err := s.session(id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.localize(sess.snapshot(), lang), nil
}

// Bind decodes a JSON or form request into the session values. Only the
// fields present in the request change.
func (s *Service) Bind(id string, r *http.Request) ([]string, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	fields, err := sess.bind(r)
	if err == nil && len(fields) > 0 {
		s.touched(id, sess)
	}
	return fields, err
}

// Set assigns values keyed by field name.
func (s *Service) Set(id string, values url.Values) ([]string, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	fields, err := sess.set(values)
	if err == nil && len(fields) > 0 {
		s.touched(id, sess)
	}
	return fields, err
}

// Submit validates the session and starts its action when valid.
func (s *Service) Submit(ctx context.Context, id, lang string) (Submission, error) {
	sess, err := s.session(id)
	if err != nil {
		return Submission{}, err
	}
	sub := sess.submit(ctx)
	if len(sub.validation) > 0 {
		sub.Errors = s.messages(lang, sub.validation)
	}
	if sub.Outcome == form.OutcomeInvalid {
		s.publish(ctx, Change{Session: id, Status: sess.status()})
	}
	return sub, nil
}

// TogglePassword flips password visibility and returns the new value.
func (s *Service) TogglePassword(id string) (bool, error) {
	sess, err := s.session(id)
	if err != nil {
		return false, err
	}
	visible := sess.togglePassword()
	s.touched(id, sess)
	return visible, nil
}

// Unmount disposes a session. A submission still in flight completes
// without touching state or emitting a toast.
func (s *Service) Unmount(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	sess.close()
	s.publish(ctx, Change{Session: id, Status: sess.status(), Closed: true})
	s.log.InfoContext(ctx, "form unmounted", logger.Form(sess.form()), logger.SessionID(id))
	return nil
}

// Sessions lists mounted session ids.
func (s *Service) Sessions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close unmounts every session and ends all change subscriptions. Mount fails
// afterwards.
func (s *Service) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]session)
	s.closed = true
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
	_ = s.changes.Close()
}

func (s *Service) session(id string) (session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

func (s *Service) localize(snap Snapshot, lang string) Snapshot {
	snap.Errors = s.messages(lang, snap.validation)
	return snap
}

func (s *Service) messages(lang string, errs validator.ValidationErrors) map[string]string {
	if s.translator == nil {
		return errs.Map()
	}
	return s.translator.Localize(lang, errs)
}

func (s *Service) text(lang, key, fallback string) string {
	if s.translator == nil {
		return fallback
	}
	if v := s.translator.T(lang, key); v != key {
		return v
	}
	return fallback
}
