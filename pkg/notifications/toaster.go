package notifications

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formflow/pkg/logger"
)

// Toaster keeps the set of visible toasts, auto-dismisses them when their
// duration elapses and forwards every change to a Deliverer.
type Toaster struct {
	deliverer Deliverer
	logger    *slog.Logger
	now       func() time.Time

	mu     sync.Mutex
	active map[string]*entry
	closed bool
}

type entry struct {
	toast Toast
	timer *time.Timer
}

// ToasterOption configures a Toaster.
type ToasterOption func(*Toaster)

// WithDeliverer sets where toast events go. Nil is ignored.
func WithDeliverer(d Deliverer) ToasterOption {
	return func(t *Toaster) {
		if d != nil {
			t.deliverer = d
		}
	}
}

// WithLogger sets the logger for the Toaster.
func WithLogger(log *slog.Logger) ToasterOption {
	return func(t *Toaster) {
		if log != nil {
			t.logger = log
		}
	}
}

// WithClock overrides time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) ToasterOption {
	return func(t *Toaster) {
		if now != nil {
			t.now = now
		}
	}
}

// NewToaster creates a toaster.
func NewToaster(opts ...ToasterOption) *Toaster {
	t := &Toaster{
		deliverer: NoOpDeliverer{},
		logger:    slog.Default(),
		now:       time.Now,
		active:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify shows toast. It assigns an ID and creation time when missing and
// schedules auto-dismissal for a positive Duration. Delivery is best effort:
// a deliverer failure is logged and the toast stays active.
func (t *Toaster) Notify(ctx context.Context, toast Toast) (Toast, error) {
	if toast.ID == "" {
		toast.ID = uuid.NewString()
	}
	if toast.CreatedAt.IsZero() {
		toast.CreatedAt = t.now()
	}
	if toast.Severity == "" {
		toast.Severity = SeverityInfo
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Toast{}, ErrToasterClosed
	}
	e := &entry{toast: toast}
	if toast.Duration > 0 {
		id := toast.ID
		e.timer = time.AfterFunc(toast.Duration, func() { t.expire(id) })
	}
	t.active[toast.ID] = e
	t.mu.Unlock()

	t.deliver(ctx, Event{Type: EventShown, Toast: toast})
	return toast, nil
}

// Dismiss removes a dismissible toast before its duration elapses.
func (t *Toaster) Dismiss(ctx context.Context, id string) error {
	t.mu.Lock()
	e, ok := t.active[id]
	if !ok {
		t.mu.Unlock()
		return ErrToastNotFound
	}
	if !e.toast.Dismissible {
		t.mu.Unlock()
		return ErrNotDismissible
	}
	t.remove(id, e)
	t.mu.Unlock()

	t.deliver(ctx, Event{Type: EventDismissed, Toast: e.toast})
	return nil
}

// Active returns visible toasts, oldest first. An empty session returns all.
func (t *Toaster) Active(session string) []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Toast, 0, len(t.active))
	for _, e := range t.active {
		if session == "" || e.toast.Session == session {
			out = append(out, e.toast)
		}
	}
	slices.SortFunc(out, func(a, b Toast) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Close stops all pending auto-dismiss timers and rejects further toasts.
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	for id, e := range t.active {
		t.remove(id, e)
	}
}

func (t *Toaster) expire(id string) {
	t.mu.Lock()
	e, ok := t.active[id]
	if !ok {
		t.mu.Unlock()
		return
	}
	t.remove(id, e)
	t.mu.Unlock()

	t.deliver(context.Background(), Event{Type: EventDismissed, Toast: e.toast})
}

// remove must be called with the lock held.
func (t *Toaster) remove(id string, e *entry) {
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(t.active, id)
}

func (t *Toaster) deliver(ctx context.Context, ev Event) {
	if err := t.deliverer.Deliver(ctx, ev); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "failed to deliver toast event",
			logger.ToastID(ev.Toast.ID),
			slog.String("event_type", string(ev.Type)),
			logger.Error(err),
		)
	}
}
