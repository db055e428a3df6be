package notifications

import (
	"encoding/json"
	"time"
)

// Severity is the visual severity of a toast.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultDuration is how long a toast stays visible unless configured otherwise.
const DefaultDuration = 3 * time.Second

// Toast is a short-lived, user-visible notification.
// A zero Duration keeps the toast until it is dismissed.
type Toast struct {
	ID          string
	Session     string
	Title       string
	Description string
	Severity    Severity
	Duration    time.Duration
	Dismissible bool
	CreatedAt   time.Time
}

// Success builds a dismissible success toast with the default duration.
func Success(title, description string) Toast {
	return Toast{
		Title:       title,
		Description: description,
		Severity:    SeveritySuccess,
		Duration:    DefaultDuration,
		Dismissible: true,
	}
}

// Failure builds a dismissible error toast with the default duration.
func Failure(title, description string) Toast {
	return Toast{
		Title:       title,
		Description: description,
		Severity:    SeverityError,
		Duration:    DefaultDuration,
		Dismissible: true,
	}
}

// ExpiresAt returns when the toast auto-dismisses, or the zero time if it never does.
func (t Toast) ExpiresAt() time.Time {
	if t.Duration <= 0 || t.CreatedAt.IsZero() {
		return time.Time{}
	}
	return t.CreatedAt.Add(t.Duration)
}

type toastJSON struct {
	ID          string     `json:"id"`
	Session     string     `json:"session,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Severity    Severity   `json:"severity"`
	DurationMs  int64      `json:"durationMs"`
	Dismissible bool       `json:"dismissible"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// MarshalJSON encodes the duration in milliseconds, the unit toast presenters
// expect, and adds expiresAt for toasts that auto-dismiss.
func (t Toast) MarshalJSON() ([]byte, error) {
	raw := toastJSON{
		ID:          t.ID,
		Session:     t.Session,
		Title:       t.Title,
		Description: t.Description,
		Severity:    t.Severity,
		DurationMs:  t.Duration.Milliseconds(),
		Dismissible: t.Dismissible,
		CreatedAt:   t.CreatedAt,
	}
	if exp := t.ExpiresAt(); !exp.IsZero() {
		raw.ExpiresAt = &exp
	}
	return json.Marshal(raw)
}

func (t *Toast) UnmarshalJSON(data []byte) error {
	var raw toastJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Toast{
		ID:          raw.ID,
		Session:     raw.Session,
		Title:       raw.Title,
		Description: raw.Description,
		Severity:    raw.Severity,
		Duration:    time.Duration(raw.DurationMs) * time.Millisecond,
		Dismissible: raw.Dismissible,
		CreatedAt:   raw.CreatedAt,
	}
	return nil
}

// EventType distinguishes a toast appearing from one going away.
type EventType string

const (
	EventShown     EventType = "shown"
	EventDismissed EventType = "dismissed"
)

// Event is what deliverers receive.
type Event struct {
	Type  EventType `json:"type"`
	Toast Toast     `json:"toast"`
}
