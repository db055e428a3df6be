package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Form records the form name under the key "form".
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Fields records the names of several fields under the key "fields".
func Fields(names ...string) slog.Attr {
	return slog.Any("fields", names)
}

// Status records a submission status under the key "status".
func Status(status any) slog.Attr {
	return slog.Any("status", status)
}

// SubmissionID records the submission attempt identifier under the key "submission_id".
// An empty id yields an empty Attr.
func SubmissionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("submission_id", id)
}

// SessionID records the form session identifier under the key "session_id".
// An empty id yields an empty Attr.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// ToastID records the toast identifier under the key "toast_id".
// An empty id yields an empty Attr.
func ToastID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("toast_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}
