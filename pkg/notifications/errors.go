package notifications

import "errors"

var (
	// ErrToastNotFound is returned when a toast is not active.
	ErrToastNotFound = errors.New("toast not found")

	// ErrNotDismissible is returned when dismissing a toast that does not allow it.
	ErrNotDismissible = errors.New("toast is not dismissible")

	// ErrToasterClosed is returned by Notify after Close.
	ErrToasterClosed = errors.New("toaster closed")
)
