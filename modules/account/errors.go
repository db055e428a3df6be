package account

import "errors"

var (
	ErrUnknownForm     = errors.New("account: unknown form")
	ErrSessionNotFound = errors.New("account: form session not found")
	ErrServiceClosed   = errors.New("account: service closed")
)
