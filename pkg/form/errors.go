package form

import "errors"

var (
	ErrUnknownField     = errors.New("form: unknown field")
	ErrDuplicateField   = errors.New("form: duplicate field")
	ErrInvalidField     = errors.New("form: invalid field definition")
	ErrClosed           = errors.New("form: controller closed")
	ErrSubmitIgnored    = errors.New("form: submission already in progress")
	ErrSubmitNotStarted = errors.New("form: submission did not start")
)
