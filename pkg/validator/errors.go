package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrUnknownRule is the panic value for a rule with an undefined kind.
	ErrUnknownRule = errors.New("unknown rule kind")

	// ErrInvalidRule is the panic value for a rule missing its matcher or predicate.
	ErrInvalidRule = errors.New("invalid rule definition")
)
