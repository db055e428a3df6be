package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single field failure with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors, at most one per field.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidationFailed) match any ValidationErrors.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the message for field, or "" when the field is valid.
func (ve ValidationErrors) Get(field string) string {
	for _, err := range ve {
		if err.Field == field {
			return err.Message
		}
	}
	return ""
}

func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	seen := make(map[string]bool, len(ve))
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// Map returns field -> message.
func (ve ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(ve))
	for _, err := range ve {
		if _, ok := m[err.Field]; !ok {
			m[err.Field] = err.Message
		}
	}
	return m
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Kind tags the variant held by a Rule.
type Kind uint8

const (
	KindRequired Kind = iota + 1
	KindPattern
	KindMinLength
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindPattern:
		return "pattern"
	case KindMinLength:
		return "min_length"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Matcher is satisfied by *regexp.Regexp and by the composite password matcher.
type Matcher interface {
	MatchString(s string) bool
}

// Rule is a single check attached to a field. Construct it with Required,
// Pattern, MustPattern, MinLength or Custom.
type Rule struct {
	Kind    Kind
	Message string
	Key     string

	min     int
	matcher Matcher
	check   func(Value) bool
}

// WithKey returns a copy of r whose errors carry the given translation key.
func (r Rule) WithKey(key string) Rule {
	r.Key = key
	return r
}

// Evaluate reports whether v passes r. Non-required rules accept empty values.
// It panics on a rule with an unknown kind or a missing matcher/predicate.
func (r Rule) Evaluate(v Value) bool {
	switch r.Kind {
	case KindRequired:
		return !v.IsEmpty()
	case KindPattern:
		if r.matcher == nil {
			panic(fmt.Errorf("%w: pattern rule without matcher", ErrInvalidRule))
		}
		if v.IsEmpty() {
			return true
		}
		return r.matcher.MatchString(v.Text())
	case KindMinLength:
		if v.IsEmpty() {
			return true
		}
		return v.Len() >= r.min
	case KindCustom:
		if r.check == nil {
			panic(fmt.Errorf("%w: custom rule without predicate", ErrInvalidRule))
		}
		if v.IsEmpty() {
			return true
		}
		return r.check(v)
	default:
		panic(fmt.Errorf("%w: %s", ErrUnknownRule, r.Kind))
	}
}

func (r Rule) translationKey() string {
	if r.Key != "" {
		return r.Key
	}
	return "validation." + r.Kind.String()
}

// ValidateField evaluates rules in declared order and returns the first
// failing rule's message. ok is true when every rule passes.
func ValidateField(v Value, rules []Rule) (message string, ok bool) {
	for _, rule := range rules {
		if !rule.Evaluate(v) {
			return rule.Message, false
		}
	}
	return "", true
}

// Check is ValidateField for a named field. It returns nil when v is valid.
func Check(field string, v Value, rules []Rule) *ValidationError {
	for _, rule := range rules {
		if rule.Evaluate(v) {
			continue
		}
		values := map[string]any{"field": field}
		if rule.Kind == KindMinLength {
			values["min"] = rule.min
		}
		return &ValidationError{
			Field:             field,
			Message:           rule.Message,
			TranslationKey:    rule.translationKey(),
			TranslationValues: values,
		}
	}
	return nil
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
