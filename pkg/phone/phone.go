package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

// DefaultRegion is used for numbers entered without a country calling code.
const DefaultRegion = "BR"

// Validator reports whether a phone number is valid.
type Validator struct {
	region string
}

// Option configures a Validator.
type Option func(*Validator)

// WithDefaultRegion sets the ISO 3166-1 region used for national numbers.
// Empty regions are ignored.
func WithDefaultRegion(region string) Option {
	return func(v *Validator) {
		if region = strings.TrimSpace(region); region != "" {
			v.region = strings.ToUpper(region)
		}
	}
}

// New creates a phone validator.
func New(opts ...Option) *Validator {
	v := &Validator{region: DefaultRegion}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Region returns the default region.
func (v *Validator) Region() string {
	return v.region
}

// Valid reports whether number parses and is a valid number for its region.
func (v *Validator) Valid(number string) bool {
	number = strings.TrimSpace(number)
	if number == "" {
		return false
	}
	parsed, err := phonenumbers.Parse(number, v.region)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}

// Format returns number in E.164 form, or ErrInvalidNumber.
func (v *Validator) Format(number string) (string, error) {
	parsed, err := phonenumbers.Parse(strings.TrimSpace(number), v.region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return "", ErrInvalidNumber
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}

// Rule adapts the validator into a Custom form rule.
func (v *Validator) Rule(message string) validator.Rule {
	return validator.Custom(func(val validator.Value) bool {
		return v.Valid(val.Text())
	}, message)
}
