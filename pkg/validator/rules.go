package validator

import (
	"fmt"
	"regexp"
)

// Required fails on the empty string, undefined, and false.
func Required(message string) Rule {
	return Rule{Kind: KindRequired, Message: message}
}

// Pattern fails when the value does not match m. Anchor the expression to
// require a full match.
func Pattern(m Matcher, message string) Rule {
	if m == nil {
		panic(fmt.Errorf("%w: nil matcher", ErrInvalidRule))
	}
	return Rule{Kind: KindPattern, Message: message, matcher: m}
}

// MustPattern compiles expr and returns a Pattern rule. It panics on a
// malformed expression.
func MustPattern(expr, message string) Rule {
	return Pattern(regexp.MustCompile(expr), message)
}

// MinLength fails when the value is shorter than n characters.
func MinLength(n int, message string) Rule {
	if n < 0 {
		panic(fmt.Errorf("%w: negative min length %d", ErrInvalidRule, n))
	}
	return Rule{Kind: KindMinLength, Message: message, min: n}
}

// Custom delegates to an external predicate.
func Custom(check func(Value) bool, message string) Rule {
	if check == nil {
		panic(fmt.Errorf("%w: nil predicate", ErrInvalidRule))
	}
	return Rule{Kind: KindCustom, Message: message, check: check}
}
