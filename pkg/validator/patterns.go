package validator

import "regexp"

var (
	// EmailPattern accepts a local part of letters, digits and
	// .!#$%&'*+/=?^_`{|}~- followed by @ and dot-separated domain labels.
	EmailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9-]+(?:\\.[a-zA-Z0-9-]+)*$")

	// PasswordPattern requires an uppercase letter, a lowercase letter, a
	// digit and one of #?!@$%^&*- anywhere in a string of at least 8
	// characters without line breaks.
	PasswordPattern Matcher = AllOf(
		regexp.MustCompile(`^[^\n\r\x{2028}\x{2029}]{8,}$`),
		regexp.MustCompile(`[A-Z]`),
		regexp.MustCompile(`[a-z]`),
		regexp.MustCompile(`[0-9]`),
		regexp.MustCompile(`[#?!@$%^&*-]`),
	)
)

// AllOf matches when every matcher matches. RE2 has no lookahead, so
// "contains each of these classes" patterns are expressed this way.
func AllOf(matchers ...Matcher) Matcher {
	return allOf(matchers)
}

type allOf []Matcher

func (a allOf) MatchString(s string) bool {
	for _, m := range a {
		if !m.MatchString(s) {
			return false
		}
	}
	return true
}
