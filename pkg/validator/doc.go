// Package validator implements the field rule engine used by form schemas.
//
// A Rule is a tagged value over four kinds: Required, Pattern, MinLength and
// Custom. Rules are declared once, next to a field definition, and evaluated
// against the field's current Value every time the form is validated. The
// first failing rule of a field wins; its message becomes the field error.
//
// # Values
//
// Form fields hold either a string, a boolean, or nothing at all (a field
// that was never touched). Value models the three cases explicitly so that
// Required can treat "", false and undefined uniformly.
//
// # Rules
//
//	rules := []validator.Rule{
//	    validator.Required("E-mail is required"),
//	    validator.Pattern(validator.EmailPattern, "Invalid email address"),
//	}
//	if msg, ok := validator.ValidateField(validator.String(email), rules); !ok {
//	    // show msg next to the field
//	}
//
// Rules other than Required are skipped for empty values, so an optional
// field left blank is valid.
//
// Regular expressions are compiled once. MustPattern panics on a malformed
// expression and Evaluate panics on an unknown rule kind: both are
// programming errors and must surface during development, never at runtime
// for end users.
//
// # Error Handling
//
// ValidationErrors aggregates one ValidationError per failing field and
// implements the error interface. Each entry carries a translation key and
// values so the message can be localised later.
package validator
