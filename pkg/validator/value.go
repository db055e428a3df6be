package validator

import (
	"strconv"
	"unicode/utf16"
)

type valueKind uint8

const (
	kindUndefined valueKind = iota
	kindString
	kindBool
)

// Value is the current content of a form field: a string, a boolean, or
// undefined when the field has never been set.
type Value struct {
	kind valueKind
	s    string
	b    bool
}

// String wraps a text value.
func String(s string) Value {
	return Value{kind: kindString, s: s}
}

// Bool wraps a switch or checkbox value.
func Bool(b bool) Value {
	return Value{kind: kindBool, b: b}
}

// Undefined returns the value of a field that was never set.
func Undefined() Value {
	return Value{}
}

// IsUndefined reports whether the field was never set.
func (v Value) IsUndefined() bool {
	return v.kind == kindUndefined
}

// IsBool reports whether v holds a boolean.
func (v Value) IsBool() bool {
	return v.kind == kindBool
}

// IsEmpty reports whether v is undefined, the empty string, or false.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case kindString:
		return v.s == ""
	case kindBool:
		return !v.b
	default:
		return true
	}
}

// Text returns the textual form of v. Booleans render as "true"/"false",
// undefined as "".
func (v Value) Text() string {
	switch v.kind {
	case kindString:
		return v.s
	case kindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Bool returns the boolean content of v; false for non-boolean values.
func (v Value) Bool() bool {
	return v.kind == kindBool && v.b
}

// Len returns the length of the textual form in UTF-16 code units, the way
// browsers count input length. Characters outside the BMP count as two.
func (v Value) Len() int {
	n := 0
	for _, r := range v.Text() {
		n += utf16.RuneLen(r)
	}
	return n
}

// Equal reports whether two values hold the same kind and content.
func (v Value) Equal(other Value) bool {
	return v == other
}
