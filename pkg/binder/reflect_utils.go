package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// structTarget validates v and returns the addressable struct behind it.
func structTarget(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv, nil
}

// tagName returns the name in tag, or "" when the field is skipped or untagged.
func tagName(field reflect.StructField, tag string) string {
	raw := field.Tag.Get(tag)
	if raw == "" || raw == "-" {
		return ""
	}
	name, _, _ := strings.Cut(raw, ",")
	return name
}

// fieldName is the canonical field identity: the form tag, then the json tag.
func fieldName(field reflect.StructField) string {
	if name := tagName(field, "form"); name != "" {
		return name
	}
	return tagName(field, "json")
}

// setFieldValue sets a scalar field from its first submitted value.
func setFieldValue(field reflect.Value, values []string) error {
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setFieldValue(field.Elem(), values)
	}

	if len(values) == 0 {
		return nil
	}
	value := sanitize(values[0])

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}

// parseBool accepts checkbox and switch spellings as well as strconv forms.
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

// sanitize strips NUL bytes, which no text input can legitimately produce.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

func sanitizeStrings(rv reflect.Value) {
	for i := range rv.NumField() {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(sanitize(f.String()))
		}
	}
}
