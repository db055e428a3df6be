package form

import (
	"fmt"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Field declares one named input of record type T.
type Field[T any] struct {
	Name  string
	Value func(T) validator.Value
	Rules []validator.Rule
}

// Schema is an ordered, immutable set of fields with unique names.
type Schema[T any] struct {
	name   string
	fields []Field[T]
	index  map[string]int
}

// NewSchema builds a schema. It panics on an empty or duplicate field name
// and on a field without a Value accessor.
func NewSchema[T any](name string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		name:   name,
		fields: make([]Field[T], 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" || f.Value == nil {
			panic(fmt.Errorf("%w: %q in %s", ErrInvalidField, f.Name, name))
		}
		if _, ok := s.index[f.Name]; ok {
			panic(fmt.Errorf("%w: %q in %s", ErrDuplicateField, f.Name, name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

func (s *Schema[T]) Name() string {
	return s.name
}

// Fields returns the fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldNames returns the field names in declaration order.
func (s *Schema[T]) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

func (s *Schema[T]) Field(name string) (Field[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

func (s *Schema[T]) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Validate runs every field's rules against v. The result holds one entry per
// failing field, in declaration order, and is empty when v is valid.
func (s *Schema[T]) Validate(v T) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, f := range s.fields {
		if verr := validator.Check(f.Name, f.Value(v), f.Rules); verr != nil {
			errs.Add(*verr)
		}
	}
	return errs
}

// ValidateField runs the rules of a single field.
func (s *Schema[T]) ValidateField(name string, v T) (*validator.ValidationError, error) {
	f, ok := s.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return validator.Check(f.Name, f.Value(v), f.Rules), nil
}
