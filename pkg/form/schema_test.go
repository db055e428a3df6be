package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

type profile struct {
	Name  string
	Email string
	Agree bool
}

func profileSchema() *form.Schema[profile] {
	return form.NewSchema("profile",
		form.Field[profile]{
			Name:  "name",
			Value: func(p profile) validator.Value { return validator.String(p.Name) },
			Rules: []validator.Rule{
				validator.Required("Name is required"),
				validator.MinLength(4, "Minimum length should be 4"),
			},
		},
		form.Field[profile]{
			Name:  "email",
			Value: func(p profile) validator.Value { return validator.String(p.Email) },
			Rules: []validator.Rule{
				validator.Required("E-mail is required"),
				validator.Pattern(validator.EmailPattern, "Invalid email address"),
			},
		},
		form.Field[profile]{
			Name:  "agree",
			Value: func(p profile) validator.Value { return validator.Bool(p.Agree) },
		},
	)
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	s := profileSchema()
	assert.Equal(t, "profile", s.Name())
	assert.Equal(t, []string{"name", "email", "agree"}, s.FieldNames())

	errs := s.Validate(profile{})
	assert.Equal(t, []string{"name", "email"}, errs.Fields())
	assert.Equal(t, "Name is required", errs.Get("name"))
	assert.False(t, errs.Has("agree"), "fields without rules never fail")

	errs = s.Validate(profile{Name: "Bob", Email: "a@b.com"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Minimum length should be 4", errs.Get("name"))

	assert.Empty(t, s.Validate(profile{Name: "Bobby", Email: "a@b.com"}))
}

func TestSchema_ValidateField(t *testing.T) {
	t.Parallel()

	s := profileSchema()

	verr, err := s.ValidateField("email", profile{Email: "a@@b.com"})
	require.NoError(t, err)
	require.NotNil(t, verr)
	assert.Equal(t, "Invalid email address", verr.Message)

	_, err = s.ValidateField("phone", profile{})
	assert.ErrorIs(t, err, form.ErrUnknownField)
}

func TestNewSchema_Panics(t *testing.T) {
	t.Parallel()

	value := func(p profile) validator.Value { return validator.String(p.Name) }

	assert.Panics(t, func() {
		form.NewSchema("dup",
			form.Field[profile]{Name: "name", Value: value},
			form.Field[profile]{Name: "name", Value: value},
		)
	})
	assert.Panics(t, func() {
		form.NewSchema("noaccessor", form.Field[profile]{Name: "name"})
	})
	assert.Panics(t, func() {
		form.NewSchema("noname", form.Field[profile]{Value: value})
	})
}

func TestPasswordVisibility(t *testing.T) {
	t.Parallel()

	var p form.PasswordVisibility
	assert.False(t, p.Visible())
	assert.Equal(t, "password", p.InputType())

	assert.True(t, p.Toggle())
	assert.Equal(t, "text", p.InputType())

	assert.False(t, p.Toggle())
	assert.Equal(t, "password", p.InputType())
}
