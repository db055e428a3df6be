package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	rules := []validator.Rule{validator.Required("Name is required")}

	tests := []struct {
		name  string
		value validator.Value
		valid bool
	}{
		{"undefined fails", validator.Undefined(), false},
		{"empty string fails", validator.String(""), false},
		{"false fails", validator.Bool(false), false},
		{"true passes", validator.Bool(true), true},
		{"text passes", validator.String("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := validator.ValidateField(tt.value, rules)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.Equal(t, "Name is required", msg)
			}
		})
	}
}

func TestEmailPattern(t *testing.T) {
	t.Parallel()

	valid := []string{
		"a@b.com",
		"a.b+c@sub.domain.co",
		"test@test.com",
		"o'hara@example.org",
		"x!#$%&*/=?^_`{|}~-@host",
	}
	for _, email := range valid {
		assert.True(t, validator.EmailPattern.MatchString(email), "should accept %q", email)
	}

	invalid := []string{
		"a@@b.com",
		"a@b..com",
		"@b.com",
		"ab.com",
		"a b@c.com",
		"a@b.com.",
		"a@b_c.com",
	}
	for _, email := range invalid {
		assert.False(t, validator.EmailPattern.MatchString(email), "should reject %q", email)
	}
}

func TestPasswordPattern(t *testing.T) {
	t.Parallel()

	valid := []string{
		"Abcdef1!",
		"!1fedcbA",
		"xY9-xxxxxxxxxxxx",
		"PASSWORd1#",
	}
	for _, password := range valid {
		assert.True(t, validator.PasswordPattern.MatchString(password), "should accept %q", password)
	}

	invalid := []string{
		"abcdef1!",   // no uppercase
		"Abcdefgh",   // no digit or special
		"ABCDEF1!",   // no lowercase
		"Abcdefg!",   // no digit
		"Abcdef12",   // no special
		"Abcd1!",     // too short
		"Abcd\nef1!", // line break
		"",
	}
	for _, password := range invalid {
		assert.False(t, validator.PasswordPattern.MatchString(password), "should reject %q", password)
	}
}

func TestPatternRule(t *testing.T) {
	t.Parallel()

	rules := []validator.Rule{
		validator.Required("E-mail is required"),
		validator.Pattern(validator.EmailPattern, "Invalid email address"),
	}

	msg, ok := validator.ValidateField(validator.String(""), rules)
	assert.False(t, ok)
	assert.Equal(t, "E-mail is required", msg, "first failing rule wins")

	msg, ok = validator.ValidateField(validator.String("a@@b.com"), rules)
	assert.False(t, ok)
	assert.Equal(t, "Invalid email address", msg)

	_, ok = validator.ValidateField(validator.String("a@b.com"), rules)
	assert.True(t, ok)

	t.Run("optional pattern accepts empty", func(t *testing.T) {
		rule := validator.MustPattern(`^\d+$`, "digits only")
		assert.True(t, rule.Evaluate(validator.String("")))
		assert.True(t, rule.Evaluate(validator.Undefined()))
		assert.False(t, rule.Evaluate(validator.String("12a")))
	})
}

func TestMinLength(t *testing.T) {
	t.Parallel()

	rules := []validator.Rule{validator.MinLength(4, "Minimum length should be 4")}

	msg, ok := validator.ValidateField(validator.String("Bob"), rules)
	assert.False(t, ok)
	assert.Equal(t, "Minimum length should be 4", msg)

	_, ok = validator.ValidateField(validator.String("Bobby"), rules)
	assert.True(t, ok)

	_, ok = validator.ValidateField(validator.String("Joã"), rules)
	assert.False(t, ok, "length counts code units, not bytes")

	_, ok = validator.ValidateField(validator.String("😀😀"), rules)
	assert.True(t, ok, "astral characters count as two code units")
}

func TestCustom(t *testing.T) {
	t.Parallel()

	var calls int
	rule := validator.Custom(func(v validator.Value) bool {
		calls++
		return strings.HasPrefix(v.Text(), "+55")
	}, "Invalid phone number")

	assert.True(t, rule.Evaluate(validator.String("+5511987654321")))
	assert.False(t, rule.Evaluate(validator.String("+1555")))
	assert.True(t, rule.Evaluate(validator.String("")))
	assert.Equal(t, 2, calls, "predicate is not called for empty values")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	rules := []validator.Rule{
		validator.Required("Name is required").WithKey("account.name.required"),
		validator.MinLength(4, "Minimum length should be 4"),
	}

	assert.Nil(t, validator.Check("name", validator.String("Bobby"), rules))

	verr := validator.Check("name", validator.String(""), rules)
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "account.name.required", verr.TranslationKey)

	verr = validator.Check("name", validator.String("Bob"), rules)
	require.NotNil(t, verr)
	assert.Equal(t, "validation.min_length", verr.TranslationKey)
	assert.Equal(t, 4, verr.TranslationValues["min"])
}

func TestProgrammingErrorsPanic(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { validator.MustPattern(`([a-z`, "broken") })
	assert.Panics(t, func() { validator.Custom(nil, "nil") })
	assert.Panics(t, func() { validator.MinLength(-1, "negative") })
	assert.Panics(t, func() {
		validator.Rule{Kind: validator.Kind(42)}.Evaluate(validator.String("x"))
	})
	assert.Panics(t, func() {
		validator.Rule{Kind: validator.KindPattern}.Evaluate(validator.String("x"))
	})
}

func TestValidateField_Idempotent(t *testing.T) {
	t.Parallel()

	rules := []validator.Rule{
		validator.Required("Password is required"),
		validator.Pattern(validator.PasswordPattern, "Invalid password"),
	}
	v := validator.String("abcdef1!")

	first, ok1 := validator.ValidateField(v, rules)
	second, ok2 := validator.ValidateField(v, rules)
	assert.Equal(t, first, second)
	assert.Equal(t, ok1, ok2)
}
