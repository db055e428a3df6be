package account

import (
	"github.com/dmitrymomot/formflow/pkg/form"
	"github.com/dmitrymomot/formflow/pkg/phone"
	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Form names.
const (
	FormLogin  = "login"
	FormSignUp = "signup"
	FormHook   = "hook"
)

// Field names, shared by form tags, schemas and error maps.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldOccupation  = "occupation"
	FieldPassword    = "password"
	FieldEmailAlerts = "sendEmailAlerts"
	FieldTerms       = "isAgreeTermsAndConditions"
)

// Minimum lengths enforced by the forms.
const (
	NameMinLength  = 4
	PhoneMinLength = 10
)

func key(field string, kind validator.Kind) string {
	return "validation." + field + "." + kind.String()
}

func nameRules() []validator.Rule {
	return []validator.Rule{
		validator.Required("Name is required").WithKey(key(FieldName, validator.KindRequired)),
		validator.MinLength(NameMinLength, "Minimum length should be 4").WithKey(key(FieldName, validator.KindMinLength)),
	}
}

func emailRules() []validator.Rule {
	return []validator.Rule{
		validator.Required("E-mail is required").WithKey(key(FieldEmail, validator.KindRequired)),
		validator.Pattern(validator.EmailPattern, "Invalid email address").WithKey(key(FieldEmail, validator.KindPattern)),
	}
}

func phoneRules(pv *phone.Validator) []validator.Rule {
	return []validator.Rule{
		validator.Required("Phone is required").WithKey(key(FieldPhone, validator.KindRequired)),
		validator.MinLength(PhoneMinLength, "Minimum length should be 10").WithKey(key(FieldPhone, validator.KindMinLength)),
		pv.Rule("Invalid phone number").WithKey(key(FieldPhone, validator.KindCustom)),
	}
}

func occupationRules() []validator.Rule {
	return []validator.Rule{
		validator.Required("Occupation is required").WithKey(key(FieldOccupation, validator.KindRequired)),
	}
}

func passwordRules() []validator.Rule {
	return []validator.Rule{
		validator.Required("Password is required").WithKey(key(FieldPassword, validator.KindRequired)),
		validator.Pattern(validator.PasswordPattern, "Invalid password").WithKey(key(FieldPassword, validator.KindPattern)),
	}
}

// LoginSchema declares the login form.
func LoginSchema() *form.Schema[Login] {
	return form.NewSchema(FormLogin,
		form.Field[Login]{Name: FieldEmail, Value: func(l Login) validator.Value { return validator.String(l.Email) }, Rules: emailRules()},
		form.Field[Login]{Name: FieldPassword, Value: func(l Login) validator.Value { return validator.String(l.Password) }, Rules: passwordRules()},
	)
}

// SignUpSchema declares the sign-up form. The switch and the terms checkbox
// carry no rules.
func SignUpSchema(pv *phone.Validator) *form.Schema[SignUp] {
	return form.NewSchema(FormSignUp,
		form.Field[SignUp]{Name: FieldName, Value: func(s SignUp) validator.Value { return validator.String(s.Name) }, Rules: nameRules()},
		form.Field[SignUp]{Name: FieldEmail, Value: func(s SignUp) validator.Value { return validator.String(s.Email) }, Rules: emailRules()},
		form.Field[SignUp]{Name: FieldPhone, Value: func(s SignUp) validator.Value { return validator.String(s.Phone) }, Rules: phoneRules(pv)},
		form.Field[SignUp]{Name: FieldOccupation, Value: func(s SignUp) validator.Value { return validator.String(s.Occupation) }, Rules: occupationRules()},
		form.Field[SignUp]{Name: FieldPassword, Value: func(s SignUp) validator.Value { return validator.String(s.Password) }, Rules: passwordRules()},
		form.Field[SignUp]{Name: FieldEmailAlerts, Value: func(s SignUp) validator.Value { return validator.Bool(s.SendEmailAlerts) }},
		form.Field[SignUp]{Name: FieldTerms, Value: func(s SignUp) validator.Value { return validator.Bool(s.IsAgreeTermsAndConditions) }},
	)
}

// HookFormSchema declares the combined demo form.
func HookFormSchema(pv *phone.Validator) *form.Schema[HookForm] {
	return form.NewSchema(FormHook,
		form.Field[HookForm]{Name: FieldName, Value: func(h HookForm) validator.Value { return validator.String(h.Name) }, Rules: nameRules()},
		form.Field[HookForm]{Name: FieldEmail, Value: func(h HookForm) validator.Value { return validator.String(h.Email) }, Rules: emailRules()},
		form.Field[HookForm]{Name: FieldPhone, Value: func(h HookForm) validator.Value { return validator.String(h.Phone) }, Rules: phoneRules(pv)},
		form.Field[HookForm]{Name: FieldOccupation, Value: func(h HookForm) validator.Value { return validator.String(h.Occupation) }, Rules: occupationRules()},
		form.Field[HookForm]{Name: FieldPassword, Value: func(h HookForm) validator.Value { return validator.String(h.Password) }, Rules: passwordRules()},
		form.Field[HookForm]{Name: FieldEmailAlerts, Value: func(h HookForm) validator.Value { return validator.Bool(h.SendEmailAlerts) }},
		form.Field[HookForm]{Name: FieldTerms, Value: func(h HookForm) validator.Value { return validator.Bool(h.IsAgreeTermsAndConditions) }},
	)
}
