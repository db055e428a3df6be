package account

import "log/slog"

const redacted = "[REDACTED]"

// Login is the record behind the login form.
type Login struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password,omitempty"`
}

func (l Login) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", l.Email),
		slog.String("password", redacted),
	)
}

func mergeLogin(dst *Login, src Login, fields []string) {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			dst.Email = src.Email
		case FieldPassword:
			dst.Password = src.Password
		}
	}
}

func redactLogin(l Login) Login {
	l.Password = ""
	return l
}

// SignUp is the record behind the sign-up form.
type SignUp struct {
	Name                      string `form:"name" json:"name"`
	Email                     string `form:"email" json:"email"`
	Phone                     string `form:"phone" json:"phone"`
	Occupation                string `form:"occupation" json:"occupation"`
	Password                  string `form:"password" json:"password,omitempty"`
	SendEmailAlerts           bool   `form:"sendEmailAlerts" json:"sendEmailAlerts"`
	IsAgreeTermsAndConditions bool   `form:"isAgreeTermsAndConditions" json:"isAgreeTermsAndConditions"`
}

func (s SignUp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.String("email", s.Email),
		slog.String("phone", s.Phone),
		slog.String("occupation", s.Occupation),
		slog.String("password", redacted),
		slog.Bool("sendEmailAlerts", s.SendEmailAlerts),
		slog.Bool("isAgreeTermsAndConditions", s.IsAgreeTermsAndConditions),
	)
}

func mergeSignUp(dst *SignUp, src SignUp, fields []string) {
	hook := HookForm(*dst)
	mergeHookForm(&hook, HookForm(src), fields)
	*dst = SignUp(hook)
}

func redactSignUp(s SignUp) SignUp {
	s.Password = ""
	return s
}

// HookForm is the record behind the combined demo form. It carries the same
// fields as SignUp.
type HookForm struct {
	Name                      string `form:"name" json:"name"`
	Email                     string `form:"email" json:"email"`
	Phone                     string `form:"phone" json:"phone"`
	Occupation                string `form:"occupation" json:"occupation"`
	Password                  string `form:"password" json:"password,omitempty"`
	SendEmailAlerts           bool   `form:"sendEmailAlerts" json:"sendEmailAlerts"`
	IsAgreeTermsAndConditions bool   `form:"isAgreeTermsAndConditions" json:"isAgreeTermsAndConditions"`
}

func (h HookForm) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", h.Name),
		slog.String("email", h.Email),
		slog.String("phone", h.Phone),
		slog.String("occupation", h.Occupation),
		slog.String("password", redacted),
		slog.Bool("sendEmailAlerts", h.SendEmailAlerts),
		slog.Bool("isAgreeTermsAndConditions", h.IsAgreeTermsAndConditions),
	)
}

func mergeHookForm(dst *HookForm, src HookForm, fields []string) {
	for _, f := range fields {
		switch f {
		case FieldName:
			dst.Name = src.Name
		case FieldEmail:
			dst.Email = src.Email
		case FieldPhone:
			dst.Phone = src.Phone
		case FieldOccupation:
			dst.Occupation = src.Occupation
		case FieldPassword:
			dst.Password = src.Password
		case FieldEmailAlerts:
			dst.SendEmailAlerts = src.SendEmailAlerts
		case FieldTerms:
			dst.IsAgreeTermsAndConditions = src.IsAgreeTermsAndConditions
		}
	}
}

func redactHookForm(h HookForm) HookForm {
	h.Password = ""
	return h
}
