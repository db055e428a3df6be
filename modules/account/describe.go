package account

import "fmt"

// Input kinds rendered by presenters.
const (
	InputText     = "text"
	InputEmail    = "email"
	InputTel      = "tel"
	InputSelect   = "select"
	InputPassword = "password"
	InputSwitch   = "switch"
	InputCheckbox = "checkbox"
)

// Choice is one option of a select input.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldInfo describes how a field is presented.
type FieldInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Label       string   `json:"label" yaml:"label"`
	Input       string   `json:"input" yaml:"input"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Helper      string   `json:"helper,omitempty" yaml:"helper,omitempty"`
	Required    bool     `json:"required" yaml:"required"`
	Options     []Choice `json:"options,omitempty" yaml:"options,omitempty"`
}

// FormInfo describes a form and its fields in declaration order.
type FormInfo struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []FieldInfo `json:"fields" yaml:"fields"`
}

// Occupations are the choices offered by the occupation select.
var Occupations = []Choice{
	{Value: "option1", Label: "Front End Developer"},
	{Value: "option2", Label: "Back End Developer"},
	{Value: "option3", Label: "Full Stack Developer"},
}

var fieldInfo = map[string]FieldInfo{
	FieldName: {
		Name: FieldName, Label: "Name", Input: InputText, Required: true,
		Placeholder: "Full Name",
		Helper:      "Type your full name",
	},
	FieldEmail: {
		Name: FieldEmail, Label: "E-mail", Input: InputEmail, Required: true,
		Placeholder: "test@test.com",
		Helper:      "This e-mail will be your login username",
	},
	FieldPhone: {
		Name: FieldPhone, Label: "Phone", Input: InputTel, Required: true,
		Placeholder: "Enter phone number",
		Helper:      "Do not forget to select your country code.",
	},
	FieldOccupation: {
		Name: FieldOccupation, Label: "Occupation", Input: InputSelect, Required: true,
		Placeholder: "Select option",
		Helper:      "Do not forget to select your job occupation.",
		Options:     Occupations,
	},
	FieldPassword: {
		Name: FieldPassword, Label: "Password", Input: InputPassword, Required: true,
		Placeholder: "*******",
		Helper: "The password must be: at least one upper case letter, at least one lower case letter, " +
			"at least one digit, at least one special character and minimum eight in length.",
	},
	FieldEmailAlerts: {
		Name: FieldEmailAlerts, Label: "Enable email alerts?", Input: InputSwitch,
		Helper: "You can change that option later.",
	},
	FieldTerms: {
		Name: FieldTerms, Label: "I agree to the terms e conditions.", Input: InputCheckbox,
		Helper: "Read the terms and conditions here",
	},
}

var formFields = map[string][]string{
	FormLogin:  {FieldEmail, FieldPassword},
	FormSignUp: {FieldName, FieldEmail, FieldPhone, FieldOccupation, FieldPassword, FieldEmailAlerts, FieldTerms},
	FormHook:   {FieldName, FieldEmail, FieldPhone, FieldOccupation, FieldPassword, FieldEmailAlerts, FieldTerms},
}

// FormNames lists the forms in a stable order.
func FormNames() []string {
	return []string{FormLogin, FormSignUp, FormHook}
}

// Describe returns presentation metadata for the named form.
func Describe(name string) (FormInfo, error) {
	names, ok := formFields[name]
	if !ok {
		return FormInfo{}, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	info := FormInfo{Name: name, Fields: make([]FieldInfo, 0, len(names))}
	for _, n := range names {
		f := fieldInfo[n]
		f.Options = append([]Choice(nil), f.Options...)
		info.Fields = append(info.Fields, f)
	}
	return info, nil
}
