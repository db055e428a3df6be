// Package phone checks phone numbers for the phone field of account forms.
//
// Validation is delegated to github.com/nyaruka/phonenumbers, a port of
// libphonenumber. Numbers without a leading "+" are parsed in the
// validator's default region.
//
//	v := phone.New(phone.WithDefaultRegion("BR"))
//	ok := v.Valid("+55 11 98765-4321")
package phone
