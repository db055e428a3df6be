// Package binder decodes HTTP request bodies into form records and reports
// which fields the client actually sent.
//
// Knowing the present fields lets a handler apply a partial update: only the
// inputs the user touched change, and only their error entries are cleared.
//
//	var in account.SignUp
//	fields, err := binder.Bind(r, &in)
//	if err != nil {
//		// errors.Is(err, binder.ErrUnsupportedMediaType) etc.
//	}
//	// fields == []string{"name", "email"} for a body carrying only those keys
//
// Form reads application/x-www-form-urlencoded and multipart/form-data using
// `form` struct tags. JSON reads application/json using `json` tags and
// rejects unknown keys. Bind picks one based on Content-Type. Reported names
// always come from the `form` tag when present so both encodings agree on
// field identity.
package binder
