package binder

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"
)

// DefaultMaxMemory bounds the in-memory part of multipart parsing.
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form binds urlencoded or multipart form values into v using `form` tags and
// returns the names of the fields present in the request, in struct order.
//
//	type Login struct {
//		Email    string `form:"email"`
//		Password string `form:"password"`
//	}
func Form(r *http.Request, v any) ([]string, error) {
	rv, err := structTarget(v)
	if err != nil {
		return nil, err
	}

	mt, params, err := mediaType(r)
	if err != nil {
		return nil, err
	}

	var values map[string][]string
	switch mt {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		values = r.PostForm

	case "multipart/form-data":
		if params["boundary"] == "" {
			return nil, fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
		}
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		values = r.MultipartForm.Value

	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mt)
	}

	return bindValues(rv, values)
}

// Values binds already parsed values into v the same way Form does. It is
// handy outside HTTP, e.g. for key=value flags.
func Values(values url.Values, v any) ([]string, error) {
	rv, err := structTarget(v)
	if err != nil {
		return nil, err
	}
	return bindValues(rv, values)
}

func bindValues(rv reflect.Value, values map[string][]string) ([]string, error) {
	rt := rv.Type()
	var present []string
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name := tagName(sf, "form")
		if name == "" {
			continue
		}
		fieldValues, ok := values[name]
		if !ok {
			continue
		}
		if err := setFieldValue(field, fieldValues); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidForm, name, err)
		}
		present = append(present, name)
	}
	return present, nil
}

func mediaType(r *http.Request) (string, map[string]string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", nil, ErrMissingContentType
	}
	mt, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	return strings.ToLower(mt), params, nil
}
