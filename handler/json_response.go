package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/dmitrymomot/formflow/pkg/validator"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) {
		r.body.Meta = meta
	}
}

// JSON wraps v in the data field. Errors are rendered like JSONError.
func JSON(v any, opts ...JSONOption) Response {
	if err, ok := v.(error); ok {
		return JSONError(err, opts...)
	}
	r := &jsonResponse{status: http.StatusOK, body: Envelope{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error field with a status derived from it:
// ValidationError is 422, HTTPError uses its own code, anything else is 500.
func JSONError(err error, opts ...JSONOption) Response {
	r := &jsonResponse{}
	r.body.Error, r.status = errorToDetail(err)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorToDetail(err error) (*ErrorDetail, int) {
	var valErr ValidationError
	if errors.As(err, &valErr) {
		return &ErrorDetail{
			Code:    "validation_error",
			Message: "validation failed",
			Details: maps.Clone(map[string]string(valErr)),
		}, http.StatusUnprocessableEntity
	}

	// Unlocalized rule failures keep their default messages.
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		return &ErrorDetail{
			Code:    "validation_error",
			Message: "validation failed",
			Details: verrs.Map(),
		}, http.StatusUnprocessableEntity
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return &ErrorDetail{
			Code:    httpErr.Key,
			Message: http.StatusText(httpErr.Code),
		}, httpErr.Code
	}

	return &ErrorDetail{
		Code:    "internal_error",
		Message: http.StatusText(http.StatusInternalServerError),
	}, http.StatusInternalServerError
}
