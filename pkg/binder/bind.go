package binder

import (
	"net/http"
	"strings"
)

// Bind dispatches to JSON or Form based on the Content-Type header.
func Bind(r *http.Request, v any) ([]string, error) {
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		return JSON(r, v)
	}
	return Form(r, v)
}
