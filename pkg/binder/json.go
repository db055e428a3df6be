package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxJSONSize bounds JSON request bodies.
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON decodes an application/json body into v, rejecting unknown keys and
// trailing data, and returns the names of the fields whose keys were present.
func JSON(r *http.Request, v any) ([]string, error) {
	rv, err := structTarget(v)
	if err != nil {
		return nil, err
	}

	mt, _, err := mediaType(r)
	if err != nil {
		return nil, err
	}
	if mt != "application/json" {
		return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
	}
	if len(body) > DefaultMaxJSONSize {
		return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
	}
	sanitizeStrings(rv)

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
	}

	rt := rv.Type()
	var present []string
	for i := range rt.NumField() {
		sf := rt.Field(i)
		key := tagName(sf, "json")
		if key == "" {
			continue
		}
		if _, ok := keys[key]; ok {
			present = append(present, fieldName(sf))
		}
	}
	return present, nil
}
