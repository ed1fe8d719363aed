package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// ErrEmptyBody is returned by ReadJSONBody when the request carries no body
var ErrEmptyBody = errors.New("empty request body")

// ReadJSONBody reads the whole request body and checks that it is a single
// JSON value. The raw bytes are returned so they can be forwarded unchanged.
func ReadJSONBody(r *http.Request) (json.RawMessage, error) {
	if r.Body == nil {
		return nil, ErrEmptyBody
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}
	if !json.Valid(body) {
		return nil, errors.New("invalid JSON")
	}
	return json.RawMessage(body), nil
}

// ParsePathString extracts a string path parameter
func ParsePathString(r *http.Request, key string) (string, error) {
	str := mux.Vars(r)[key]
	if str == "" {
		return "", fmt.Errorf("missing path parameter: %s", key)
	}
	return str, nil
}

// ParseQueryString extracts a string query parameter. defaultVal is used
// only when the parameter is absent; an explicitly empty value is returned
// as "".
func ParseQueryString(r *http.Request, key string, defaultVal string) string {
	q := r.URL.Query()
	if !q.Has(key) {
		return defaultVal
	}
	return q.Get(key)
}
