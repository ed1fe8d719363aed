package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an *Error
type Kind int

const (
	// KindUpstream is a non-2xx answer other than 401
	KindUpstream Kind = iota
	// KindNetwork is a local failure: the request could not be sent or the
	// response could not be read or decoded
	KindNetwork
	// KindUnauthenticated is a 401; the session is missing or expired
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindUpstream:
		return "upstream"
	case KindNetwork:
		return "network"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NetworkFailureMessage is the message of every KindNetwork error
const NetworkFailureMessage = "Network request failed"

// Error is returned for non-2xx responses and local failures
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Details is the parsed response body, if any
	Details json.RawMessage

	cause error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func networkError(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Status:  http.StatusInternalServerError,
		Message: NetworkFailureMessage,
		cause:   cause,
	}
}

// responseError builds the error for a non-2xx status. body is the parsed
// response (see parseBody).
func responseError(status int, body json.RawMessage) *Error {
	kind := KindUpstream
	if status == http.StatusUnauthorized {
		kind = KindUnauthenticated
	}

	return &Error{
		Kind:    kind,
		Status:  status,
		Message: extractMessage(body, status),
		Details: body,
	}
}

// extractMessage picks "message", then "error", then a generic fallback.
// A message array (validation errors) is joined.
func extractMessage(body json.RawMessage, status int) string {
	var fields struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		if msg := displayString(fields.Message); msg != "" {
			return msg
		}
		if msg := displayString(fields.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("Request failed (%d)", status)
}

func displayString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}

	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return fmt.Sprint(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return string(raw)
	}
}

// IsUnauthenticated reports whether err is a KindUnauthenticated *Error
func IsUnauthenticated(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthenticated
}

// Message returns a display message for any error, or fallback when err is
// nil or has no text
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
