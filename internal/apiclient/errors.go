package apiclient

import (
	"fmt"

	dserrors "github.com/systmms/devkit/internal/errors"
)

// TransportError means the request could not be sent or no complete
// response was received (DNS, TLS, connection refused, timeout).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Path, e.Err)
	if suggestion := dserrors.NetworkSuggestion(e.Err); suggestion != "" {
		msg += "\n  💡 " + suggestion
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError is a response with a non-2xx status. Body holds the raw
// response text, or "" when it could not be read.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	RequestID  string
}

func (e *RequestError) Error() string {
	body := e.Body
	if body == "" {
		body = "(empty body)"
	}
	msg := fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, body)
	if e.RequestID != "" {
		msg += fmt.Sprintf(" (request id %s)", e.RequestID)
	}
	return msg
}

// DecodeError is a 2xx response whose body did not match the expected
// shape: malformed JSON, wrong types, or a missing required field.
type DecodeError struct {
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: unexpected response (status %d): %v", e.Method, e.Path, e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a required response field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
