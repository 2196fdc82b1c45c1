package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedResponse is a 2xx answer missing the fields the call needs
var ErrUnexpectedResponse = errors.New("unexpected response from server")

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string // server-provided message or error string, may be empty
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// TransportError is a request that never produced an HTTP response:
// connection failures, timeouts and cancellations.
type TransportError struct {
	Op      string
	URL     string
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SessionError means the session store could not be read or written.
// A request whose session read fails is never sent.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// ValidationError is a form rejected locally; no request was issued
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func IsAPIError(err error) bool {
	var target *APIError
	return errors.As(err, &target)
}

func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status of an APIError, or 0
func StatusCode(err error) int {
	var target *APIError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}

const genericErrorMessage = "Server or network error"

// UserMessage turns any client error into the text shown to an operator.
// Validation and server messages are passed through verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		validation *ValidationError
		apiErr     *APIError
		session    *SessionError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.As(err, &session):
		return "Could not read the saved session"
	case errors.Is(err, ErrUnexpectedResponse):
		return "Unexpected response from server"
	default:
		return genericErrorMessage
	}
}
