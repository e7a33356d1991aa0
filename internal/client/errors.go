package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized is returned (wrapped in *StatusError) for HTTP 401.
	// By the time a caller sees it the session has already been cleared.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMalformedEnvelope means a 2xx response did not carry {code, message, data}.
	ErrMalformedEnvelope = errors.New("malformed response envelope")
)

// BusinessError is an envelope whose code is not the success code. The
// caller decides how to surface it; the pipeline has already notified.
type BusinessError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// TransportError means no HTTP response was received at all.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsBusiness unwraps a *BusinessError from err.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsUnauthorized reports whether err came from a 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
