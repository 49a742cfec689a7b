package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two statuses the UI layer branches on. A 401 routes
// to the login page; a 404 renders as an empty-result state, not a failure.
var (
	ErrUnauthorized = errors.New("api: unauthorized")
	ErrNotFound     = errors.New("api: not found")
)

// Error is a non-2xx response that is neither a 401 nor a 404. Detail carries
// the backend's "detail" field when the body was parseable.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// IsNotFound reports whether err is the 404 sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// DecodeError is a response body that failed JSON decoding or schema
// validation. The boundary fails fast here instead of letting half-formed
// values reach the UI.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decode %s: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
