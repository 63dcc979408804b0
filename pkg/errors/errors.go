// Package errors defines the error taxonomy for requests against the Huggle
// backend. Mutating operations propagate these to the caller; enrichment
// fetches degrade to placeholder display data instead.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrInFlight is returned when a mutating operation is invoked while a
// previous invocation of the same operation has not resolved yet.
var ErrInFlight = stderrors.New("operation already in flight")

// NetworkError means the request never completed: connectivity failure,
// connection reset, DNS, anything below the HTTP layer.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the request exceeded its deadline. Kept distinct from
// NetworkError so callers can message the two differently.
type TimeoutError struct {
	URL string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out: %v", e.URL, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Message carries the server-supplied
// message when the body had one, and is surfaced verbatim to the user.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// NotFoundError means a referenced resource id no longer resolves.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ValidationError is locally detectable bad input; no request was issued.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsNetwork reports whether err is a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return stderrors.As(err, &ne)
}

// IsTimeout reports whether err is a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return stderrors.As(err, &te)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// IsStatus reports whether err is a ServerError with the given status code.
func IsStatus(err error, code int) bool {
	var se *ServerError
	return stderrors.As(err, &se) && se.StatusCode == code
}

// ServerMessage extracts the server-supplied message from err, if any.
func ServerMessage(err error) string {
	var se *ServerError
	if stderrors.As(err, &se) {
		return se.Message
	}
	return ""
}
