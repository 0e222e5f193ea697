package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors covering the client-side failure taxonomy: validation
// short-circuits before the network, transport failures leave the mirror
// untouched, and remote rejections carry the server's message through.
var (
	ErrValidation       = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrTransport        = New("TRANSPORT_ERROR", http.StatusBadGateway, "request to tracker backend failed")
	ErrRemoteRejected   = New("REMOTE_REJECTED", http.StatusBadGateway, "tracker backend rejected the request")
	ErrMalformedEntity  = New("MALFORMED_ENTITY", http.StatusBadGateway, "tracker backend returned a malformed entity")
	ErrUnauthorized     = New("UNAUTHORIZED", http.StatusUnauthorized, "not signed in")
	ErrNotFound         = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrMutationInFlight = New("MUTATION_IN_FLIGHT", http.StatusConflict, "another mutation is already in flight")
	ErrInternal         = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
