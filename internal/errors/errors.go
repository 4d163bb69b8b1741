// Package errors provides structured application errors with HTTP status
// mapping and an echo middleware that renders them as JSON responses.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Type categorizes an error for status mapping and metrics.
type Type string

const (
	// TypeValidation indicates invalid input (HTTP 400)
	TypeValidation Type = "validation"
	// TypeNotFound indicates a missing resource (HTTP 404)
	TypeNotFound Type = "not_found"
	// TypeConflict indicates a resource conflict (HTTP 409)
	TypeConflict Type = "conflict"
	// TypeUnavailable indicates a dependency outage (HTTP 503)
	TypeUnavailable Type = "unavailable"
	// TypeInternal indicates a server-side failure (HTTP 500)
	TypeInternal Type = "internal"
)

// Error is a structured application error carrying a type, a client-facing
// message, an optional cause, and log-only context fields.
type Error struct {
	Type    Type
	Message string
	Cause   error
	Fields  map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to an HTTP status code.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithField attaches a context field for logging (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any)
	}
	e.Fields[key] = value
	return e
}

// Validation creates a validation error (HTTP 400).
func Validation(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// NotFound creates a not-found error (HTTP 404).
func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// Conflict creates a conflict error (HTTP 409).
func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

// Unavailable creates a dependency-outage error (HTTP 503).
func Unavailable(message string, cause error) *Error {
	return &Error{Type: TypeUnavailable, Message: message, Cause: cause}
}

// Internal creates an internal error (HTTP 500).
func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// Response is the JSON body sent to clients.
type Response struct {
	Error string `json:"error"`
	Type  Type   `json:"type"`
}

// ToResponse converts the error into its client-facing JSON form. Context
// fields are deliberately excluded; they are for logs only.
func (e *Error) ToResponse() Response {
	return Response{Error: e.Message, Type: e.Type}
}

// From converts any error into a structured *Error. A nil error stays nil,
// an existing *Error passes through, anything else becomes an internal error
// with a generic client message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}
