package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error represents an enhanced API error with HTTP status, server message,
// and field-keyed validation errors
type Error struct {
	// Status is the HTTP status code; 0 means the request never reached
	// the server (transport failure)
	Status int

	// Message is the human-readable error message, server-supplied when
	// the response body was parseable
	Message string

	// Fields maps field names to validation error messages for
	// 400-level responses that include them
	Fields map[string][]string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Status == 0 {
		b.WriteString(e.Message)
	} else {
		b.WriteString(fmt.Sprintf("[%d] %s", e.Status, e.Message))
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Fields) > 0 {
		b.WriteString(" (")
		b.WriteString(e.Flatten())
		b.WriteString(")")
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given status and message
func New(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
	}
}

// Network creates a transport-failure Error (status 0) wrapping the cause
func Network(cause error) *Error {
	return &Error{
		Status:  0,
		Message: "network error or server unavailable",
		Cause:   cause,
	}
}

// WithFields attaches a field-keyed validation map to the error
func (e *Error) WithFields(fields map[string][]string) *Error {
	e.Fields = fields
	return e
}

// WithCause attaches an underlying error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// Flatten joins all field validation messages into a single comma-separated
// string for unstructured display. Fields are sorted so output is stable.
func (e *Error) Flatten() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(e.Fields))
	for _, name := range names {
		for _, msg := range e.Fields[name] {
			parts = append(parts, fmt.Sprintf("%s: %s", name, msg))
		}
	}
	return strings.Join(parts, ", ")
}

// FromError extracts an *Error from err, or nil if err is not one
func FromError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsNetwork reports whether err is a transport failure (no response at all)
func IsNetwork(err error) bool {
	e := FromError(err)
	return e != nil && e.Status == 0
}

// IsAuth reports whether err is an authentication or authorization failure
func IsAuth(err error) bool {
	e := FromError(err)
	return e != nil && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	e := FromError(err)
	return e != nil && e.Status == http.StatusNotFound
}
