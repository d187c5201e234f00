// Package scherr defines the error taxonomy shared by all scheduling
// operations. Every failure that reaches the CLI boundary carries one of
// these codes so the exit path can report a stable, user-readable reason.
package scherr

import (
	"errors"
	"fmt"
)

// Code identifies a class of scheduling failure.
type Code string

const (
	// CodeInvalidTimeInput indicates bad or contradictory date/time flags.
	CodeInvalidTimeInput Code = "INVALID_TIME_INPUT"
	// CodeInvalidTimezone indicates an unresolvable IANA zone name.
	CodeInvalidTimezone Code = "INVALID_TIMEZONE"
	// CodeStorage indicates an I/O or transaction failure in the event store.
	CodeStorage Code = "STORAGE_ERROR"
	// CodeParse indicates malformed iCalendar input.
	CodeParse Code = "PARSE_ERROR"
	// CodeNotFound indicates a delete or move target that does not exist.
	CodeNotFound Code = "NOT_FOUND"
	// CodeAmbiguousTarget indicates a title that matches more than one event.
	CodeAmbiguousTarget Code = "AMBIGUOUS_TARGET"
)

// Error is a structured scheduling error.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf extracts the Code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// Convenience constructors for the common error classes.

// InvalidTimeInput creates an invalid time input error.
func InvalidTimeInput(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidTimeInput, Message: fmt.Sprintf(format, args...)}
}

// InvalidTimezone creates an invalid timezone error.
func InvalidTimezone(name string, cause error) *Error {
	return &Error{Code: CodeInvalidTimezone, Message: fmt.Sprintf("unknown timezone %q", name), Cause: cause}
}

// Storage creates a storage error.
func Storage(msg string, cause error) *Error {
	return &Error{Code: CodeStorage, Message: msg, Cause: cause}
}

// Parse creates a parse error for malformed iCalendar input.
func Parse(msg string, cause error) *Error {
	return &Error{Code: CodeParse, Message: msg, Cause: cause}
}

// NotFound creates a not found error.
func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AmbiguousTarget creates an ambiguous target error.
func AmbiguousTarget(format string, args ...any) *Error {
	return &Error{Code: CodeAmbiguousTarget, Message: fmt.Sprintf(format, args...)}
}
