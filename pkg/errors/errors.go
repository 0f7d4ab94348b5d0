// Package errors provides structured error types for offsetcurve.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures, detected before any search runs
//   - COORDINATE_NOT_FOUND: A search endpoint is not a vertex of the graph
//   - UNREACHABLE_TARGET / DISCONNECTED_GRAPH: No path exists between the endpoints
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidOffsetInput, "distance must be nonzero")
//	if errors.Is(err, errors.ErrCodeInvalidOffsetInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDisconnectedGraph, resolveErr, "resolve offset curve")
//
// [Is] inspects every *Error in the chain, so in the example above both
// DISCONNECTED_GRAPH and the code of resolveErr match.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidOffsetInput Code = "INVALID_OFFSET_INPUT"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"
	ErrCodeInvalidGeometry    Code = "INVALID_GEOMETRY"

	// Search errors
	ErrCodeCoordinateNotFound Code = "COORDINATE_NOT_FOUND"
	ErrCodeUnreachableTarget  Code = "UNREACHABLE_TARGET"
	ErrCodeDisconnectedGraph  Code = "DISCONNECTED_GRAPH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Class groups codes by what the caller can do about a failure.
type Class int

const (
	// ClassInternal marks bugs and unavailable dependencies.
	ClassInternal Class = iota
	// ClassInput marks a rejected line, distance, option or format.
	ClassInput
	// ClassSearch marks an arrangement without a usable path. The input was
	// well formed.
	ClassSearch
)

// Class returns the class of c. Unknown codes are internal.
func (c Code) Class() Class {
	switch {
	case c == ErrCodeUnsupported || strings.HasPrefix(string(c), "INVALID_"):
		return ClassInput
	case c == ErrCodeCoordinateNotFound, c == ErrCodeUnreachableTarget, c == ErrCodeDisconnectedGraph:
		return ClassSearch
	default:
		return ClassInternal
	}
}

// ClassOf returns the class of err's outermost code. Errors without a code
// are internal.
func ClassOf(err error) Class {
	return GetCode(err).Class()
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" followed by ": cause" when wrapped.
func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether any *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
