// Package errors provides the structured error taxonomy used across the
// build pipeline, CLI, and cohort transport.
//
// # Error Codes
//
// spec.md §7 defines four error kinds; this package gives each a
// machine-readable [Code]:
//
//   - ErrCodeUsage: bad argc or n out of [2,10]
//   - ErrCodeInvariant: the parent oracle produced an unknown permutation
//   - ErrCodeIO: a DOT file or directory could not be created
//   - ErrCodeTransport: an inter-process send/receive failed
//
// None of these are retried; every one is fatal for the whole job and
// surfaces as a single diagnostic line plus a non-zero exit status.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUsage, "n=%d out of range [2,10]", n)
//	if errors.Is(err, errors.ErrCodeUsage) {
//	    // ...
//	}
//
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "recv from rank %d", rank)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes, one per row of spec.md §7's error taxonomy table.
const (
	// ErrCodeUsage marks a bad argc or an n outside [2,10].
	ErrCodeUsage Code = "USAGE_ERROR"

	// ErrCodeInvariant marks a parent-oracle result whose key is absent
	// from the vertex index — a fatal internal error.
	ErrCodeInvariant Code = "INVARIANT_VIOLATED"

	// ErrCodeIO marks a failure to create the output directory or a DOT file.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeTransport marks a failed inter-process send or receive.
	ErrCodeTransport Code = "TRANSPORT_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a message suitable for display to a CLI user: the
// Message field for an *Error, or err.Error() for any other error.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ExitCode returns the process exit code for err: 0 if err is nil, 1
// otherwise. spec.md §7 defines a single non-zero status for every error
// kind, so no code-specific mapping is needed.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
