// Package errors provides the error classes shared by every layer. Use cases
// wrap them with context and handlers map them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable indicates a required capability is missing from the environment,
	// such as an unknown algorithm name. It is a configuration fault, not a data fault.
	ErrUnavailable = errors.New("unavailable")

	// ErrInternal indicates an operation failed for reasons the caller cannot fix.
	ErrInternal = errors.New("internal error")
)

// Error codes reported to API clients and in logs.
const (
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInvalidInput = "invalid_input"
	CodeUnavailable  = "unavailable"
	CodeInternal     = "internal_error"
)

// codes is checked in order; the first class found in the error tree wins.
var codes = []struct {
	class error
	code  string
}{
	{ErrNotFound, CodeNotFound},
	{ErrConflict, CodeConflict},
	{ErrInvalidInput, CodeInvalidInput},
	{ErrUnavailable, CodeUnavailable},
	{ErrInternal, CodeInternal},
}

// Code returns the code of the standard class err belongs to.
// Errors outside every class are reported as CodeInternal.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.class) {
			return c.code
		}
	}
	return CodeInternal
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
