package domain

import (
	"github.com/allisson/fieldvault/internal/errors"
)

// Error kinds raised by key derivation and encryption.
//
// Each kind wraps a standard error from internal/errors so the HTTP layer can
// map it without knowing about cryptography.
var (
	// ErrInvalidArgument indicates an absent passphrase or salt, or a salt that
	// is not valid base64. It is caused by caller input.
	ErrInvalidArgument = errors.Wrap(errors.ErrInvalidInput, "invalid argument")

	// ErrAlgorithmUnavailable indicates a derivation or cipher algorithm cannot be
	// found by name. It is an environment or configuration fault.
	ErrAlgorithmUnavailable = errors.Wrap(errors.ErrUnavailable, "algorithm unavailable")

	// ErrCryptoFailure indicates key derivation or cipher execution failed, for
	// example bad key material, padding mismatch or corrupt ciphertext.
	ErrCryptoFailure = errors.Wrap(errors.ErrInternal, "crypto failure")

	// ErrPassphraseMismatch indicates the configured passphrase does not match
	// the configured verifier hash.
	ErrPassphraseMismatch = errors.Wrap(errors.ErrInvalidInput, "passphrase does not match verifier")
)

// CryptoError carries the kind of a failure together with its underlying cause.
type CryptoError struct {
	// Op is the operation that failed (e.g., "generate key", "decrypt").
	Op string
	// Kind is one of ErrInvalidArgument, ErrAlgorithmUnavailable or ErrCryptoFailure.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

// NewCryptoError builds a CryptoError.
func NewCryptoError(op string, kind, cause error) *CryptoError {
	return &CryptoError{Op: op, Kind: kind, Err: cause}
}

// Error implements the error interface.
func (e *CryptoError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.Error()
	}
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CryptoError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
