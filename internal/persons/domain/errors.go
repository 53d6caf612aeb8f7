// Package domain defines core domain models and errors for persons.
package domain

import (
	"github.com/allisson/fieldvault/internal/errors"
)

// Person-specific error definitions.
var (
	// ErrPersonNotFound indicates the person does not exist.
	ErrPersonNotFound = errors.Wrap(errors.ErrNotFound, "person not found")
)
