// Package usecase defines the interfaces and implementations for person management use cases.
// Use cases coordinate the repository, the transaction manager and the field sealer so that
// a person's social benefits number is only ever persisted as ciphertext.
package usecase

import (
	"context"

	"github.com/google/uuid"

	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// PersonRepository defines the interface for Person persistence operations.
type PersonRepository interface {
	Create(ctx context.Context, person *personsDomain.Person) error
	Update(ctx context.Context, person *personsDomain.Person) error
	Get(ctx context.Context, personID uuid.UUID) (*personsDomain.Person, error)
	List(ctx context.Context, offset, limit int) ([]*personsDomain.Person, error)
	Delete(ctx context.Context, personID uuid.UUID) error
}

// PersonUseCase defines the interface for person management business logic.
// Every returned view carries the opened social benefits number.
type PersonUseCase interface {
	Create(ctx context.Context, input *personsDomain.PersonInput) (*personsDomain.PersonView, error)
	// Update changes names and reseals the social benefits number under the person's existing secret.
	Update(
		ctx context.Context,
		personID uuid.UUID,
		input *personsDomain.PersonInput,
	) (*personsDomain.PersonView, error)
	Get(ctx context.Context, personID uuid.UUID) (*personsDomain.PersonView, error)
	List(ctx context.Context, offset, limit int) ([]*personsDomain.PersonView, error)
	Delete(ctx context.Context, personID uuid.UUID) error
}
