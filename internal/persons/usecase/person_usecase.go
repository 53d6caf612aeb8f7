package usecase

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/fieldvault/internal/database"
	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// personUseCase implements the PersonUseCase interface.
type personUseCase struct {
	txManager  database.TxManager
	personRepo PersonRepository
	sealer     personsDomain.FieldSealer
}

// Create validates input, seals the social benefits number under a new secret and stores the person.
func (p *personUseCase) Create(
	ctx context.Context,
	input *personsDomain.PersonInput,
) (*personsDomain.PersonView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	person := personsDomain.NewPerson(input.FirstName, input.LastName)
	sbn := input.SocialBenefitsNumber
	if err := person.SetSocialBenefitsNumber(p.sealer, &sbn); err != nil {
		return nil, err
	}

	if err := p.personRepo.Create(ctx, person); err != nil {
		return nil, err
	}

	return &personsDomain.PersonView{
		ID:                   person.ID,
		FirstName:            person.FirstName,
		LastName:             person.LastName,
		SocialBenefitsNumber: &sbn,
		CreatedAt:            person.CreatedAt,
		UpdatedAt:            person.UpdatedAt,
	}, nil
}

// Update rewrites a person inside a transaction. The stored secret is reused.
func (p *personUseCase) Update(
	ctx context.Context,
	personID uuid.UUID,
	input *personsDomain.PersonInput,
) (*personsDomain.PersonView, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sbn := input.SocialBenefitsNumber
	var person *personsDomain.Person
	err := p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		person, err = p.personRepo.Get(txCtx, personID)
		if err != nil {
			return err
		}

		person.FirstName = input.FirstName
		person.LastName = input.LastName
		if err := person.SetSocialBenefitsNumber(p.sealer, &sbn); err != nil {
			return err
		}
		person.UpdatedAt = time.Now().UTC()

		return p.personRepo.Update(txCtx, person)
	})
	if err != nil {
		return nil, err
	}

	return &personsDomain.PersonView{
		ID:                   person.ID,
		FirstName:            person.FirstName,
		LastName:             person.LastName,
		SocialBenefitsNumber: &sbn,
		CreatedAt:            person.CreatedAt,
		UpdatedAt:            person.UpdatedAt,
	}, nil
}

// Get retrieves a person and opens the social benefits number.
func (p *personUseCase) Get(ctx context.Context, personID uuid.UUID) (*personsDomain.PersonView, error) {
	person, err := p.personRepo.Get(ctx, personID)
	if err != nil {
		return nil, err
	}
	return person.View(p.sealer)
}

// List retrieves a page of persons. Fields are opened in parallel since every
// record needs its own key derivation.
func (p *personUseCase) List(ctx context.Context, offset, limit int) ([]*personsDomain.PersonView, error) {
	persons, err := p.personRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	views := make([]*personsDomain.PersonView, len(persons))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, person := range persons {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			view, err := person.View(p.sealer)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// Delete removes a person.
func (p *personUseCase) Delete(ctx context.Context, personID uuid.UUID) error {
	return p.personRepo.Delete(ctx, personID)
}

// NewPersonUseCase creates a new PersonUseCase.
func NewPersonUseCase(
	txManager database.TxManager,
	personRepo PersonRepository,
	sealer personsDomain.FieldSealer,
) PersonUseCase {
	return &personUseCase{
		txManager:  txManager,
		personRepo: personRepo,
		sealer:     sealer,
	}
}
