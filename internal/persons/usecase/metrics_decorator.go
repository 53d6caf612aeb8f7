package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/fieldvault/internal/metrics"
	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// personUseCaseWithMetrics decorates PersonUseCase with metrics instrumentation.
type personUseCaseWithMetrics struct {
	next    PersonUseCase
	metrics metrics.BusinessMetrics
}

// NewPersonUseCaseWithMetrics wraps a PersonUseCase with metrics recording.
func NewPersonUseCaseWithMetrics(useCase PersonUseCase, m metrics.BusinessMetrics) PersonUseCase {
	return &personUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *personUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, p.metrics, "persons", operation, start, err)
}

// Create records metrics for person creation.
func (p *personUseCaseWithMetrics) Create(
	ctx context.Context,
	input *personsDomain.PersonInput,
) (*personsDomain.PersonView, error) {
	start := time.Now()
	view, err := p.next.Create(ctx, input)
	p.record(ctx, "person_create", start, err)
	return view, err
}

// Update records metrics for person updates.
func (p *personUseCaseWithMetrics) Update(
	ctx context.Context,
	personID uuid.UUID,
	input *personsDomain.PersonInput,
) (*personsDomain.PersonView, error) {
	start := time.Now()
	view, err := p.next.Update(ctx, personID, input)
	p.record(ctx, "person_update", start, err)
	return view, err
}

// Get records metrics for person retrieval.
func (p *personUseCaseWithMetrics) Get(ctx context.Context, personID uuid.UUID) (*personsDomain.PersonView, error) {
	start := time.Now()
	view, err := p.next.Get(ctx, personID)
	p.record(ctx, "person_get", start, err)
	return view, err
}

// List records metrics for person listing.
func (p *personUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*personsDomain.PersonView, error) {
	start := time.Now()
	views, err := p.next.List(ctx, offset, limit)
	p.record(ctx, "person_list", start, err)
	return views, err
}

// Delete records metrics for person deletion.
func (p *personUseCaseWithMetrics) Delete(ctx context.Context, personID uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, personID)
	p.record(ctx, "person_delete", start, err)
	return err
}
