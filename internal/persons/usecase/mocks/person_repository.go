package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// MockPersonRepository is a mock implementation of PersonRepository.
type MockPersonRepository struct {
	mock.Mock
}

// NewMockPersonRepository creates a MockPersonRepository that asserts its expectations on cleanup.
func NewMockPersonRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPersonRepository {
	m := &MockPersonRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockPersonRepository) Create(ctx context.Context, person *personsDomain.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

// Update mocks the Update method.
func (m *MockPersonRepository) Update(ctx context.Context, person *personsDomain.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockPersonRepository) Get(ctx context.Context, personID uuid.UUID) (*personsDomain.Person, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personsDomain.Person), args.Error(1)
}

// List mocks the List method.
func (m *MockPersonRepository) List(ctx context.Context, offset, limit int) ([]*personsDomain.Person, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*personsDomain.Person), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockPersonRepository) Delete(ctx context.Context, personID uuid.UUID) error {
	args := m.Called(ctx, personID)
	return args.Error(0)
}
