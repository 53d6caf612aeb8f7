// Package mocks provides mock implementations of the person use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// MockPersonUseCase is a mock implementation of PersonUseCase.
type MockPersonUseCase struct {
	mock.Mock
}

// NewMockPersonUseCase creates a MockPersonUseCase that asserts its expectations on cleanup.
func NewMockPersonUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPersonUseCase {
	m := &MockPersonUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method.
func (m *MockPersonUseCase) Create(
	ctx context.Context,
	input *personsDomain.PersonInput,
) (*personsDomain.PersonView, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personsDomain.PersonView), args.Error(1)
}

// Update mocks the Update method.
func (m *MockPersonUseCase) Update(
	ctx context.Context,
	personID uuid.UUID,
	input *personsDomain.PersonInput,
) (*personsDomain.PersonView, error) {
	args := m.Called(ctx, personID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personsDomain.PersonView), args.Error(1)
}

// Get mocks the Get method.
func (m *MockPersonUseCase) Get(ctx context.Context, personID uuid.UUID) (*personsDomain.PersonView, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*personsDomain.PersonView), args.Error(1)
}

// List mocks the List method.
func (m *MockPersonUseCase) List(ctx context.Context, offset, limit int) ([]*personsDomain.PersonView, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*personsDomain.PersonView), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockPersonUseCase) Delete(ctx context.Context, personID uuid.UUID) error {
	args := m.Called(ctx, personID)
	return args.Error(0)
}
