package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/fieldvault/internal/crypto/domain"
	cryptoService "github.com/allisson/fieldvault/internal/crypto/service"
	databaseMocks "github.com/allisson/fieldvault/internal/database/mocks"
	apperrors "github.com/allisson/fieldvault/internal/errors"
	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
	personsUsecaseMocks "github.com/allisson/fieldvault/internal/persons/usecase/mocks"
)

func newTestSealer(passphrase string) *cryptoService.FieldCipher {
	return cryptoService.NewFieldCipher(
		cryptoService.NewStaticPassphraseSource(passphrase),
		cryptoService.NewKeyGenerator(),
		cryptoService.NewKeyGenerator(cryptoService.WithSaltSize(cryptoDomain.SecretSaltSize)),
	)
}

func newSealedPerson(t *testing.T, sealer personsDomain.FieldSealer, first, last, sbn string) *personsDomain.Person {
	t.Helper()
	person := personsDomain.NewPerson(first, last)
	require.NoError(t, person.SetSocialBenefitsNumber(sealer, &sbn))
	return person
}

func validInput() *personsDomain.PersonInput {
	return &personsDomain.PersonInput{
		FirstName:            "Ada",
		LastName:             "Lovelace",
		SocialBenefitsNumber: "123-45-6789",
	}
}

// TestPersonUseCase_Create tests the Create method of personUseCase.
func TestPersonUseCase_Create(t *testing.T) {
	ctx := context.Background()
	sealer := newTestSealer("correct-horse-battery-staple")

	t.Run("Success_SealsBeforeStoring", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		var stored *personsDomain.Person
		mockPersonRepo.On("Create", ctx, mock.MatchedBy(func(p *personsDomain.Person) bool {
			stored = p
			return true
		})).Return(nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Create(ctx, validInput())

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored.ID, view.ID)
		assert.Equal(t, "Ada", view.FirstName)
		assert.Equal(t, "Lovelace", view.LastName)
		require.NotNil(t, view.SocialBenefitsNumber)
		assert.Equal(t, "123-45-6789", *view.SocialBenefitsNumber)

		assert.NotEmpty(t, stored.Secret)
		require.NotNil(t, stored.SealedSocialBenefitsNumber)
		assert.NotEqual(t, "123-45-6789", *stored.SealedSocialBenefitsNumber)

		opened, err := stored.SocialBenefitsNumber(sealer)
		require.NoError(t, err)
		assert.Equal(t, "123-45-6789", *opened)
	})

	t.Run("Error_InvalidInput", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		input := validInput()
		input.FirstName = ""
		view, err := useCase.Create(ctx, input)

		assert.Nil(t, view)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		mockPersonRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_RepositoryFails", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		expectedErr := errors.New("database error")

		mockPersonRepo.On("Create", ctx, mock.AnythingOfType("*domain.Person")).Return(expectedErr).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Create(ctx, validInput())

		assert.Nil(t, view)
		assert.Equal(t, expectedErr, err)
	})

	t.Run("Error_EmptyPassphrase", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, newTestSealer(""))
		view, err := useCase.Create(ctx, validInput())

		assert.Nil(t, view)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidArgument)
	})
}

// TestPersonUseCase_Update tests the Update method of personUseCase.
func TestPersonUseCase_Update(t *testing.T) {
	ctx := context.Background()
	sealer := newTestSealer("correct-horse-battery-staple")

	t.Run("Success_KeepsSecret", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		existing := newSealedPerson(t, sealer, "Ada", "Byron", "000-00-0000")
		secret := existing.Secret
		createdAt := existing.CreatedAt
		existing.UpdatedAt = createdAt.Add(-time.Hour)

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil).
			Once()
		mockPersonRepo.On("Get", ctx, existing.ID).Return(existing, nil).Once()
		mockPersonRepo.On("Update", ctx, existing).Return(nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Update(ctx, existing.ID, validInput())

		require.NoError(t, err)
		assert.Equal(t, existing.ID, view.ID)
		assert.Equal(t, "Lovelace", view.LastName)
		assert.Equal(t, "123-45-6789", *view.SocialBenefitsNumber)
		assert.Equal(t, createdAt, view.CreatedAt)
		assert.False(t, view.UpdatedAt.Before(createdAt))

		assert.Equal(t, secret, existing.Secret)
		opened, err := existing.SocialBenefitsNumber(sealer)
		require.NoError(t, err)
		assert.Equal(t, "123-45-6789", *opened)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		personID := uuid.Must(uuid.NewV7())

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(nil).
			Once()
		mockPersonRepo.On("Get", ctx, personID).Return(nil, personsDomain.ErrPersonNotFound).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Update(ctx, personID, validInput())

		assert.Nil(t, view)
		assert.ErrorIs(t, err, personsDomain.ErrPersonNotFound)
	})

	t.Run("Error_InvalidInput", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		input := validInput()
		input.SocialBenefitsNumber = "  "
		view, err := useCase.Update(ctx, uuid.Must(uuid.NewV7()), input)

		assert.Nil(t, view)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_TransactionFails", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		expectedErr := errors.New("failed to begin transaction")

		mockTxManager.On("WithTx", ctx, mock.AnythingOfType("func(context.Context) error")).
			Return(expectedErr).
			Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Update(ctx, uuid.Must(uuid.NewV7()), validInput())

		assert.Nil(t, view)
		assert.Equal(t, expectedErr, err)
	})
}

// TestPersonUseCase_Get tests the Get method of personUseCase.
func TestPersonUseCase_Get(t *testing.T) {
	ctx := context.Background()
	sealer := newTestSealer("correct-horse-battery-staple")

	t.Run("Success", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		person := newSealedPerson(t, sealer, "Ada", "Lovelace", "123-45-6789")

		mockPersonRepo.On("Get", ctx, person.ID).Return(person, nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Get(ctx, person.ID)

		require.NoError(t, err)
		assert.Equal(t, person.ID, view.ID)
		assert.Equal(t, "123-45-6789", *view.SocialBenefitsNumber)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		personID := uuid.Must(uuid.NewV7())

		mockPersonRepo.On("Get", ctx, personID).Return(nil, personsDomain.ErrPersonNotFound).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		view, err := useCase.Get(ctx, personID)

		assert.Nil(t, view)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_WrongPassphrase", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		person := newSealedPerson(t, sealer, "Ada", "Lovelace", "123-45-6789")

		mockPersonRepo.On("Get", ctx, person.ID).Return(person, nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, newTestSealer("a-different-passphrase"))
		view, err := useCase.Get(ctx, person.ID)

		assert.Nil(t, view)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoFailure)
	})
}

// TestPersonUseCase_List tests the List method of personUseCase.
func TestPersonUseCase_List(t *testing.T) {
	ctx := context.Background()
	sealer := newTestSealer("correct-horse-battery-staple")

	t.Run("Success_PreservesOrder", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		persons := []*personsDomain.Person{
			newSealedPerson(t, sealer, "Ada", "Byron", "111"),
			newSealedPerson(t, sealer, "Ada", "Lovelace", "222"),
			newSealedPerson(t, sealer, "Zed", "Adams", "333"),
		}
		persons[2].SealedSocialBenefitsNumber = nil

		mockPersonRepo.On("List", ctx, 0, 50).Return(persons, nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		views, err := useCase.List(ctx, 0, 50)

		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, persons[0].ID, views[0].ID)
		assert.Equal(t, "111", *views[0].SocialBenefitsNumber)
		assert.Equal(t, persons[1].ID, views[1].ID)
		assert.Equal(t, "222", *views[1].SocialBenefitsNumber)
		assert.Equal(t, persons[2].ID, views[2].ID)
		assert.Nil(t, views[2].SocialBenefitsNumber)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		mockPersonRepo.On("List", ctx, 10, 5).Return([]*personsDomain.Person{}, nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		views, err := useCase.List(ctx, 10, 5)

		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("Error_OneRecordFails", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)

		persons := []*personsDomain.Person{
			newSealedPerson(t, sealer, "Ada", "Byron", "111"),
			newSealedPerson(t, sealer, "Ada", "Lovelace", "222"),
		}
		persons[1].Secret = "AAAAAAAAAAA="

		mockPersonRepo.On("List", ctx, 0, 50).Return(persons, nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		views, err := useCase.List(ctx, 0, 50)

		assert.Nil(t, views)
		assert.ErrorIs(t, err, cryptoDomain.ErrCryptoFailure)
	})

	t.Run("Error_RepositoryFails", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		expectedErr := errors.New("database error")

		mockPersonRepo.On("List", ctx, 0, 50).Return(nil, expectedErr).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		views, err := useCase.List(ctx, 0, 50)

		assert.Nil(t, views)
		assert.Equal(t, expectedErr, err)
	})
}

// TestPersonUseCase_Delete tests the Delete method of personUseCase.
func TestPersonUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	sealer := newTestSealer("correct-horse-battery-staple")

	t.Run("Success", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		personID := uuid.Must(uuid.NewV7())

		mockPersonRepo.On("Delete", ctx, personID).Return(nil).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		assert.NoError(t, useCase.Delete(ctx, personID))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockTxManager := databaseMocks.NewMockTxManager(t)
		mockPersonRepo := personsUsecaseMocks.NewMockPersonRepository(t)
		personID := uuid.Must(uuid.NewV7())

		mockPersonRepo.On("Delete", ctx, personID).Return(personsDomain.ErrPersonNotFound).Once()

		useCase := NewPersonUseCase(mockTxManager, mockPersonRepo, sealer)
		assert.ErrorIs(t, useCase.Delete(ctx, personID), personsDomain.ErrPersonNotFound)
	})
}
