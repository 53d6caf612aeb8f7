package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
	"github.com/allisson/fieldvault/internal/testutil"
)

type personRepository interface {
	Create(ctx context.Context, person *personsDomain.Person) error
	Update(ctx context.Context, person *personsDomain.Person) error
	Get(ctx context.Context, personID uuid.UUID) (*personsDomain.Person, error)
	List(ctx context.Context, offset, limit int) ([]*personsDomain.Person, error)
	Delete(ctx context.Context, personID uuid.UUID) error
}

func TestPersonRepository_RealDatabase(t *testing.T) {
	tests := []struct {
		dialect testutil.Dialect
		newRepo func(db *sql.DB) personRepository
	}{
		{
			dialect: testutil.Postgres,
			newRepo: func(db *sql.DB) personRepository { return NewPostgreSQLPersonRepository(db) },
		},
		{
			dialect: testutil.MySQL,
			newRepo: func(db *sql.DB) personRepository { return NewMySQLPersonRepository(db) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.Driver, func(t *testing.T) {
			db := tt.dialect.Open(t)

			repo := tt.newRepo(db)
			ctx := context.Background()

			zed := newTestPerson("Zed", "Adams")
			ada := newTestPerson("Ada", "Lovelace")
			adaB := newTestPerson("Ada", "Byron")
			for _, p := range []*personsDomain.Person{zed, ada, adaB} {
				require.NoError(t, repo.Create(ctx, p))
			}

			persons, err := repo.List(ctx, 0, 10)
			require.NoError(t, err)
			require.Len(t, persons, 3)
			assert.Equal(t, adaB.ID, persons[0].ID)
			assert.Equal(t, ada.ID, persons[1].ID)
			assert.Equal(t, zed.ID, persons[2].ID)

			page, err := repo.List(ctx, 1, 1)
			require.NoError(t, err)
			require.Len(t, page, 1)
			assert.Equal(t, ada.ID, page[0].ID)

			sealed := "c2VhbGVkIGFnYWlu"
			ada.LastName = "King"
			ada.Secret = "must-not-be-written"
			ada.SealedSocialBenefitsNumber = &sealed
			ada.UpdatedAt = time.Now().UTC()
			require.NoError(t, repo.Update(ctx, ada))

			stored, err := repo.Get(ctx, ada.ID)
			require.NoError(t, err)
			assert.Equal(t, "King", stored.LastName)
			assert.Equal(t, "AAAAAAAAAAA=", stored.Secret)
			assert.Equal(t, sealed, *stored.SealedSocialBenefitsNumber)

			require.NoError(t, repo.Delete(ctx, ada.ID))
			_, err = repo.Get(ctx, ada.ID)
			assert.ErrorIs(t, err, personsDomain.ErrPersonNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, ada.ID), personsDomain.ErrPersonNotFound)
		})
	}
}
