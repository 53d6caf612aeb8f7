package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/fieldvault/internal/database"
	apperrors "github.com/allisson/fieldvault/internal/errors"
	personsDomain "github.com/allisson/fieldvault/internal/persons/domain"
)

// MySQLPersonRepository implements Person persistence for MySQL databases.
// IDs are stored as BINARY(16).
type MySQLPersonRepository struct {
	db *sql.DB
}

// Create inserts a new person into the MySQL database.
func (m *MySQLPersonRepository) Create(ctx context.Context, person *personsDomain.Person) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO persons (id, first_name, last_name, secret, social_benefits_number, created_at, updated_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := person.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal person id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		person.FirstName,
		person.LastName,
		person.Secret,
		person.SealedSocialBenefitsNumber,
		person.CreatedAt,
		person.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create person")
	}

	return nil
}

// Update stores the person's names and sealed fields. The secret is left untouched.
func (m *MySQLPersonRepository) Update(ctx context.Context, person *personsDomain.Person) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE persons 
			  SET first_name = ?, last_name = ?, social_benefits_number = ?, updated_at = ?
			  WHERE id = ?`

	id, err := person.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal person id")
	}

	result, err := querier.ExecContext(
		ctx,
		query,
		person.FirstName,
		person.LastName,
		person.SealedSocialBenefitsNumber,
		person.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update person")
	}

	return requireAffected(result, "failed to update person")
}

// Get retrieves a person by ID.
func (m *MySQLPersonRepository) Get(ctx context.Context, personID uuid.UUID) (*personsDomain.Person, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, first_name, last_name, secret, social_benefits_number, created_at, updated_at 
			  FROM persons 
			  WHERE id = ?`

	id, err := personID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal person id")
	}

	person, err := scanMySQLPerson(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, personsDomain.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get person")
	}

	return person, nil
}

// List retrieves persons ordered by first name, last name and ID with pagination.
func (m *MySQLPersonRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*personsDomain.Person, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, first_name, last_name, secret, social_benefits_number, created_at, updated_at 
			  FROM persons 
			  ORDER BY first_name ASC, last_name ASC, id ASC 
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list persons")
	}
	defer func() { _ = rows.Close() }()

	persons := make([]*personsDomain.Person, 0)
	for rows.Next() {
		person, err := scanMySQLPerson(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan person")
		}
		persons = append(persons, person)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate persons")
	}

	return persons, nil
}

// Delete removes a person by ID.
func (m *MySQLPersonRepository) Delete(ctx context.Context, personID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := personID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal person id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete person")
	}

	return requireAffected(result, "failed to delete person")
}

// NewMySQLPersonRepository creates a new MySQL Person repository instance.
func NewMySQLPersonRepository(db *sql.DB) *MySQLPersonRepository {
	return &MySQLPersonRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLPerson(row rowScanner) (*personsDomain.Person, error) {
	var person personsDomain.Person
	var id []byte

	if err := row.Scan(
		&id,
		&person.FirstName,
		&person.LastName,
		&person.Secret,
		&person.SealedSocialBenefitsNumber,
		&person.CreatedAt,
		&person.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := person.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal person id")
	}

	return &person, nil
}
