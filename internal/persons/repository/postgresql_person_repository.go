// Package repository implements data persistence for person records.
// Repositories support both PostgreSQL and MySQL. The secret column is written
// only on insert.
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

// PostgreSQLPersonRepository implements Person persistence for PostgreSQL databases.
type PostgreSQLPersonRepository struct {
	db *sql.DB
}

// Create inserts a new person into the PostgreSQL database.
func (p *PostgreSQLPersonRepository) Create(ctx context.Context, person *personsDomain.Person) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO persons (id, first_name, last_name, secret, social_benefits_number, created_at, updated_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		person.ID,
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
func (p *PostgreSQLPersonRepository) Update(ctx context.Context, person *personsDomain.Person) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE persons 
			  SET first_name = $1, last_name = $2, social_benefits_number = $3, updated_at = $4
			  WHERE id = $5`

	result, err := querier.ExecContext(
		ctx,
		query,
		person.FirstName,
		person.LastName,
		person.SealedSocialBenefitsNumber,
		person.UpdatedAt,
		person.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update person")
	}

	return requireAffected(result, "failed to update person")
}

// Get retrieves a person by ID.
func (p *PostgreSQLPersonRepository) Get(ctx context.Context, personID uuid.UUID) (*personsDomain.Person, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, first_name, last_name, secret, social_benefits_number, created_at, updated_at 
			  FROM persons 
			  WHERE id = $1`

	var person personsDomain.Person
	err := querier.QueryRowContext(ctx, query, personID).Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&person.Secret,
		&person.SealedSocialBenefitsNumber,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, personsDomain.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get person")
	}

	return &person, nil
}

// List retrieves persons ordered by first name, last name and ID with pagination.
func (p *PostgreSQLPersonRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*personsDomain.Person, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, first_name, last_name, secret, social_benefits_number, created_at, updated_at 
			  FROM persons 
			  ORDER BY first_name ASC, last_name ASC, id ASC 
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list persons")
	}
	defer func() { _ = rows.Close() }()

	persons := make([]*personsDomain.Person, 0)
	for rows.Next() {
		var person personsDomain.Person
		if err := rows.Scan(
			&person.ID,
			&person.FirstName,
			&person.LastName,
			&person.Secret,
			&person.SealedSocialBenefitsNumber,
			&person.CreatedAt,
			&person.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan person")
		}
		persons = append(persons, &person)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate persons")
	}

	return persons, nil
}

// Delete removes a person by ID.
func (p *PostgreSQLPersonRepository) Delete(ctx context.Context, personID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM persons WHERE id = $1`, personID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete person")
	}

	return requireAffected(result, "failed to delete person")
}

// NewPostgreSQLPersonRepository creates a new PostgreSQL Person repository instance.
func NewPostgreSQLPersonRepository(db *sql.DB) *PostgreSQLPersonRepository {
	return &PostgreSQLPersonRepository{db: db}
}

// requireAffected maps a statement that touched no rows to ErrPersonNotFound.
func requireAffected(result sql.Result, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, message)
	}
	if affected == 0 {
		return personsDomain.ErrPersonNotFound
	}
	return nil
}
