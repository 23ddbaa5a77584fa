// Package repository implements OU and division persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// PostgreSQLOURepository implements OU persistence for PostgreSQL.
type PostgreSQLOURepository struct {
	db *sql.DB
}

// NewPostgreSQLOURepository creates a new PostgreSQL OU repository.
func NewPostgreSQLOURepository(db *sql.DB) *PostgreSQLOURepository {
	return &PostgreSQLOURepository{db: db}
}

// Create inserts an OU. A duplicate name returns ErrOUAlreadyExists.
func (p *PostgreSQLOURepository) Create(ctx context.Context, ou *hierarchyDomain.OU) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO ous (id, name, description, created_at) VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, ou.ID, ou.Name, ou.Description, ou.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return hierarchyDomain.ErrOUAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create ou")
	}
	return nil
}

// Get returns the OU with the given id.
func (p *PostgreSQLOURepository) Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.OU, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at FROM ous WHERE id = $1`

	var ou hierarchyDomain.OU
	err := querier.QueryRowContext(ctx, query, id).Scan(&ou.ID, &ou.Name, &ou.Description, &ou.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrOUNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get ou")
	}
	return &ou, nil
}

// GetByName returns the OU with the given name.
func (p *PostgreSQLOURepository) GetByName(ctx context.Context, name string) (*hierarchyDomain.OU, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at FROM ous WHERE name = $1`

	var ou hierarchyDomain.OU
	err := querier.QueryRowContext(ctx, query, name).Scan(&ou.ID, &ou.Name, &ou.Description, &ou.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrOUNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get ou by name")
	}
	return &ou, nil
}

// List returns every OU ordered by name.
func (p *PostgreSQLOURepository) List(ctx context.Context) ([]*hierarchyDomain.OU, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, description, created_at FROM ous ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list ous")
	}
	defer func() {
		_ = rows.Close()
	}()

	ous := make([]*hierarchyDomain.OU, 0)
	for rows.Next() {
		var ou hierarchyDomain.OU
		if err := rows.Scan(&ou.ID, &ou.Name, &ou.Description, &ou.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan ou")
		}
		ous = append(ous, &ou)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate ous")
	}
	return ous, nil
}

// CountByIDs returns how many of ids exist.
func (p *PostgreSQLOURepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM ous WHERE id = ANY($1::uuid[])`

	var count int
	if err := querier.QueryRowContext(ctx, query, pq.Array(uuidStrings(ids))).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count ous")
	}
	return count, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
