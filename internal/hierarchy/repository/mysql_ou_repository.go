package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// MySQLOURepository implements OU persistence for MySQL. Ids are stored as BINARY(16).
type MySQLOURepository struct {
	db *sql.DB
}

// NewMySQLOURepository creates a new MySQL OU repository.
func NewMySQLOURepository(db *sql.DB) *MySQLOURepository {
	return &MySQLOURepository{db: db}
}

// Create inserts an OU. A duplicate name returns ErrOUAlreadyExists.
func (m *MySQLOURepository) Create(ctx context.Context, ou *hierarchyDomain.OU) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO ous (id, name, description, created_at) VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query, ou.ID[:], ou.Name, ou.Description, ou.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return hierarchyDomain.ErrOUAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create ou")
	}
	return nil
}

// Get returns the OU with the given id.
func (m *MySQLOURepository) Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.OU, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at FROM ous WHERE id = ?`

	var ou hierarchyDomain.OU
	err := querier.QueryRowContext(ctx, query, id[:]).Scan(&ou.ID, &ou.Name, &ou.Description, &ou.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrOUNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get ou")
	}
	return &ou, nil
}

// GetByName returns the OU with the given name.
func (m *MySQLOURepository) GetByName(ctx context.Context, name string) (*hierarchyDomain.OU, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, description, created_at FROM ous WHERE name = ?`

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
func (m *MySQLOURepository) List(ctx context.Context) ([]*hierarchyDomain.OU, error) {
	querier := database.GetTx(ctx, m.db)

	rows, err := querier.QueryContext(ctx, `SELECT id, name, description, created_at FROM ous ORDER BY name ASC`)
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
func (m *MySQLOURepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM ous WHERE id IN (` + database.Placeholders(len(ids)) + `)`

	var count int
	if err := querier.QueryRowContext(ctx, query, database.BinaryIDArgs(ids)...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count ous")
	}
	return count, nil
}
