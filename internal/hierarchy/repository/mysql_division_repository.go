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

// MySQLDivisionRepository implements Division persistence for MySQL.
type MySQLDivisionRepository struct {
	db *sql.DB
}

// NewMySQLDivisionRepository creates a new MySQL Division repository.
func NewMySQLDivisionRepository(db *sql.DB) *MySQLDivisionRepository {
	return &MySQLDivisionRepository{db: db}
}

// Create inserts a division. A duplicate (ou_id, name) pair returns
// ErrDivisionAlreadyExists and a missing OU returns ErrOUNotFound.
func (m *MySQLDivisionRepository) Create(ctx context.Context, division *hierarchyDomain.Division) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO divisions (id, ou_id, name, description, created_at) VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		division.ID[:],
		division.OUID[:],
		division.Name,
		division.Description,
		division.CreatedAt,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return hierarchyDomain.ErrDivisionAlreadyExists
		case database.IsForeignKeyViolation(err):
			return hierarchyDomain.ErrOUNotFound
		}
		return apperrors.Wrap(err, "failed to create division")
	}
	return nil
}

// Get returns the division with the given id.
func (m *MySQLDivisionRepository) Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE id = ?`

	division, err := scanDivision(querier.QueryRowContext(ctx, query, id[:]))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrDivisionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get division")
	}
	return division, nil
}

// GetByName returns the division named name inside ouID.
func (m *MySQLDivisionRepository) GetByName(
	ctx context.Context,
	ouID uuid.UUID,
	name string,
) (*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE ou_id = ? AND name = ?`

	division, err := scanDivision(querier.QueryRowContext(ctx, query, ouID[:], name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrDivisionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get division by name")
	}
	return division, nil
}

// List returns every division ordered by name.
func (m *MySQLDivisionRepository) List(ctx context.Context) ([]*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions ORDER BY name ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list divisions")
	}
	return collectDivisions(rows)
}

// ListByOU returns the divisions of ouID ordered by name.
func (m *MySQLDivisionRepository) ListByOU(
	ctx context.Context,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE ou_id = ? ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query, ouID[:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list divisions by ou")
	}
	return collectDivisions(rows)
}

// CountByIDs returns how many of ids exist.
func (m *MySQLDivisionRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM divisions WHERE id IN (` + database.Placeholders(len(ids)) + `)`

	var count int
	if err := querier.QueryRowContext(ctx, query, database.BinaryIDArgs(ids)...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count divisions")
	}
	return count, nil
}
