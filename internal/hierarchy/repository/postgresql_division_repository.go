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

const divisionColumns = `id, ou_id, name, description, created_at`

// PostgreSQLDivisionRepository implements Division persistence for PostgreSQL.
type PostgreSQLDivisionRepository struct {
	db *sql.DB
}

// NewPostgreSQLDivisionRepository creates a new PostgreSQL Division repository.
func NewPostgreSQLDivisionRepository(db *sql.DB) *PostgreSQLDivisionRepository {
	return &PostgreSQLDivisionRepository{db: db}
}

// Create inserts a division. A duplicate (ou_id, name) pair returns
// ErrDivisionAlreadyExists and a missing OU returns ErrOUNotFound.
func (p *PostgreSQLDivisionRepository) Create(ctx context.Context, division *hierarchyDomain.Division) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO divisions (id, ou_id, name, description, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		division.ID,
		division.OUID,
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
func (p *PostgreSQLDivisionRepository) Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE id = $1`

	division, err := scanDivision(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrDivisionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get division")
	}
	return division, nil
}

// GetByName returns the division named name inside ouID.
func (p *PostgreSQLDivisionRepository) GetByName(
	ctx context.Context,
	ouID uuid.UUID,
	name string,
) (*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE ou_id = $1 AND name = $2`

	division, err := scanDivision(querier.QueryRowContext(ctx, query, ouID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, hierarchyDomain.ErrDivisionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get division by name")
	}
	return division, nil
}

// List returns every division ordered by name.
func (p *PostgreSQLDivisionRepository) List(ctx context.Context) ([]*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions ORDER BY name ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list divisions")
	}
	return collectDivisions(rows)
}

// ListByOU returns the divisions of ouID ordered by name.
func (p *PostgreSQLDivisionRepository) ListByOU(
	ctx context.Context,
	ouID uuid.UUID,
) ([]*hierarchyDomain.Division, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + divisionColumns + ` FROM divisions WHERE ou_id = $1 ORDER BY name ASC`

	rows, err := querier.QueryContext(ctx, query, ouID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list divisions by ou")
	}
	return collectDivisions(rows)
}

// CountByIDs returns how many of ids exist.
func (p *PostgreSQLDivisionRepository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM divisions WHERE id = ANY($1::uuid[])`

	var count int
	if err := querier.QueryRowContext(ctx, query, pq.Array(uuidStrings(ids))).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count divisions")
	}
	return count, nil
}

func scanDivision(row *sql.Row) (*hierarchyDomain.Division, error) {
	var d hierarchyDomain.Division
	if err := row.Scan(&d.ID, &d.OUID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDivisions(rows *sql.Rows) ([]*hierarchyDomain.Division, error) {
	defer func() {
		_ = rows.Close()
	}()

	divisions := make([]*hierarchyDomain.Division, 0)
	for rows.Next() {
		var d hierarchyDomain.Division
		if err := rows.Scan(&d.ID, &d.OUID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan division")
		}
		divisions = append(divisions, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate divisions")
	}
	return divisions, nil
}
