// Package repository implements credential persistence for PostgreSQL and MySQL.
// Only the sealed password is stored.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

const (
	summaryColumns = `id, division_id, title, username, url, created_at, updated_at`
	fullColumns    = summaryColumns + `, password_ciphertext, password_nonce, key_id, algorithm`
)

// PostgreSQLCredentialRepository implements Credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL Credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}

// Create inserts a credential. A missing division returns ErrDivisionNotFound.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *credentialsDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (` + fullColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.DivisionID,
		credential.Title,
		credential.Username,
		credential.URL,
		credential.CreatedAt,
		credential.UpdatedAt,
		credential.Sealed.Ciphertext,
		credential.Sealed.Nonce,
		credential.Sealed.KeyID,
		string(credential.Sealed.Algorithm),
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return hierarchyDomain.ErrDivisionNotFound
		}
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// Get returns the credential including its sealed password.
func (p *PostgreSQLCredentialRepository) Get(ctx context.Context, id uuid.UUID) (*credentialsDomain.Credential, error) {
	return p.getOne(ctx, `SELECT `+fullColumns+` FROM credentials WHERE id = $1`, id)
}

// GetForUpdate is Get with a row lock. Call it inside a transaction.
func (p *PostgreSQLCredentialRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	return p.getOne(ctx, `SELECT `+fullColumns+` FROM credentials WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLCredentialRepository) getOne(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	credential, err := scanFullCredential(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialsDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}
	return credential, nil
}

// ListByDivision returns the credentials of a division ordered by title, without
// their passwords.
func (p *PostgreSQLCredentialRepository) ListByDivision(
	ctx context.Context,
	divisionID uuid.UUID,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + summaryColumns + ` FROM credentials WHERE division_id = $1 ORDER BY title ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	return collectSummaries(rows)
}

// Update replaces the title, username, url and sealed password of a credential.
func (p *PostgreSQLCredentialRepository) Update(ctx context.Context, credential *credentialsDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials
			  SET title = $1, username = $2, url = $3, password_ciphertext = $4,
			      password_nonce = $5, key_id = $6, algorithm = $7, updated_at = $8
			  WHERE id = $9`

	result, err := querier.ExecContext(
		ctx,
		query,
		credential.Title,
		credential.Username,
		credential.URL,
		credential.Sealed.Ciphertext,
		credential.Sealed.Nonce,
		credential.Sealed.KeyID,
		string(credential.Sealed.Algorithm),
		credential.UpdatedAt,
		credential.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}
	return requireAffected(result)
}
