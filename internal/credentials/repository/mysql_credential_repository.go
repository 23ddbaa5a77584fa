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

// MySQLCredentialRepository implements Credential persistence for MySQL.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// NewMySQLCredentialRepository creates a new MySQL Credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}

// Create inserts a credential. A missing division returns ErrDivisionNotFound.
func (m *MySQLCredentialRepository) Create(ctx context.Context, credential *credentialsDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO credentials (` + fullColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID[:],
		credential.DivisionID[:],
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
func (m *MySQLCredentialRepository) Get(ctx context.Context, id uuid.UUID) (*credentialsDomain.Credential, error) {
	return m.getOne(ctx, `SELECT `+fullColumns+` FROM credentials WHERE id = ?`, id)
}

// GetForUpdate is Get with a row lock. Call it inside a transaction.
func (m *MySQLCredentialRepository) GetForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	return m.getOne(ctx, `SELECT `+fullColumns+` FROM credentials WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLCredentialRepository) getOne(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	credential, err := scanFullCredential(querier.QueryRowContext(ctx, query, id[:]))
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
func (m *MySQLCredentialRepository) ListByDivision(
	ctx context.Context,
	divisionID uuid.UUID,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + summaryColumns + ` FROM credentials WHERE division_id = ? ORDER BY title ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, divisionID[:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	return collectSummaries(rows)
}

// Update replaces the title, username, url and sealed password of a credential.
func (m *MySQLCredentialRepository) Update(ctx context.Context, credential *credentialsDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE credentials
			  SET title = ?, username = ?, url = ?, password_ciphertext = ?,
			      password_nonce = ?, key_id = ?, algorithm = ?, updated_at = ?
			  WHERE id = ?`

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
		credential.ID[:],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}
	return requireAffected(result)
}
