package repository

import (
	"database/sql"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// scanFullCredential reads a row of fullColumns. uuid.UUID scans both the postgres
// text form and the mysql BINARY(16) form.
func scanFullCredential(row *sql.Row) (*credentialsDomain.Credential, error) {
	var (
		c         credentialsDomain.Credential
		sealed    cryptoDomain.SealedValue
		algorithm string
	)
	err := row.Scan(
		&c.ID,
		&c.DivisionID,
		&c.Title,
		&c.Username,
		&c.URL,
		&c.CreatedAt,
		&c.UpdatedAt,
		&sealed.Ciphertext,
		&sealed.Nonce,
		&sealed.KeyID,
		&algorithm,
	)
	if err != nil {
		return nil, err
	}
	sealed.Algorithm = cryptoDomain.Algorithm(algorithm)
	c.Sealed = &sealed
	return &c, nil
}

func collectSummaries(rows *sql.Rows) ([]*credentialsDomain.Credential, error) {
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*credentialsDomain.Credential, 0)
	for rows.Next() {
		var c credentialsDomain.Credential
		if err := rows.Scan(&c.ID, &c.DivisionID, &c.Title, &c.Username, &c.URL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}
	return credentials, nil
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return credentialsDomain.ErrCredentialNotFound
	}
	return nil
}
