package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

var (
	summaryRowColumns = []string{"id", "division_id", "title", "username", "url", "created_at", "updated_at"}
	fullRowColumns    = append(append([]string{}, summaryRowColumns...),
		"password_ciphertext", "password_nonce", "key_id", "algorithm")
)

func newTestCredential() *credentialsDomain.Credential {
	now := time.Now().UTC()
	return &credentialsDomain.Credential{
		ID:         uuid.Must(uuid.NewV7()),
		DivisionID: uuid.Must(uuid.NewV7()),
		Title:      "Production DB",
		Username:   "postgres",
		URL:        "postgres://db.internal",
		Sealed: &cryptoDomain.SealedValue{
			KeyID:      "k1",
			Algorithm:  cryptoDomain.AESGCM,
			Ciphertext: []byte("ciphertext"),
			Nonce:      []byte("nonce"),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgreSQLCredentialRepository_Create(t *testing.T) {
	ctx := context.Background()
	credential := newTestCredential()

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"Success", nil, nil},
		{"Error_MissingDivision", &pq.Error{Code: "23503"}, hierarchyDomain.ErrDivisionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			exec := mock.ExpectExec("INSERT INTO credentials").
				WithArgs(
					credential.ID, credential.DivisionID, credential.Title, credential.Username, credential.URL,
					credential.CreatedAt, credential.UpdatedAt,
					credential.Sealed.Ciphertext, credential.Sealed.Nonce, "k1", "aes-gcm",
				)
			if tt.dbErr != nil {
				exec.WillReturnError(tt.dbErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			err = NewPostgreSQLCredentialRepository(db).Create(ctx, credential)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgreSQLCredentialRepository_Get(t *testing.T) {
	ctx := context.Background()
	c := newTestCredential()

	t.Run("Success_WithSealedPassword", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("FROM credentials WHERE id = \\$1$").
			WithArgs(c.ID).
			WillReturnRows(sqlmock.NewRows(fullRowColumns).AddRow(
				c.ID.String(), c.DivisionID.String(), c.Title, c.Username, c.URL, c.CreatedAt, c.UpdatedAt,
				[]byte("ciphertext"), []byte("nonce"), "k1", "chacha20-poly1305",
			))

		got, err := NewPostgreSQLCredentialRepository(db).Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.DivisionID, got.DivisionID)
		assert.Equal(t, "k1", got.Sealed.KeyID)
		assert.Equal(t, cryptoDomain.ChaCha20, got.Sealed.Algorithm)
		assert.Equal(t, []byte("nonce"), got.Sealed.Nonce)
		assert.Empty(t, got.Password)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("FROM credentials WHERE id").WithArgs(c.ID).WillReturnError(sql.ErrNoRows)

		_, err = NewPostgreSQLCredentialRepository(db).Get(ctx, c.ID)
		assert.ErrorIs(t, err, credentialsDomain.ErrCredentialNotFound)
	})

	t.Run("Success_GetForUpdateLocksRow", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectQuery("FROM credentials WHERE id = \\$1 FOR UPDATE").
			WithArgs(c.ID).
			WillReturnRows(sqlmock.NewRows(fullRowColumns).AddRow(
				c.ID.String(), c.DivisionID.String(), c.Title, c.Username, c.URL, c.CreatedAt, c.UpdatedAt,
				[]byte("ct"), []byte("n"), "k1", "aes-gcm",
			))

		_, err = NewPostgreSQLCredentialRepository(db).GetForUpdate(ctx, c.ID)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLCredentialRepository_ListByDivision(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	divisionID := uuid.New()
	now := time.Now()
	mock.ExpectQuery("SELECT id, division_id, title, username, url, created_at, updated_at FROM credentials").
		WithArgs(divisionID).
		WillReturnRows(sqlmock.NewRows(summaryRowColumns).
			AddRow(uuid.NewString(), divisionID.String(), "A", "a", "https://a", now, now).
			AddRow(uuid.NewString(), divisionID.String(), "B", "b", "https://b", now, now))

	credentials, err := NewPostgreSQLCredentialRepository(db).ListByDivision(context.Background(), divisionID)
	require.NoError(t, err)
	require.Len(t, credentials, 2)
	assert.Equal(t, "A", credentials[0].Title)
	assert.Nil(t, credentials[0].Sealed)
}

func TestPostgreSQLCredentialRepository_Update(t *testing.T) {
	ctx := context.Background()
	c := newTestCredential()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("UPDATE credentials").
			WithArgs(c.Title, c.Username, c.URL, c.Sealed.Ciphertext, c.Sealed.Nonce, "k1", "aes-gcm",
				c.UpdatedAt, c.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewPostgreSQLCredentialRepository(db).Update(ctx, c))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec("UPDATE credentials").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, NewPostgreSQLCredentialRepository(db).Update(ctx, c), credentialsDomain.ErrCredentialNotFound)
	})
}
