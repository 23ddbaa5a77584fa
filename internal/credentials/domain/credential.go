// Package domain defines credentials: login secrets owned by exactly one division.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	"github.com/allisson/credvault/internal/errors"
)

// Field length limits.
const (
	MaxTitleLength    = 255
	MaxUsernameLength = 255
	MaxPasswordLength = 4096
	MaxURLLength      = 2048
)

// Credential is a stored login. Sealed holds the encrypted password as persisted;
// Password is populated only after it has been opened for the caller.
type Credential struct {
	ID         uuid.UUID
	DivisionID uuid.UUID
	Title      string
	Username   string
	URL        string
	Sealed     *cryptoDomain.SealedValue
	Password   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CredentialInput carries the four user-supplied fields of a create or update.
// An update replaces all of them.
type CredentialInput struct {
	Title    string
	Username string
	Password string
	URL      string
}

// Credential errors.
var (
	// ErrCredentialNotFound indicates the credential does not exist.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "Credential not found")

	// ErrAllFieldsRequired indicates a blank title, username, password or url.
	ErrAllFieldsRequired = errors.Wrap(errors.ErrInvalidInput, "All fields are required")
)
