// Package usecase implements the credential store operations. Every operation
// resolves the target division, evaluates the authorization policy and only then
// touches the stored secret.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// CredentialRepository persists credentials.
type CredentialRepository interface {
	Create(ctx context.Context, credential *credentialsDomain.Credential) error
	Get(ctx context.Context, id uuid.UUID) (*credentialsDomain.Credential, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*credentialsDomain.Credential, error)
	ListByDivision(ctx context.Context, divisionID uuid.UUID) ([]*credentialsDomain.Credential, error)
	Update(ctx context.Context, credential *credentialsDomain.Credential) error
}

// DivisionReader resolves the division a credential belongs to.
type DivisionReader interface {
	GetDivision(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error)
}

// CredentialUseCase reads and writes credentials on behalf of a snapshot.
type CredentialUseCase interface {
	// List returns the credentials of a division without passwords.
	List(
		ctx context.Context,
		snapshot *authz.Snapshot,
		divisionID uuid.UUID,
	) ([]*credentialsDomain.Credential, error)

	// Create stores a new credential under divisionID.
	Create(
		ctx context.Context,
		snapshot *authz.Snapshot,
		divisionID uuid.UUID,
		input *credentialsDomain.CredentialInput,
	) (*credentialsDomain.Credential, error)

	// Reveal returns one credential with its password opened.
	Reveal(ctx context.Context, snapshot *authz.Snapshot, id uuid.UUID) (*credentialsDomain.Credential, error)

	// Update replaces all four fields of a credential.
	Update(
		ctx context.Context,
		snapshot *authz.Snapshot,
		id uuid.UUID,
		input *credentialsDomain.CredentialInput,
	) (*credentialsDomain.Credential, error)
}
