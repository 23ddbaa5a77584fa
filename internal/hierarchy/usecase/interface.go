// Package usecase implements the read model of the organizational hierarchy and the
// administrative operations that create it.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
)

// OURepository persists organizational units.
type OURepository interface {
	Create(ctx context.Context, ou *hierarchyDomain.OU) error
	Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.OU, error)
	GetByName(ctx context.Context, name string) (*hierarchyDomain.OU, error)
	List(ctx context.Context) ([]*hierarchyDomain.OU, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error)
}

// DivisionRepository persists divisions.
type DivisionRepository interface {
	Create(ctx context.Context, division *hierarchyDomain.Division) error
	Get(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error)
	GetByName(ctx context.Context, ouID uuid.UUID, name string) (*hierarchyDomain.Division, error)
	List(ctx context.Context) ([]*hierarchyDomain.Division, error)
	ListByOU(ctx context.Context, ouID uuid.UUID) ([]*hierarchyDomain.Division, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int, error)
}

// HierarchyUseCase exposes the OU/Division hierarchy.
type HierarchyUseCase interface {
	// ListOUs returns every OU. Every role, and the public registration form, may list them.
	ListOUs(ctx context.Context) ([]*hierarchyDomain.OU, error)

	// ListPublicDivisionsByOU returns every division of ouID without authorization.
	ListPublicDivisionsByOU(ctx context.Context, ouID uuid.UUID) ([]*hierarchyDomain.Division, error)

	// ListDivisionsByOU returns the divisions of ouID visible to the snapshot.
	ListDivisionsByOU(
		ctx context.Context,
		snapshot *authz.Snapshot,
		ouID uuid.UUID,
	) ([]*hierarchyDomain.Division, error)

	// ListDivisions returns every division visible to the snapshot.
	ListDivisions(ctx context.Context, snapshot *authz.Snapshot) ([]*hierarchyDomain.Division, error)

	GetDivision(ctx context.Context, id uuid.UUID) (*hierarchyDomain.Division, error)

	// EnsureOUsExist returns ErrOUNotFound unless every id exists.
	EnsureOUsExist(ctx context.Context, ids authz.RefSet) error

	// EnsureDivisionsExist returns ErrDivisionNotFound unless every id exists.
	EnsureDivisionsExist(ctx context.Context, ids authz.RefSet) error

	CreateOU(ctx context.Context, name, description string) (*hierarchyDomain.OU, error)
	CreateDivision(ctx context.Context, ouID uuid.UUID, name, description string) (*hierarchyDomain.Division, error)

	// GetOrCreateOU and GetOrCreateDivision are used by seeding so repeated runs are no-ops.
	GetOrCreateOU(ctx context.Context, name, description string) (*hierarchyDomain.OU, error)
	GetOrCreateDivision(
		ctx context.Context,
		ouID uuid.UUID,
		name, description string,
	) (*hierarchyDomain.Division, error)
}
