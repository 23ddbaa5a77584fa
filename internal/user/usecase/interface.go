// Package usecase implements the identity store queries and the admin-only
// assignment service.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// UserRepository persists users and their memberships.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	List(ctx context.Context) ([]*userDomain.User, error)
	AddMemberships(ctx context.Context, userID uuid.UUID, ous, divisions authz.RefSet) error
	RemoveMemberships(ctx context.Context, userID uuid.UUID, ous, divisions authz.RefSet) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role authz.Role, updatedAt time.Time) error
}

// HierarchyChecker verifies that referenced OUs and divisions exist.
type HierarchyChecker interface {
	EnsureOUsExist(ctx context.Context, ids authz.RefSet) error
	EnsureDivisionsExist(ctx context.Context, ids authz.RefSet) error
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(snapshot *authz.Snapshot) (string, time.Time, error)
}

// RevocationRepository voids the tokens a user holds.
type RevocationRepository interface {
	Revoke(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// UserUseCase lists users and mutates their role and memberships.
type UserUseCase interface {
	// List returns every user ordered by username. Admin only.
	List(ctx context.Context, snapshot *authz.Snapshot) ([]*userDomain.User, error)

	// Assign applies change to the user's memberships. Adds must reference existing
	// OUs and divisions; removing an absent id is a no-op. Admin only.
	Assign(
		ctx context.Context,
		snapshot *authz.Snapshot,
		userID uuid.UUID,
		change userDomain.MembershipChange,
	) (*userDomain.AssignmentResult, error)

	// ChangeRole sets the user's role. Admin only.
	ChangeRole(
		ctx context.Context,
		snapshot *authz.Snapshot,
		userID uuid.UUID,
		role authz.Role,
	) (*userDomain.AssignmentResult, error)
}
