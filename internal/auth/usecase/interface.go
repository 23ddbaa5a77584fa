// Package usecase implements registration, login and token verification.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

// UserRepository is the part of the identity store authentication needs.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string, updatedAt time.Time) error
}

// HierarchyChecker verifies that referenced OUs and divisions exist.
type HierarchyChecker interface {
	EnsureOUsExist(ctx context.Context, ids authz.RefSet) error
	EnsureDivisionsExist(ctx context.Context, ids authz.RefSet) error
}

// RevocationRepository stores, per user, the instant before which tokens are void.
type RevocationRepository interface {
	Revoke(ctx context.Context, userID uuid.UUID, at time.Time) error
	RevokedSince(ctx context.Context, userID uuid.UUID) (time.Time, bool, error)
}

// AuthUseCase authenticates users and issues access tokens.
type AuthUseCase interface {
	// Register creates a normal user and returns a token for it.
	Register(ctx context.Context, input *authDomain.RegisterInput) (*authDomain.TokenOutput, error)

	// Login verifies credentials. Unknown usernames and wrong passwords both fail
	// with ErrInvalidCredentials.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.TokenOutput, error)

	// Refresh issues a token from the current identity store record of the snapshot's user.
	Refresh(ctx context.Context, snapshot *authz.Snapshot) (*authDomain.TokenOutput, error)

	ChangePassword(ctx context.Context, snapshot *authz.Snapshot, input *authDomain.ChangePasswordInput) error

	// Authenticate verifies a bearer token and returns its snapshot.
	Authenticate(ctx context.Context, token string) (*authz.Snapshot, error)
}
