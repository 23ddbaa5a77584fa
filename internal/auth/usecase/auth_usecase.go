package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	authService "github.com/allisson/credvault/internal/auth/service"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	userDomain "github.com/allisson/credvault/internal/user/domain"
	appValidation "github.com/allisson/credvault/internal/validation"
)

// Username and password bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

// Options tune registration behavior.
type Options struct {
	// RequireMembership rejects registrations without at least one OU and one division.
	RequireMembership bool
}

type authUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	hierarchy      HierarchyChecker
	revocationRepo RevocationRepository
	passwordHasher authService.PasswordHasher
	tokenService   authService.TokenService
	options        Options

	// dummyHash is verified when a login names an unknown user.
	dummyHash string
}

// NewAuthUseCase creates an AuthUseCase.
func NewAuthUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hierarchy HierarchyChecker,
	revocationRepo RevocationRepository,
	passwordHasher authService.PasswordHasher,
	tokenService authService.TokenService,
	options Options,
) (AuthUseCase, error) {
	dummyHash, err := passwordHasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &authUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		hierarchy:      hierarchy,
		revocationRepo: revocationRepo,
		passwordHasher: passwordHasher,
		tokenService:   tokenService,
		options:        options,
		dummyHash:      dummyHash,
	}, nil
}

func passwordRules(field string) []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(field + " is required"),
		validation.RuneLength(MinPasswordLength, MaxPasswordLength).
			Error(field + " must be between 6 and 128 characters"),
	}
}

func (a *authUseCase) validateRegisterInput(input *authDomain.RegisterInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(MinUsernameLength, MaxUsernameLength).
				Error("username must be between 3 and 30 characters"),
			appValidation.NoSpaces,
			appValidation.NoControlChars,
		),
		validation.Field(&input.Password, passwordRules("password")...),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if a.options.RequireMembership && (len(input.OUIDs) == 0 || len(input.DivisionIDs) == 0) {
		return authDomain.ErrMembershipRequired
	}
	return nil
}

func (a *authUseCase) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*authDomain.TokenOutput, error) {
	normalized := *input
	normalized.Username = strings.TrimSpace(input.Username)
	if err := a.validateRegisterInput(&normalized); err != nil {
		return nil, err
	}

	passwordHash, err := a.passwordHasher.Hash(normalized.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     normalized.Username,
		PasswordHash: passwordHash,
		Role:         authz.DefaultRole,
		OUs:          authz.NewRefSet(normalized.OUIDs...),
		Divisions:    authz.NewRefSet(normalized.DivisionIDs...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.hierarchy.EnsureOUsExist(ctx, user.OUs); err != nil {
			return err
		}
		if err := a.hierarchy.EnsureDivisionsExist(ctx, user.Divisions); err != nil {
			return err
		}
		return a.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return a.issue(user)
}

func (a *authUseCase) Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.TokenOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, authDomain.ErrInvalidCredentials
	}

	user, err := a.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			a.passwordHasher.Verify(input.Password, a.dummyHash)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.passwordHasher.Verify(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.issue(user)
}

func (a *authUseCase) Refresh(ctx context.Context, snapshot *authz.Snapshot) (*authDomain.TokenOutput, error) {
	user, err := a.currentUser(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	return a.issue(user)
}

func (a *authUseCase) ChangePassword(
	ctx context.Context,
	snapshot *authz.Snapshot,
	input *authDomain.ChangePasswordInput,
) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.CurrentPassword, validation.Required.Error("currentPassword is required")),
		validation.Field(&input.NewPassword, passwordRules("newPassword")...),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	user, err := a.currentUser(ctx, snapshot)
	if err != nil {
		return err
	}
	if !a.passwordHasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return authDomain.ErrInvalidCredentials
	}

	passwordHash, err := a.passwordHasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := a.userRepo.UpdatePassword(ctx, user.ID, passwordHash, now); err != nil {
		return err
	}
	return a.revocationRepo.Revoke(ctx, user.ID, now)
}

func (a *authUseCase) Authenticate(ctx context.Context, token string) (*authz.Snapshot, error) {
	snapshot, err := a.tokenService.Parse(token)
	if err != nil {
		return nil, err
	}

	revokedAt, found, err := a.revocationRepo.RevokedSince(ctx, snapshot.UserID)
	if err != nil {
		return nil, err
	}
	if found && snapshot.IssuedAt.Before(revokedAt) {
		return nil, authDomain.ErrTokenRevoked
	}
	return snapshot, nil
}

// currentUser loads the live record behind snapshot. A user deleted since issuance
// invalidates the token.
func (a *authUseCase) currentUser(ctx context.Context, snapshot *authz.Snapshot) (*userDomain.User, error) {
	if snapshot == nil {
		return nil, authz.ErrMissingSnapshot
	}
	user, err := a.userRepo.Get(ctx, snapshot.UserID)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (a *authUseCase) issue(user *userDomain.User) (*authDomain.TokenOutput, error) {
	token, expiresAt, err := a.tokenService.Issue(user.Snapshot())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}
	return &authDomain.TokenOutput{Token: token, Role: user.Role, ExpiresAt: expiresAt}, nil
}
