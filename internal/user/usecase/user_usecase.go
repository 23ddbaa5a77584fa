package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	hierarchy      HierarchyChecker
	revocationRepo RevocationRepository
	tokenIssuer    TokenIssuer
	auditRecorder  auditUseCase.Recorder
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hierarchy HierarchyChecker,
	revocationRepo RevocationRepository,
	tokenIssuer TokenIssuer,
	auditRecorder auditUseCase.Recorder,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		hierarchy:      hierarchy,
		revocationRepo: revocationRepo,
		tokenIssuer:    tokenIssuer,
		auditRecorder:  auditRecorder,
	}
}

func (u *userUseCase) List(ctx context.Context, snapshot *authz.Snapshot) ([]*userDomain.User, error) {
	if err := authz.Authorize(snapshot, authz.ActionListUsers, authz.Resource{}); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx)
}

func (u *userUseCase) Assign(
	ctx context.Context,
	snapshot *authz.Snapshot,
	userID uuid.UUID,
	change userDomain.MembershipChange,
) (*userDomain.AssignmentResult, error) {
	if err := authz.Authorize(snapshot, authz.ActionAssignMembership, authz.Resource{}); err != nil {
		return nil, err
	}

	var user *userDomain.User
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := u.userRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if change.IsEmpty() {
			user = current
			return nil
		}

		if err := u.hierarchy.EnsureOUsExist(ctx, change.AddOUs); err != nil {
			return err
		}
		if err := u.hierarchy.EnsureDivisionsExist(ctx, change.AddDivisions); err != nil {
			return err
		}
		if err := u.userRepo.AddMemberships(ctx, userID, change.AddOUs, change.AddDivisions); err != nil {
			return err
		}
		err = u.userRepo.RemoveMemberships(ctx, userID, change.RemoveOUs, change.RemoveDivisions)
		if err != nil {
			return err
		}

		if user, err = u.userRepo.Get(ctx, userID); err != nil {
			return err
		}

		return u.auditRecorder.Record(ctx, &auditDomain.AuditLog{
			ActorID:      snapshot.UserID,
			Action:       auditDomain.ActionUserAssign,
			ResourceType: auditDomain.ResourceUser,
			ResourceID:   userID,
			Metadata: map[string]any{
				"addOUs":          change.AddOUs.Strings(),
				"addDivisions":    change.AddDivisions.Strings(),
				"removeOUs":       change.RemoveOUs.Strings(),
				"removeDivisions": change.RemoveDivisions.Strings(),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	if !change.IsEmpty() {
		if err := u.revocationRepo.Revoke(ctx, userID, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	return u.result(ctx, snapshot, user)
}

func (u *userUseCase) ChangeRole(
	ctx context.Context,
	snapshot *authz.Snapshot,
	userID uuid.UUID,
	role authz.Role,
) (*userDomain.AssignmentResult, error) {
	if err := authz.Authorize(snapshot, authz.ActionChangeRole, authz.Resource{}); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, authz.ErrInvalidRole
	}

	var (
		user    *userDomain.User
		changed bool
	)
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := u.userRepo.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if current.Role == role {
			user = current
			return nil
		}

		now := time.Now().UTC()
		if err := u.userRepo.UpdateRole(ctx, userID, role, now); err != nil {
			return err
		}
		previous := current.Role
		current.Role = role
		current.UpdatedAt = now
		user = current
		changed = true

		return u.auditRecorder.Record(ctx, &auditDomain.AuditLog{
			ActorID:      snapshot.UserID,
			Action:       auditDomain.ActionUserRoleChange,
			ResourceType: auditDomain.ResourceUser,
			ResourceID:   userID,
			Metadata:     map[string]any{"from": previous.String(), "to": role.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	if changed {
		if err := u.revocationRepo.Revoke(ctx, userID, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	return u.result(ctx, snapshot, user)
}

// result pairs the updated user with a token for the acting admin, built from the
// admin's current record so a self-assignment is reflected in it.
func (u *userUseCase) result(
	ctx context.Context,
	snapshot *authz.Snapshot,
	user *userDomain.User,
) (*userDomain.AssignmentResult, error) {
	actor := user
	if snapshot.UserID != user.ID {
		var err error
		if actor, err = u.userRepo.Get(ctx, snapshot.UserID); err != nil {
			return nil, err
		}
	}

	token, expiresAt, err := u.tokenIssuer.Issue(actor.Snapshot())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue token")
	}
	return &userDomain.AssignmentResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}
