package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/audit/usecase"
	"github.com/allisson/credvault/internal/audit/usecase/mocks"
	"github.com/allisson/credvault/internal/authz"
	apperrors "github.com/allisson/credvault/internal/errors"
)

func TestAuditLogUseCase_Record(t *testing.T) {
	t.Run("Success_FillsGeneratedFields", func(t *testing.T) {
		repo := &mocks.MockAuditLogRepository{}
		uc := usecase.NewAuditLogUseCase(repo)
		ctx := auditDomain.WithRequestID(context.Background(), "req-42")
		entry := &auditDomain.AuditLog{
			ActorID:      uuid.New(),
			Action:       auditDomain.ActionUserAssign,
			ResourceType: auditDomain.ResourceUser,
			ResourceID:   uuid.New(),
		}

		repo.On("Create", ctx, entry).Return(nil).Once()

		require.NoError(t, uc.Record(ctx, entry))
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, "req-42", entry.RequestID)
		assert.WithinDuration(t, time.Now(), entry.CreatedAt, time.Minute)
		repo.AssertExpectations(t)
	})

	t.Run("Error_Repository", func(t *testing.T) {
		repo := &mocks.MockAuditLogRepository{}
		uc := usecase.NewAuditLogUseCase(repo)
		repoErr := errors.New("insert failed")

		repo.On("Create", mock.Anything, mock.Anything).Return(repoErr).Once()

		err := uc.Record(context.Background(), &auditDomain.AuditLog{})
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestAuditLogUseCase_List(t *testing.T) {
	ctx := context.Background()
	logs := []*auditDomain.AuditLog{{ID: uuid.New()}}

	t.Run("Success_Admin", func(t *testing.T) {
		repo := &mocks.MockAuditLogRepository{}
		uc := usecase.NewAuditLogUseCase(repo)
		admin := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleAdmin}

		repo.On("List", ctx, 0, 50).Return(logs, nil).Once()

		got, err := uc.List(ctx, admin, 0, 50)
		require.NoError(t, err)
		assert.Equal(t, logs, got)
	})

	for _, role := range []authz.Role{authz.RoleNormal, authz.RoleManagement} {
		t.Run("Error_Forbidden_"+role.String(), func(t *testing.T) {
			repo := &mocks.MockAuditLogRepository{}
			uc := usecase.NewAuditLogUseCase(repo)

			_, err := uc.List(ctx, &authz.Snapshot{UserID: uuid.New(), Role: role}, 0, 50)
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
			repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("Error_NoSnapshot", func(t *testing.T) {
		uc := usecase.NewAuditLogUseCase(&mocks.MockAuditLogRepository{})

		_, err := uc.List(ctx, nil, 0, 50)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuditLogUseCase_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &mocks.MockAuditLogRepository{}
		uc := usecase.NewAuditLogUseCase(repo)

		repo.On("DeleteOlderThan", ctx, mock.MatchedBy(func(olderThan time.Time) bool {
			expected := time.Now().UTC().AddDate(0, 0, -30)
			return olderThan.Sub(expected).Abs() < time.Minute
		}), true).Return(int64(4), nil).Once()

		count, err := uc.DeleteOlderThan(ctx, 30, true)
		require.NoError(t, err)
		assert.EqualValues(t, 4, count)
		repo.AssertExpectations(t)
	})

	t.Run("Error_NegativeDays", func(t *testing.T) {
		uc := usecase.NewAuditLogUseCase(&mocks.MockAuditLogRepository{})

		_, err := uc.DeleteOlderThan(ctx, -1, false)
		assert.ErrorIs(t, err, usecase.ErrInvalidRetention)
	})
}
