package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/credentials/usecase"
	"github.com/allisson/credvault/internal/credentials/usecase/mocks"
	metricsMocks "github.com/allisson/credvault/internal/metrics/mocks"
)

func TestCredentialUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	snapshot := &authz.Snapshot{UserID: uuid.New(), Role: authz.RoleNormal}
	id := uuid.New()
	input := &credentialsDomain.CredentialInput{Title: "t"}

	t.Run("List denied", func(t *testing.T) {
		next := &mocks.MockCredentialUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		uc := usecase.NewCredentialUseCaseWithMetrics(next, m)

		next.On("List", ctx, snapshot, id).Return(nil, authz.ErrNotAssignedToDivision).Once()
		m.ExpectOperation("credentials", "list", "denied")

		_, err := uc.List(ctx, snapshot, id)
		assert.ErrorIs(t, err, authz.ErrNotAssignedToDivision)
		m.AssertExpectations(t)
	})

	t.Run("Create success", func(t *testing.T) {
		next := &mocks.MockCredentialUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		uc := usecase.NewCredentialUseCaseWithMetrics(next, m)
		credential := &credentialsDomain.Credential{ID: uuid.New()}

		next.On("Create", ctx, snapshot, id, input).Return(credential, nil).Once()
		m.ExpectOperation("credentials", "create", "success")

		got, err := uc.Create(ctx, snapshot, id, input)
		assert.NoError(t, err)
		assert.Equal(t, credential, got)
		m.AssertExpectations(t)
	})

	t.Run("Reveal not found", func(t *testing.T) {
		next := &mocks.MockCredentialUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		uc := usecase.NewCredentialUseCaseWithMetrics(next, m)

		next.On("Reveal", ctx, snapshot, id).Return(nil, credentialsDomain.ErrCredentialNotFound).Once()
		m.ExpectOperation("credentials", "reveal", "not_found")

		_, err := uc.Reveal(ctx, snapshot, id)
		assert.Error(t, err)
		m.AssertExpectations(t)
	})

	t.Run("Update invalid", func(t *testing.T) {
		next := &mocks.MockCredentialUseCase{}
		m := &metricsMocks.MockBusinessMetrics{}
		uc := usecase.NewCredentialUseCaseWithMetrics(next, m)

		next.On("Update", ctx, snapshot, id, input).Return(nil, credentialsDomain.ErrAllFieldsRequired).Once()
		m.ExpectOperation("credentials", "update", "invalid")

		_, err := uc.Update(ctx, snapshot, id, input)
		assert.Error(t, err)
		m.AssertExpectations(t)
	})
}
