package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/metrics"
	userDomain "github.com/allisson/credvault/internal/user/domain"
)

const metricsDomain = "users"

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{next: useCase, metrics: m}
}

func (u *userUseCaseWithMetrics) List(ctx context.Context, snapshot *authz.Snapshot) ([]*userDomain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, snapshot)
	metrics.Observe(ctx, u.metrics, metricsDomain, "list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Assign(
	ctx context.Context,
	snapshot *authz.Snapshot,
	userID uuid.UUID,
	change userDomain.MembershipChange,
) (*userDomain.AssignmentResult, error) {
	start := time.Now()
	result, err := u.next.Assign(ctx, snapshot, userID, change)
	metrics.Observe(ctx, u.metrics, metricsDomain, "assign", start, err)
	return result, err
}

func (u *userUseCaseWithMetrics) ChangeRole(
	ctx context.Context,
	snapshot *authz.Snapshot,
	userID uuid.UUID,
	role authz.Role,
) (*userDomain.AssignmentResult, error) {
	start := time.Now()
	result, err := u.next.ChangeRole(ctx, snapshot, userID, role)
	metrics.Observe(ctx, u.metrics, metricsDomain, "change_role", start, err)
	return result, err
}
