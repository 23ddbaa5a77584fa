package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/metrics"
)

const metricsDomain = "auth"

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{next: useCase, metrics: m}
}

func (a *authUseCaseWithMetrics) Register(
	ctx context.Context,
	input *authDomain.RegisterInput,
) (*authDomain.TokenOutput, error) {
	start := time.Now()
	output, err := a.next.Register(ctx, input)
	metrics.Observe(ctx, a.metrics, metricsDomain, "register", start, err)
	return output, err
}

func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.TokenOutput, error) {
	start := time.Now()
	output, err := a.next.Login(ctx, input)
	metrics.Observe(ctx, a.metrics, metricsDomain, "login", start, err)
	return output, err
}

func (a *authUseCaseWithMetrics) Refresh(
	ctx context.Context,
	snapshot *authz.Snapshot,
) (*authDomain.TokenOutput, error) {
	start := time.Now()
	output, err := a.next.Refresh(ctx, snapshot)
	metrics.Observe(ctx, a.metrics, metricsDomain, "refresh", start, err)
	return output, err
}

func (a *authUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	snapshot *authz.Snapshot,
	input *authDomain.ChangePasswordInput,
) error {
	start := time.Now()
	err := a.next.ChangePassword(ctx, snapshot, input)
	metrics.Observe(ctx, a.metrics, metricsDomain, "change_password", start, err)
	return err
}

// Authenticate runs on every request and is counted but not timed.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authz.Snapshot, error) {
	snapshot, err := a.next.Authenticate(ctx, token)
	a.metrics.RecordOperation(ctx, metricsDomain, "authenticate", metrics.StatusFromError(err))
	return snapshot, err
}
