package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	credentialsDomain "github.com/allisson/credvault/internal/credentials/domain"
	"github.com/allisson/credvault/internal/metrics"
)

const metricsDomain = "credentials"

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{next: useCase, metrics: m}
}

func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	snapshot *authz.Snapshot,
	divisionID uuid.UUID,
) ([]*credentialsDomain.Credential, error) {
	start := time.Now()
	credentials, err := c.next.List(ctx, snapshot, divisionID)
	metrics.Observe(ctx, c.metrics, metricsDomain, "list", start, err)
	return credentials, err
}

func (c *credentialUseCaseWithMetrics) Create(
	ctx context.Context,
	snapshot *authz.Snapshot,
	divisionID uuid.UUID,
	input *credentialsDomain.CredentialInput,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Create(ctx, snapshot, divisionID, input)
	metrics.Observe(ctx, c.metrics, metricsDomain, "create", start, err)
	return credential, err
}

func (c *credentialUseCaseWithMetrics) Reveal(
	ctx context.Context,
	snapshot *authz.Snapshot,
	id uuid.UUID,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Reveal(ctx, snapshot, id)
	metrics.Observe(ctx, c.metrics, metricsDomain, "reveal", start, err)
	return credential, err
}

func (c *credentialUseCaseWithMetrics) Update(
	ctx context.Context,
	snapshot *authz.Snapshot,
	id uuid.UUID,
	input *credentialsDomain.CredentialInput,
) (*credentialsDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Update(ctx, snapshot, id, input)
	metrics.Observe(ctx, c.metrics, metricsDomain, "update", start, err)
	return credential, err
}
