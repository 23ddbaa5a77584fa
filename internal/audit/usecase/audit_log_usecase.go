package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/authz"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// ErrInvalidRetention is returned for a negative retention period.
var ErrInvalidRetention = apperrors.Wrap(apperrors.ErrInvalidInput, "days must be zero or a positive number")

type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
}

// NewAuditLogUseCase creates an AuditLogUseCase.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository) AuditLogUseCase {
	return &auditLogUseCase{auditLogRepo: auditLogRepo}
}

func (a *auditLogUseCase) Record(ctx context.Context, auditLog *auditDomain.AuditLog) error {
	auditLog.ID = uuid.Must(uuid.NewV7())
	auditLog.RequestID = auditDomain.RequestIDFromContext(ctx)
	auditLog.CreatedAt = time.Now().UTC()

	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to record audit log")
	}
	return nil
}

func (a *auditLogUseCase) List(
	ctx context.Context,
	snapshot *authz.Snapshot,
	offset, limit int,
) ([]*auditDomain.AuditLog, error) {
	if err := authz.Authorize(snapshot, authz.ActionViewAuditLog, authz.Resource{}); err != nil {
		return nil, err
	}

	auditLogs, err := a.auditLogRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	return auditLogs, nil
}

func (a *auditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, ErrInvalidRetention
	}

	olderThan := time.Now().UTC().AddDate(0, 0, -days)
	count, err := a.auditLogRepo.DeleteOlderThan(ctx, olderThan, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}
	return count, nil
}
