// Package usecase records and queries the audit trail.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/authz"
)

// AuditLogRepository persists audit logs.
type AuditLogRepository interface {
	Create(ctx context.Context, auditLog *auditDomain.AuditLog) error
	List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditLog, error)
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// Recorder appends entries to the audit trail. Other use cases depend on this
// interface only.
type Recorder interface {
	// Record fills ID, RequestID and CreatedAt and stores the entry. Called inside a
	// transaction, the entry commits or rolls back with it.
	Record(ctx context.Context, auditLog *auditDomain.AuditLog) error
}

// AuditLogUseCase manages the audit trail.
type AuditLogUseCase interface {
	Recorder

	// List returns entries newest first. Only admins may read the trail.
	List(ctx context.Context, snapshot *authz.Snapshot, offset, limit int) ([]*auditDomain.AuditLog, error)

	// DeleteOlderThan removes entries older than days. With dryRun it only counts them.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
