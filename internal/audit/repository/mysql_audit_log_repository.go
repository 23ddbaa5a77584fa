package repository

import (
	"context"
	"database/sql"
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MySQLAuditLogRepository implements AuditLog persistence for MySQL. Identifiers are
// stored as BINARY(16).
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}

func (m *MySQLAuditLogRepository) Create(ctx context.Context, auditLog *auditDomain.AuditLog) error {
	querier := database.GetTx(ctx, m.db)

	metadataJSON, err := marshalMetadata(auditLog.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_logs
			  (id, request_id, actor_id, action, resource_type, resource_id, metadata, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		auditLog.ID[:],
		auditLog.RequestID,
		auditLog.ActorID[:],
		string(auditLog.Action),
		string(auditLog.ResourceType),
		auditLog.ResourceID[:],
		metadataJSON,
		auditLog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}
	return nil
}

func (m *MySQLAuditLogRepository) List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditLog, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, request_id, actor_id, action, resource_type, resource_id, metadata, created_at
			  FROM audit_logs
			  ORDER BY created_at DESC, id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	auditLogs := make([]*auditDomain.AuditLog, 0)
	for rows.Next() {
		var auditLog auditDomain.AuditLog
		var id, actorID, resourceID []byte
		var action, resourceType string
		var metadataJSON []byte

		if err := rows.Scan(
			&id,
			&auditLog.RequestID,
			&actorID,
			&action,
			&resourceType,
			&resourceID,
			&metadataJSON,
			&auditLog.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		if auditLog.ID, err = database.ParseBinaryID(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit log id")
		}
		if auditLog.ActorID, err = database.ParseBinaryID(actorID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit log actor_id")
		}
		if auditLog.ResourceID, err = database.ParseBinaryID(resourceID); err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit log resource_id")
		}
		auditLog.Action = auditDomain.Action(action)
		auditLog.ResourceType = auditDomain.ResourceType(resourceType)
		if auditLog.Metadata, err = unmarshalMetadata(metadataJSON); err != nil {
			return nil, err
		}
		auditLogs = append(auditLogs, &auditLog)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}
	return auditLogs, nil
}

func (m *MySQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs WHERE created_at < ?`, olderThan).
			Scan(&count)
		if err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit logs")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < ?`, olderThan)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows count")
	}
	return count, nil
}
