// Package dto holds the JSON shapes of the audit endpoints.
package dto

import (
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
)

// AuditLogResponse is one audit trail entry.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	RequestID    string         `json:"requestId,omitempty"`
	ActorID      string         `json:"actorId"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resourceType"`
	ResourceID   string         `json:"resourceId"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ListAuditLogsResponse is a page of audit entries.
type ListAuditLogsResponse struct {
	Data []AuditLogResponse `json:"data"`
}

// MapAuditLogToResponse converts a domain audit log to its response.
func MapAuditLogToResponse(auditLog *auditDomain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:           auditLog.ID.String(),
		RequestID:    auditLog.RequestID,
		ActorID:      auditLog.ActorID.String(),
		Action:       string(auditLog.Action),
		ResourceType: string(auditLog.ResourceType),
		ResourceID:   auditLog.ResourceID.String(),
		Metadata:     auditLog.Metadata,
		CreatedAt:    auditLog.CreatedAt,
	}
}

// MapAuditLogsToListResponse converts a page of audit logs. Data is never null.
func MapAuditLogsToListResponse(auditLogs []*auditDomain.AuditLog) ListAuditLogsResponse {
	data := make([]AuditLogResponse, 0, len(auditLogs))
	for _, auditLog := range auditLogs {
		data = append(data, MapAuditLogToResponse(auditLog))
	}
	return ListAuditLogsResponse{Data: data}
}
