// Package domain defines the audit trail of privileged operations.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action names a recorded operation.
type Action string

// Recorded actions.
const (
	ActionCredentialCreate Action = "credential.create"
	ActionCredentialUpdate Action = "credential.update"
	ActionCredentialReveal Action = "credential.reveal"
	ActionUserAssign       Action = "user.assign"
	ActionUserRoleChange   Action = "user.role_change"
)

// ResourceType is the kind of entity an action targets.
type ResourceType string

// Resource types.
const (
	ResourceCredential ResourceType = "credential"
	ResourceUser       ResourceType = "user"
)

// AuditLog records who did what to which resource. Metadata never holds secret values.
type AuditLog struct {
	ID           uuid.UUID
	RequestID    string
	ActorID      uuid.UUID
	Action       Action
	ResourceType ResourceType
	ResourceID   uuid.UUID
	Metadata     map[string]any
	CreatedAt    time.Time
}

type requestIDKey struct{}

// WithRequestID stores the request id that audit entries created under ctx carry.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}
