// Package http provides the authentication endpoints and the middleware that
// attaches the caller's authorization snapshot to each request.
package http

import (
	"context"

	"github.com/allisson/credvault/internal/authz"
)

// snapshotKey is a context key type for storing the caller's snapshot.
type snapshotKey struct{}

// WithSnapshot stores a verified authorization snapshot in the context.
func WithSnapshot(ctx context.Context, snapshot *authz.Snapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snapshot)
}

// GetSnapshot retrieves the snapshot stored by AuthenticationMiddleware.
func GetSnapshot(ctx context.Context) (*authz.Snapshot, bool) {
	snapshot, ok := ctx.Value(snapshotKey{}).(*authz.Snapshot)
	return snapshot, ok && snapshot != nil
}
