// Package service provides password hashing and access token signing.
package service

import (
	"time"

	"github.com/allisson/credvault/internal/authz"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. Malformed hashes never match.
	Verify(password, hash string) bool
}

// TokenService signs and verifies access tokens embedding an authorization snapshot.
type TokenService interface {
	// Issue signs a token for snapshot. IssuedAt and ExpiresAt of the snapshot are ignored.
	Issue(snapshot *authz.Snapshot) (token string, expiresAt time.Time, err error)

	// Parse verifies signature, issuer and expiry and returns the embedded snapshot.
	Parse(token string) (*authz.Snapshot, error)
}
