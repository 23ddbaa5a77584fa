// Package domain defines authentication results and errors.
package domain

import (
	"time"

	"github.com/allisson/credvault/internal/authz"
)

// TokenOutput is a freshly issued access token.
type TokenOutput struct {
	Token     string
	Role      authz.Role
	ExpiresAt time.Time
}

// RegisterInput is a self-service registration request. Membership ids are
// optional unless strict registration is enabled.
type RegisterInput struct {
	Username    string
	Password    string
	OUIDs       authz.RefSet
	DivisionIDs authz.RefSet
}

// LoginInput holds login credentials.
type LoginInput struct {
	Username string
	Password string
}

// ChangePasswordInput replaces the password of the authenticated user.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}
