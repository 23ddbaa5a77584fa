package dto

import (
	"time"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/authz"
)

// TokenResponse is returned by register, login and refresh.
type TokenResponse struct {
	Token     string     `json:"token"`
	Role      authz.Role `json:"role"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// MapTokenOutputToResponse converts a token output to its response body.
func MapTokenOutputToResponse(output *authDomain.TokenOutput) TokenResponse {
	return TokenResponse{
		Token:     output.Token,
		Role:      output.Role,
		ExpiresAt: output.ExpiresAt,
	}
}
