package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials is returned for both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrInvalidInput, "Invalid credentials")

	// ErrMissingToken indicates the request carried no bearer token.
	ErrMissingToken = errors.Wrap(errors.ErrUnauthorized, "Authentication required")

	// ErrInvalidToken indicates a malformed, tampered or expired token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "Invalid or expired token")

	// ErrTokenRevoked indicates the token was issued before a privilege change of its user.
	ErrTokenRevoked = errors.Wrap(errors.ErrUnauthorized, "Token has been revoked")

	// ErrMembershipRequired is returned by strict registration when no OU or no
	// division is supplied.
	ErrMembershipRequired = errors.Wrap(
		errors.ErrInvalidInput,
		"At least one organizational unit and one division are required",
	)
)
