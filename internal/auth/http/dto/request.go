// Package dto provides data transfer objects for the authentication endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/authz"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	OUIDs       []string `json:"ouIds"`
	DivisionIDs []string `json:"divisionIds"`
}

// Validate checks the membership references. Username and password rules are
// enforced by the use case.
func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OUIDs, validation.Each(validation.Required, customValidation.Ref)),
		validation.Field(&r.DivisionIDs, validation.Each(validation.Required, customValidation.Ref)),
	)
}

// ToDomain converts a validated request.
func (r *RegisterRequest) ToDomain() (*authDomain.RegisterInput, error) {
	ous, err := authz.ParseRefs(r.OUIDs)
	if err != nil {
		return nil, err
	}
	divisions, err := authz.ParseRefs(r.DivisionIDs)
	if err != nil {
		return nil, err
	}
	return &authDomain.RegisterInput{
		Username:    r.Username,
		Password:    r.Password,
		OUIDs:       ous,
		DivisionIDs: divisions,
	}, nil
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the body of PUT /api/users/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
