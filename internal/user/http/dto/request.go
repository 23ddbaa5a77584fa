// Package dto provides data transfer objects for the user endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/credvault/internal/authz"
	userDomain "github.com/allisson/credvault/internal/user/domain"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// AssignRequest is the body of POST /api/users/:userId/assign. DivisionID and
// OUID each add one membership; the slices remove any number.
type AssignRequest struct {
	DivisionID        string   `json:"divisionId"`
	OUID              string   `json:"ouId"`
	DivisionsToRemove []string `json:"divisionsToRemove"`
	OUsToRemove       []string `json:"ousToRemove"`
}

// Validate checks that every present identifier is well formed.
func (r *AssignRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DivisionID, customValidation.Ref),
		validation.Field(&r.OUID, customValidation.Ref),
		validation.Field(&r.DivisionsToRemove, validation.Each(validation.Required, customValidation.Ref)),
		validation.Field(&r.OUsToRemove, validation.Each(validation.Required, customValidation.Ref)),
	)
}

// ToDomain converts a validated request.
func (r *AssignRequest) ToDomain() (userDomain.MembershipChange, error) {
	var change userDomain.MembershipChange

	addDivisions, err := optionalRef(r.DivisionID)
	if err != nil {
		return change, err
	}
	addOUs, err := optionalRef(r.OUID)
	if err != nil {
		return change, err
	}
	removeDivisions, err := authz.ParseRefs(r.DivisionsToRemove)
	if err != nil {
		return change, err
	}
	removeOUs, err := authz.ParseRefs(r.OUsToRemove)
	if err != nil {
		return change, err
	}

	change.AddDivisions = addDivisions
	change.AddOUs = addOUs
	change.RemoveDivisions = removeDivisions
	change.RemoveOUs = removeOUs
	return change, nil
}

func optionalRef(value string) (authz.RefSet, error) {
	if value == "" {
		return nil, nil
	}
	id, err := authz.ParseRef(value)
	if err != nil {
		return nil, err
	}
	return authz.NewRefSet(id), nil
}

// ChangeRoleRequest is the body of PUT /api/users/:userId/role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks that the role is one of the closed set.
func (r *ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role, validation.Required, customValidation.RoleName),
	)
}
