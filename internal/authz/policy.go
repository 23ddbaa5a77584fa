// Package authz implements the role-tiered access policy for credentials, the
// OU/Division hierarchy and user administration.
//
// Every decision is computed from a token Snapshot and the facts of the target
// resource. The caller is responsible for the resolution order: authenticate
// first, then load the resource (not found), then call Authorize (forbidden).
package authz

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// Action is an operation subject to the policy.
type Action uint8

const (
	// ActionReadCredentials lists or reveals credentials of a division.
	ActionReadCredentials Action = iota + 1
	// ActionCreateCredential creates a credential under a division.
	ActionCreateCredential
	// ActionUpdateCredential replaces the fields of an existing credential.
	ActionUpdateCredential
	// ActionListUsers lists every user record.
	ActionListUsers
	// ActionListOUs lists organizational units.
	ActionListOUs
	// ActionListDivisions lists divisions, optionally scoped to one OU.
	ActionListDivisions
	// ActionAssignMembership adds or removes OU/Division membership of a user.
	ActionAssignMembership
	// ActionChangeRole changes the role of a user.
	ActionChangeRole
	// ActionViewAuditLog lists audit log entries.
	ActionViewAuditLog
)

// String returns the metric and log label of the action.
func (a Action) String() string {
	switch a {
	case ActionReadCredentials:
		return "read_credentials"
	case ActionCreateCredential:
		return "create_credential"
	case ActionUpdateCredential:
		return "update_credential"
	case ActionListUsers:
		return "list_users"
	case ActionListOUs:
		return "list_ous"
	case ActionListDivisions:
		return "list_divisions"
	case ActionAssignMembership:
		return "assign_membership"
	case ActionChangeRole:
		return "change_role"
	case ActionViewAuditLog:
		return "view_audit_log"
	default:
		return "unknown"
	}
}

// Resource carries the hierarchy facts of the target. DivisionID is the division
// a credential belongs to (or will be created under); OUID is the OU owning that
// division, or the OU being listed for ActionListDivisions.
type Resource struct {
	DivisionID uuid.UUID
	OUID       uuid.UUID
}

// Policy denials. Messages are returned to clients as is.
var (
	ErrMissingSnapshot = apperrors.Wrap(apperrors.ErrUnauthorized, "Authentication required")

	ErrNotAssignedToDivision = apperrors.Wrap(
		apperrors.ErrForbidden,
		"Access denied: not assigned to this division",
	)
	ErrOutsideOrganizationalUnits = apperrors.Wrap(
		apperrors.ErrForbidden,
		"Access denied: division is outside your organizational units",
	)
	ErrUpdateNotPermitted = apperrors.Wrap(
		apperrors.ErrForbidden,
		"Access denied: your role cannot update credentials",
	)
	ErrOUNotAssigned = apperrors.Wrap(
		apperrors.ErrForbidden,
		"Access denied: not assigned to this organizational unit",
	)
	ErrAdminRequired = apperrors.Wrap(apperrors.ErrForbidden, "Access denied: admin role required")
	ErrUnknownRole   = apperrors.Wrap(apperrors.ErrForbidden, "Access denied: unknown role")
	ErrUnknownAction = apperrors.Wrap(apperrors.ErrForbidden, "Access denied: unknown action")
)

// Authorize decides whether the snapshot may perform action on res. It returns nil
// when allowed. Anything not explicitly granted is denied.
func Authorize(s *Snapshot, action Action, res Resource) error {
	if s == nil {
		return ErrMissingSnapshot
	}

	switch s.Role {
	case RoleAdmin:
		return authorizeAdmin(action)
	case RoleManagement:
		return authorizeManagement(s, action, res)
	case RoleNormal:
		return authorizeNormal(s, action, res)
	default:
		return ErrUnknownRole
	}
}

func authorizeAdmin(action Action) error {
	switch action {
	case ActionReadCredentials, ActionCreateCredential, ActionUpdateCredential,
		ActionListUsers, ActionListOUs, ActionListDivisions,
		ActionAssignMembership, ActionChangeRole, ActionViewAuditLog:
		return nil
	default:
		return ErrUnknownAction
	}
}

func authorizeManagement(s *Snapshot, action Action, res Resource) error {
	switch action {
	case ActionReadCredentials, ActionUpdateCredential:
		if s.OUs.Contains(res.OUID) {
			return nil
		}
		return ErrOutsideOrganizationalUnits
	case ActionCreateCredential:
		if s.Divisions.Contains(res.DivisionID) {
			return nil
		}
		return ErrNotAssignedToDivision
	case ActionListOUs:
		return nil
	case ActionListDivisions:
		// Unscoped listings are filtered per item with CanSeeDivision.
		if res.OUID == uuid.Nil || s.OUs.Contains(res.OUID) {
			return nil
		}
		return ErrOUNotAssigned
	case ActionListUsers, ActionAssignMembership, ActionChangeRole, ActionViewAuditLog:
		return ErrAdminRequired
	default:
		return ErrUnknownAction
	}
}

func authorizeNormal(s *Snapshot, action Action, res Resource) error {
	switch action {
	case ActionReadCredentials, ActionCreateCredential:
		if s.Divisions.Contains(res.DivisionID) {
			return nil
		}
		return ErrNotAssignedToDivision
	case ActionUpdateCredential:
		return ErrUpdateNotPermitted
	case ActionListOUs:
		return nil
	case ActionListDivisions:
		// Any OU may be listed; the result is narrowed to own divisions by CanSeeDivision.
		return nil
	case ActionListUsers, ActionAssignMembership, ActionChangeRole, ActionViewAuditLog:
		return ErrAdminRequired
	default:
		return ErrUnknownAction
	}
}

// CanSeeDivision reports whether a division appears in the snapshot's division
// listings. Management sees every division of its OUs. Normal users see only the
// divisions they are assigned to: listing any OU succeeds for them, but divisions
// outside their assignments are left out. The public registration listing does
// not go through this filter.
func CanSeeDivision(s *Snapshot, divisionID, ouID uuid.UUID) bool {
	if s == nil {
		return false
	}

	switch s.Role {
	case RoleAdmin:
		return true
	case RoleManagement:
		return s.OUs.Contains(ouID)
	case RoleNormal:
		return s.Divisions.Contains(divisionID)
	default:
		return false
	}
}
