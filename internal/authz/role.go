package authz

import (
	"fmt"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// Role is the access tier of a user. The zero value is not a valid role and is
// denied by every policy check.
type Role uint8

const (
	// RoleNormal can read and create credentials in assigned divisions.
	RoleNormal Role = iota + 1
	// RoleManagement can read and update credentials across assigned OUs.
	RoleManagement
	// RoleAdmin passes every policy check.
	RoleAdmin
)

// DefaultRole is assigned to newly registered users.
const DefaultRole = RoleNormal

// ErrInvalidRole indicates a role outside the closed set.
var ErrInvalidRole = apperrors.Wrap(
	apperrors.ErrInvalidInput,
	"Invalid role: must be one of normal, management, admin",
)

// ParseRole converts the exact textual form of a role. "Admin" and " admin" are
// rejected.
func ParseRole(s string) (Role, error) {
	switch s {
	case "normal":
		return RoleNormal, nil
	case "management":
		return RoleManagement, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, ErrInvalidRole
	}
}

// String returns the textual form used in tokens, JSON and storage.
func (r Role) String() string {
	switch r {
	case RoleNormal:
		return "normal"
	case RoleManagement:
		return "management"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= RoleNormal && r <= RoleAdmin
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrInvalidRole
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
