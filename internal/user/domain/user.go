// Package domain defines the user identity: login credentials, role and
// OU/division memberships.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/authz"
	"github.com/allisson/credvault/internal/errors"
)

// User is a vault account. PasswordHash holds an argon2id PHC string.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         authz.Role
	OUs          authz.RefSet
	Divisions    authz.RefSet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot copies the authorization-relevant fields of u.
func (u *User) Snapshot() *authz.Snapshot {
	return &authz.Snapshot{
		UserID:    u.ID,
		Username:  u.Username,
		Role:      u.Role,
		OUs:       authz.NewRefSet(u.OUs...),
		Divisions: authz.NewRefSet(u.Divisions...),
	}
}

// AssignmentResult is the outcome of an assign or role change: the updated user and
// a freshly issued token for the acting admin.
type AssignmentResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// MembershipChange describes an assign request. Adds and removals are applied as
// set operations, so repeating a change has no further effect.
type MembershipChange struct {
	AddOUs          authz.RefSet
	AddDivisions    authz.RefSet
	RemoveOUs       authz.RefSet
	RemoveDivisions authz.RefSet
}

// IsEmpty reports whether the change touches nothing.
func (c MembershipChange) IsEmpty() bool {
	return len(c.AddOUs) == 0 && len(c.AddDivisions) == 0 &&
		len(c.RemoveOUs) == 0 && len(c.RemoveDivisions) == 0
}

// Apply returns the OU and division sets of u after the change.
func (c MembershipChange) Apply(u *User) (ous, divisions authz.RefSet) {
	ous = u.OUs.With(c.AddOUs...).Without(c.RemoveOUs...)
	divisions = u.Divisions.With(c.AddDivisions...).Without(c.RemoveDivisions...)
	return ous, divisions
}

// User errors.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "User not found")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "Username already exists")
)
