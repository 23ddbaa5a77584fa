package authz

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the authorization state embedded in an access token. It is copied
// from the identity store when the token is issued and is not refreshed afterwards:
// membership or role changes made later are invisible to it until a new token is
// issued.
type Snapshot struct {
	UserID    uuid.UUID
	Username  string
	Role      Role
	OUs       RefSet
	Divisions RefSet
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAdmin reports whether the snapshot carries the admin role.
func (s *Snapshot) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
