// Package domain defines the organizational hierarchy: OUs at the top and the
// divisions they contain. Credentials are bound to a division.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// OU is an organizational unit.
type OU struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}

// Division belongs to exactly one OU for its whole lifetime. Its name is unique
// within the OU.
type Division struct {
	ID          uuid.UUID
	OUID        uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
}
