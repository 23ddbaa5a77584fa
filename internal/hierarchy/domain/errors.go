package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Hierarchy errors.
var (
	// ErrOUNotFound indicates the organizational unit does not exist.
	ErrOUNotFound = errors.Wrap(errors.ErrNotFound, "Organizational unit not found")

	// ErrDivisionNotFound indicates the division does not exist.
	ErrDivisionNotFound = errors.Wrap(errors.ErrNotFound, "Division not found")

	// ErrOUAlreadyExists indicates an OU with the same name exists.
	ErrOUAlreadyExists = errors.Wrap(errors.ErrConflict, "Organizational unit already exists")

	// ErrDivisionAlreadyExists indicates a division with the same name exists in the OU.
	ErrDivisionAlreadyExists = errors.Wrap(
		errors.ErrConflict,
		"Division already exists in this organizational unit",
	)
)
