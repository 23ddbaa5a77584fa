package authz

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/allisson/credvault/internal/errors"
)

// ErrInvalidRef indicates an identifier that is not a valid UUID.
var ErrInvalidRef = apperrors.Wrap(apperrors.ErrInvalidInput, "Invalid identifier")

// ParseRef parses an identifier into its canonical form. Upper case, braces and the
// urn:uuid: prefix are accepted; the nil UUID is rejected.
func ParseRef(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidRef
	}
	return id, nil
}

// ParseRefs parses every identifier and returns them as a set.
func ParseRefs(values []string) (RefSet, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := ParseRef(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return NewRefSet(ids...), nil
}

// RefSet is an insertion-ordered set of entity identifiers. All membership checks
// in the policy go through Contains, which compares identifier values.
// The zero value is an empty set.
type RefSet []uuid.UUID

// NewRefSet builds a set from ids, dropping duplicates and the nil UUID.
func NewRefSet(ids ...uuid.UUID) RefSet {
	return RefSet(nil).With(ids...)
}

// Contains reports whether id is a member of the set.
func (s RefSet) Contains(id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}
	for _, member := range s {
		if member == id {
			return true
		}
	}
	return false
}

// With returns a new set holding the union of s and ids.
func (s RefSet) With(ids ...uuid.UUID) RefSet {
	out := make(RefSet, 0, len(s)+len(ids))
	out = append(out, s...)
	for _, id := range ids {
		if id == uuid.Nil || out.Contains(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// Without returns a new set holding the members of s not listed in ids.
func (s RefSet) Without(ids ...uuid.UUID) RefSet {
	remove := RefSet(ids)
	out := make(RefSet, 0, len(s))
	for _, member := range s {
		if !remove.Contains(member) {
			out = append(out, member)
		}
	}
	return out
}

// Strings returns the canonical string form of every member.
func (s RefSet) Strings() []string {
	out := make([]string, len(s))
	for i, id := range s {
		out[i] = id.String()
	}
	return out
}
