package database

import (
	"strings"

	"github.com/google/uuid"
)

// Placeholders returns n comma separated "?" markers for MySQL IN clauses.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// BinaryIDArgs converts ids to their 16-byte form for BINARY(16) columns, typed
// as []any so they can be spread into query arguments.
func BinaryIDArgs(ids []uuid.UUID) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		b := id
		args = append(args, b[:])
	}
	return args
}

// ParseBinaryID converts a BINARY(16) column value to a UUID.
func ParseBinaryID(b []byte) (uuid.UUID, error) {
	return uuid.FromBytes(b)
}
