package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("NilError", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("PreservesChain", func(t *testing.T) {
		err := Wrap(ErrNotFound, "user not found")
		assert.True(t, Is(err, ErrNotFound))
		assert.Equal(t, "user not found: not found", err.Error())
	})
}

func TestPublicMessage(t *testing.T) {
	domainErr := Wrap(ErrForbidden, "Access denied: not assigned to this division")

	tests := []struct {
		name     string
		err      error
		sentinel error
		expected string
	}{
		{
			name:     "DomainError",
			err:      domainErr,
			sentinel: ErrForbidden,
			expected: "Access denied: not assigned to this division",
		},
		{
			name:     "OuterContextStripped",
			err:      fmt.Errorf("credential usecase: %w", domainErr),
			sentinel: ErrForbidden,
			expected: "Access denied: not assigned to this division",
		},
		{
			name:     "BareSentinel",
			err:      ErrNotFound,
			sentinel: ErrNotFound,
			expected: "not found",
		},
		{
			name:     "UnrelatedSentinel",
			err:      domainErr,
			sentinel: ErrNotFound,
			expected: "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicMessage(tt.err, tt.sentinel))
		})
	}
}
