package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher(t *testing.T) {
	hasher, err := NewPasswordHasher()
	require.NoError(t, err)

	t.Run("Success_HashAndVerify", func(t *testing.T) {
		hash, err := hasher.Hash("correct horse")
		require.NoError(t, err)

		assert.Contains(t, hash, "$argon2id$")
		assert.NotEqual(t, "correct horse", hash)
		assert.True(t, hasher.Verify("correct horse", hash))
	})

	t.Run("Success_SaltedHashesDiffer", func(t *testing.T) {
		first, err := hasher.Hash("secret1")
		require.NoError(t, err)
		second, err := hasher.Hash("secret1")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Failure_WrongPassword", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)

		assert.False(t, hasher.Verify("secret2", hash))
	})

	t.Run("Failure_MalformedHash", func(t *testing.T) {
		assert.False(t, hasher.Verify("secret1", "not-a-hash"))
		assert.False(t, hasher.Verify("secret1", ""))
	})
}
