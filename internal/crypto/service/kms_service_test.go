package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"gocloud.dev/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok)
	})

	t.Run("Success_MasterKeyChainThroughKMS", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		plainKey := newKey(t)
		wrapped, err := keeper.Encrypt(ctx, plainKey)
		require.NoError(t, err)

		chain, err := cryptoDomain.ParseMasterKeyChain(
			ctx, "kms1:"+base64.StdEncoding.EncodeToString(wrapped), "kms1", keeper,
		)
		require.NoError(t, err)
		defer chain.Close()

		active, ok := chain.Active()
		require.True(t, ok)
		assert.Equal(t, plainKey, active.Key)
	})

	t.Run("Error_BlankURI", func(t *testing.T) {
		for _, uri := range []string{"", "   "} {
			keeper, err := kmsService.OpenKeeper(ctx, uri)
			assert.Nil(t, keeper)
			assert.ErrorIs(t, err, cryptoDomain.ErrKMSKeyURIRequired)
		}
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Nil(t, keeper)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}
