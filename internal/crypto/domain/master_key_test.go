package domain

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

// xorKeeper is a reversible KMSKeeper stand-in.
type xorKeeper struct {
	fail bool
}

func (k *xorKeeper) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	out := make([]byte, len(plaintext))
	for i, b := range plaintext {
		out[i] = b ^ 0x5a
	}
	return out, nil
}

func (k *xorKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	if k.fail {
		return nil, errors.New("kms unavailable")
	}
	return k.Encrypt(ctx, ciphertext)
}

func (k *xorKeeper) Close() error { return nil }

func TestParseMasterKeyChain(t *testing.T) {
	ctx := context.Background()
	key1 := randomKey(t)
	key2 := randomKey(t)
	raw := "k1:" + base64.StdEncoding.EncodeToString(key1) + ", k2:" + base64.StdEncoding.EncodeToString(key2)

	t.Run("Success_MultipleKeys", func(t *testing.T) {
		chain, err := ParseMasterKeyChain(ctx, raw, "k2", nil)
		require.NoError(t, err)
		defer chain.Close()

		assert.Equal(t, "k2", chain.ActiveMasterKeyID())
		active, ok := chain.Active()
		require.True(t, ok)
		assert.Equal(t, key2, active.Key)

		old, ok := chain.Get("k1")
		require.True(t, ok)
		assert.Equal(t, key1, old.Key)
	})

	t.Run("Success_KMSDecryptsKeys", func(t *testing.T) {
		keeper := &xorKeeper{}
		wrapped, err := keeper.Encrypt(ctx, key1)
		require.NoError(t, err)

		chain, err := ParseMasterKeyChain(ctx, "k1:"+base64.StdEncoding.EncodeToString(wrapped), "k1", keeper)
		require.NoError(t, err)

		active, ok := chain.Active()
		require.True(t, ok)
		assert.Equal(t, key1, active.Key)
	})

	t.Run("Error_KMSDecryptFails", func(t *testing.T) {
		_, err := ParseMasterKeyChain(ctx, raw, "k1", &xorKeeper{fail: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrypt master key k1")
	})

	tests := []struct {
		name     string
		raw      string
		activeID string
		wantErr  error
	}{
		{"Error_Empty", "", "k1", ErrMasterKeysNotSet},
		{"Error_NoActiveID", raw, "", ErrActiveMasterKeyIDNotSet},
		{"Error_MissingSeparator", "k1" + base64.StdEncoding.EncodeToString(key1), "k1", ErrInvalidMasterKeysFormat},
		{"Error_BadBase64", "k1:!!!", "k1", ErrInvalidMasterKeyBase64},
		{"Error_ShortKey", "k1:" + base64.StdEncoding.EncodeToString([]byte("short")), "k1", ErrInvalidKeySize},
		{"Error_ActiveNotInChain", raw, "k3", ErrActiveMasterKeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := ParseMasterKeyChain(ctx, tt.raw, tt.activeID, nil)
			assert.Nil(t, chain)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMasterKeyChain_Close(t *testing.T) {
	key := randomKey(t)
	chain, err := ParseMasterKeyChain(
		context.Background(), "k1:"+base64.StdEncoding.EncodeToString(key), "k1", nil,
	)
	require.NoError(t, err)

	mk, _ := chain.Get("k1")
	material := mk.Key
	chain.Close()

	assert.Equal(t, make([]byte, KeySize), material)
	_, ok := chain.Active()
	assert.False(t, ok)
}

func TestLoadMasterKeyChainFromEnv(t *testing.T) {
	t.Setenv("MASTER_KEYS", "default:"+base64.StdEncoding.EncodeToString(randomKey(t)))
	t.Setenv("ACTIVE_MASTER_KEY_ID", "default")

	chain, err := LoadMasterKeyChainFromEnv(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "default", chain.ActiveMasterKeyID())
}

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm(" AES-GCM ")
	require.NoError(t, err)
	assert.Equal(t, AESGCM, alg)

	alg, err = ParseAlgorithm("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, alg)

	_, err = ParseAlgorithm("des")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	Zero(nil)
}
