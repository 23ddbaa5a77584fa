package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"
)

// MasterKey is a 32-byte key sealing credential secrets.
type MasterKey struct {
	ID  string
	Key []byte
}

// KMSKeeper decrypts master keys stored as KMS ciphertext. *secrets.Keeper from
// gocloud.dev implements it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// MasterKeyChain holds every configured master key. New values are sealed with
// the active key; older keys stay available to open existing values.
type MasterKeyChain struct {
	mu       sync.RWMutex
	activeID string
	keys     map[string]*MasterKey
}

// ActiveMasterKeyID returns the ID of the key used for new values.
func (m *MasterKeyChain) ActiveMasterKeyID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeID
}

// Active returns the active master key.
func (m *MasterKeyChain) Active() (*MasterKey, bool) {
	return m.Get(m.ActiveMasterKeyID())
}

// Get returns the master key with the given ID.
func (m *MasterKeyChain) Get(id string) (*MasterKey, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	key, ok := m.keys[id]
	return key, ok
}

// Close zeroes every key and empties the chain.
func (m *MasterKeyChain) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.keys {
		Zero(key.Key)
	}
	m.keys = nil
	m.activeID = ""
}

// ParseMasterKeyChain parses a MASTER_KEYS value ("id:base64,id:base64") and selects
// activeID. When keeper is non-nil each decoded value is KMS ciphertext and is
// decrypted with it before use.
func ParseMasterKeyChain(
	ctx context.Context,
	raw, activeID string,
	keeper KMSKeeper,
) (*MasterKeyChain, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMasterKeysNotSet
	}
	if activeID == "" {
		return nil, ErrActiveMasterKeyIDNotSet
	}

	chain := &MasterKeyChain{activeID: activeID, keys: make(map[string]*MasterKey)}

	for _, entry := range strings.Split(raw, ",") {
		id, encoded, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || id == "" || encoded == "" {
			chain.Close()
			return nil, fmt.Errorf("%w: %q", ErrInvalidMasterKeysFormat, entry)
		}

		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			chain.Close()
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidMasterKeyBase64, id, err)
		}

		if keeper != nil {
			plaintext, err := keeper.Decrypt(ctx, key)
			Zero(key)
			if err != nil {
				chain.Close()
				return nil, fmt.Errorf("failed to decrypt master key %s with KMS: %w", id, err)
			}
			key = plaintext
		}

		if len(key) != KeySize {
			Zero(key)
			chain.Close()
			return nil, fmt.Errorf("%w: master key %s must be %d bytes, got %d",
				ErrInvalidKeySize, id, KeySize, len(key))
		}

		chain.keys[id] = &MasterKey{ID: id, Key: key}
	}

	if _, ok := chain.Get(activeID); !ok {
		chain.Close()
		return nil, fmt.Errorf("%w: ACTIVE_MASTER_KEY_ID=%s", ErrActiveMasterKeyNotFound, activeID)
	}

	return chain, nil
}

// LoadMasterKeyChainFromEnv reads MASTER_KEYS and ACTIVE_MASTER_KEY_ID.
func LoadMasterKeyChainFromEnv(ctx context.Context, keeper KMSKeeper) (*MasterKeyChain, error) {
	return ParseMasterKeyChain(ctx, os.Getenv("MASTER_KEYS"), os.Getenv("ACTIVE_MASTER_KEY_ID"), keeper)
}
