package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// MasterKeySealer seals values with the active key of a master key chain using the
// configured algorithm. Values store the key ID and algorithm so keys and algorithms
// can be rotated without re-encrypting existing rows.
type MasterKeySealer struct {
	chain       *cryptoDomain.MasterKeyChain
	aeadManager AEADManager
	alg         cryptoDomain.Algorithm
}

// NewMasterKeySealer creates a sealer for chain.
func NewMasterKeySealer(
	chain *cryptoDomain.MasterKeyChain,
	aeadManager AEADManager,
	alg cryptoDomain.Algorithm,
) *MasterKeySealer {
	return &MasterKeySealer{chain: chain, aeadManager: aeadManager, alg: alg}
}

// Seal encrypts plaintext with the active master key.
func (s *MasterKeySealer) Seal(plaintext, aad []byte) (*cryptoDomain.SealedValue, error) {
	key, ok := s.chain.Active()
	if !ok {
		return nil, cryptoDomain.ErrMasterKeyNotFound
	}

	cipher, err := s.aeadManager.CreateCipher(key.Key, s.alg)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := cipher.Encrypt(plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to seal value: %w", err)
	}

	return &cryptoDomain.SealedValue{
		KeyID:      key.ID,
		Algorithm:  s.alg,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}, nil
}

// Open decrypts value with the key it was sealed with.
func (s *MasterKeySealer) Open(value *cryptoDomain.SealedValue, aad []byte) ([]byte, error) {
	key, ok := s.chain.Get(value.KeyID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrMasterKeyNotFound, value.KeyID)
	}

	cipher, err := s.aeadManager.CreateCipher(key.Key, value.Algorithm)
	if err != nil {
		return nil, err
	}

	return cipher.Decrypt(value.Ciphertext, value.Nonce, aad)
}
