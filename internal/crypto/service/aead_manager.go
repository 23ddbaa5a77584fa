package service

import (
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// AEADManagerService implements AEADManager. The sealer asks it for a fresh cipher
// each time a credential password is sealed or opened, keyed by the master key
// recorded on the sealed value.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher builds the AEAD named by alg over a 32-byte master key.
// Returns ErrInvalidKeySize if key is not cryptoDomain.KeySize bytes or
// ErrUnsupportedAlgorithm if alg is neither aes-gcm nor chacha20-poly1305.
// Sealed values written under either algorithm stay readable after the active
// algorithm changes, since Open passes the algorithm stored with the value.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	// Master keys are always 256-bit
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
