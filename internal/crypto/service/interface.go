// Package service implements the AEAD ciphers and the master key sealer protecting
// credential passwords at rest.
package service

import (
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// AEAD is an authenticated cipher with associated data.
type AEAD interface {
	// Encrypt returns the ciphertext (tag appended) and the random nonce used.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt verifies and decrypts ciphertext. aad must match the value used to encrypt.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD ciphers.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Sealer encrypts and decrypts small secrets with the master key chain.
type Sealer interface {
	// Seal encrypts plaintext with the active master key, binding it to aad.
	Seal(plaintext, aad []byte) (*cryptoDomain.SealedValue, error)

	// Open decrypts a value sealed by any key still present in the chain.
	Open(value *cryptoDomain.SealedValue, aad []byte) ([]byte, error)
}
