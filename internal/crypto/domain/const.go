// Package domain defines the encryption algorithms and master key material used to
// seal credential secrets at rest.
package domain

import "strings"

// Algorithm identifies an AEAD cipher.
type Algorithm string

const (
	// AESGCM is AES-256-GCM with a 12-byte random nonce.
	AESGCM Algorithm = "aes-gcm"
	// ChaCha20 is ChaCha20-Poly1305 with a 12-byte random nonce.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the size in bytes of every master key.
const KeySize = 32

// ParseAlgorithm converts a configured algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch alg := Algorithm(strings.ToLower(strings.TrimSpace(s))); alg {
	case AESGCM, ChaCha20:
		return alg, nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}
