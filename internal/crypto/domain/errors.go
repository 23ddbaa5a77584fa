package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Cryptographic errors.
var (
	// ErrUnsupportedAlgorithm indicates an algorithm other than aes-gcm or chacha20-poly1305.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed hides the cause of a failed Open: wrong key, wrong AAD or
	// tampered ciphertext all look the same.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMasterKeyNotFound indicates a sealed value referencing a key no longer in the chain.
	ErrMasterKeyNotFound = errors.New("master key not found")
)

// Master key configuration errors.
var (
	ErrMasterKeysNotSet        = errors.New("MASTER_KEYS is not set")
	ErrActiveMasterKeyIDNotSet = errors.New("ACTIVE_MASTER_KEY_ID is not set")
	ErrInvalidMasterKeysFormat = errors.New("invalid MASTER_KEYS format, expected id:base64")
	ErrInvalidMasterKeyBase64  = errors.New("invalid master key base64")
	ErrActiveMasterKeyNotFound = errors.New("active master key not found in MASTER_KEYS")
	ErrKMSKeyURIRequired       = errors.Wrap(errors.ErrInvalidInput, "KMS key URI is required")
)
