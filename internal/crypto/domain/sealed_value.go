package domain

// SealedValue is a secret encrypted with one master key.
type SealedValue struct {
	KeyID      string
	Algorithm  Algorithm
	Ciphertext []byte
	Nonce      []byte
}
