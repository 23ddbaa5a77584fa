package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/credvault/internal/errors"
)

type argon2PasswordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates an argon2id PasswordHasher using the interactive policy.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &argon2PasswordHasher{hasher: hasher}, nil
}

func (a *argon2PasswordHasher) Hash(password string) (string, error) {
	hash, err := a.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

func (a *argon2PasswordHasher) Verify(password, hash string) bool {
	ok, err := a.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}
