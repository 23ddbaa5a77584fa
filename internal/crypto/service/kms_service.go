package service

import (
	"context"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"

	// Register the KMS provider drivers accepted in KMS_KEY_URI
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens the keeper that unwraps MASTER_KEYS when the vault is configured
// with KMS_KEY_URI. The same keeper wraps new keys in the create-master-key command.
type KMSService interface {
	// OpenKeeper opens a keeper for the provider named by keyURI.
	// Returns ErrKMSKeyURIRequired for a blank URI, or a wrapped provider error if the
	// URI scheme is unknown or the provider cannot be reached.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper supports gcpkms://, awskms://, azurekeyvault://, hashivault:// and
// base64key://. The caller owns the returned keeper and must Close it once the
// master key chain has been unwrapped.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	if strings.TrimSpace(keyURI) == "" {
		return nil, cryptoDomain.ErrKMSKeyURIRequired
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
