package app

import (
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
)

type cryptoComponents struct {
	kmsService     cryptoService.KMSService
	masterKeyChain *cryptoDomain.MasterKeyChain
	sealer         cryptoService.Sealer

	kmsServiceInit     sync.Once
	masterKeyChainInit sync.Once
	sealerInit         sync.Once
}

// KMSService returns the gocloud.dev keeper factory.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKeyChain loads MASTER_KEYS, decrypting each entry through KMS_KEY_URI when set.
func (c *Container) MasterKeyChain() (*cryptoDomain.MasterKeyChain, error) {
	err := c.initOnce("masterKeyChain", &c.masterKeyChainInit, func() error {
		var err error
		c.masterKeyChain, err = c.initMasterKeyChain()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.masterKeyChain, nil
}

// Sealer returns the sealer protecting credential passwords at rest.
func (c *Container) Sealer() (cryptoService.Sealer, error) {
	err := c.initOnce("sealer", &c.sealerInit, func() error {
		alg, err := cryptoDomain.ParseAlgorithm(c.config.CredentialEncryptionAlgorithm)
		if err != nil {
			return fmt.Errorf("invalid CREDENTIAL_ENCRYPTION_ALGORITHM %q: %w", c.config.CredentialEncryptionAlgorithm, err)
		}
		chain, err := c.MasterKeyChain()
		if err != nil {
			return err
		}
		c.sealer = cryptoService.NewMasterKeySealer(chain, cryptoService.NewAEADManager(), alg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.sealer, nil
}

func (c *Container) initMasterKeyChain() (*cryptoDomain.MasterKeyChain, error) {
	logger := c.Logger()

	if c.config.KMSKeyURI == "" {
		chain, err := cryptoDomain.LoadMasterKeyChainFromEnv(c.ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load master key chain: %w", err)
		}
		logger.Info("master key chain loaded", slog.String("active_key_id", chain.ActiveMasterKeyID()))
		return chain, nil
	}

	keeper, err := c.KMSService().OpenKeeper(c.ctx, c.config.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close kms keeper", slog.Any("error", closeErr))
		}
	}()

	chain, err := cryptoDomain.LoadMasterKeyChainFromEnv(c.ctx, keeper)
	if err != nil {
		return nil, fmt.Errorf("failed to load master key chain: %w", err)
	}
	logger.Info("master key chain loaded through kms",
		slog.String("active_key_id", chain.ActiveMasterKeyID()))
	return chain, nil
}
