package app

import (
	"database/sql"
	"fmt"
	"sync"

	credentialsHTTP "github.com/allisson/credvault/internal/credentials/http"
	credentialsRepository "github.com/allisson/credvault/internal/credentials/repository"
	credentialsUseCase "github.com/allisson/credvault/internal/credentials/usecase"
)

type credentialComponents struct {
	credentialRepo    credentialsUseCase.CredentialRepository
	credentialUseCase credentialsUseCase.CredentialUseCase
	credentialHandler *credentialsHTTP.CredentialHandler

	credentialRepoInit    sync.Once
	credentialUseCaseInit sync.Once
	credentialHandlerInit sync.Once
}

// CredentialRepository returns the credential repository for the configured driver.
func (c *Container) CredentialRepository() (credentialsUseCase.CredentialRepository, error) {
	err := c.initOnce("credentialRepo", &c.credentialRepoInit, func() error {
		var err error
		c.credentialRepo, err = repositoryFor(c, "credential repository",
			func(db *sql.DB) credentialsUseCase.CredentialRepository {
				return credentialsRepository.NewPostgreSQLCredentialRepository(db)
			},
			func(db *sql.DB) credentialsUseCase.CredentialRepository {
				return credentialsRepository.NewMySQLCredentialRepository(db)
			},
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the secret store use case.
func (c *Container) CredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	err := c.initOnce("credentialUseCase", &c.credentialUseCaseInit, func() error {
		var err error
		c.credentialUseCase, err = c.initCredentialUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.credentialUseCase, nil
}

// CredentialHandler returns the credential HTTP handler.
func (c *Container) CredentialHandler() (*credentialsHTTP.CredentialHandler, error) {
	err := c.initOnce("credentialHandler", &c.credentialHandlerInit, func() error {
		useCase, err := c.CredentialUseCase()
		if err != nil {
			return fmt.Errorf("failed to get credential use case for credential handler: %w", err)
		}
		c.credentialHandler = credentialsHTTP.NewCredentialHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.credentialHandler, nil
}

func (c *Container) initCredentialUseCase() (credentialsUseCase.CredentialUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}
	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, err
	}
	hierarchy, err := c.HierarchyUseCase()
	if err != nil {
		return nil, err
	}
	sealer, err := c.Sealer()
	if err != nil {
		return nil, fmt.Errorf("failed to get sealer for credential use case: %w", err)
	}
	auditRecorder, err := c.AuditLogUseCase()
	if err != nil {
		return nil, err
	}

	baseUseCase := credentialsUseCase.NewCredentialUseCase(txManager, credentialRepo, hierarchy, sealer, auditRecorder)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
		}
		return credentialsUseCase.NewCredentialUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}
	return baseUseCase, nil
}
