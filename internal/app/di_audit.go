package app

import (
	"database/sql"
	"fmt"
	"sync"

	auditHTTP "github.com/allisson/credvault/internal/audit/http"
	auditRepository "github.com/allisson/credvault/internal/audit/repository"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
)

type auditComponents struct {
	auditLogRepo    auditUseCase.AuditLogRepository
	auditLogUseCase auditUseCase.AuditLogUseCase
	auditLogHandler *auditHTTP.AuditLogHandler

	auditLogRepoInit    sync.Once
	auditLogUseCaseInit sync.Once
	auditLogHandlerInit sync.Once
}

// AuditLogRepository returns the audit log repository for the configured driver.
func (c *Container) AuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	err := c.initOnce("auditLogRepo", &c.auditLogRepoInit, func() error {
		var err error
		c.auditLogRepo, err = repositoryFor(c, "audit log repository",
			func(db *sql.DB) auditUseCase.AuditLogRepository {
				return auditRepository.NewPostgreSQLAuditLogRepository(db)
			},
			func(db *sql.DB) auditUseCase.AuditLogRepository {
				return auditRepository.NewMySQLAuditLogRepository(db)
			},
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.auditLogRepo, nil
}

// AuditLogUseCase returns the audit trail use case. It doubles as the Recorder
// injected into the mutating use cases.
func (c *Container) AuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	err := c.initOnce("auditLogUseCase", &c.auditLogUseCaseInit, func() error {
		repo, err := c.AuditLogRepository()
		if err != nil {
			return err
		}
		c.auditLogUseCase = auditUseCase.NewAuditLogUseCase(repo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.auditLogUseCase, nil
}

// AuditLogHandler returns the audit log listing handler.
func (c *Container) AuditLogHandler() (*auditHTTP.AuditLogHandler, error) {
	err := c.initOnce("auditLogHandler", &c.auditLogHandlerInit, func() error {
		useCase, err := c.AuditLogUseCase()
		if err != nil {
			return fmt.Errorf("failed to get audit log use case for audit log handler: %w", err)
		}
		c.auditLogHandler = auditHTTP.NewAuditLogHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.auditLogHandler, nil
}
