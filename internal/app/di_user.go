package app

import (
	"database/sql"
	"fmt"
	"sync"

	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	userHTTP "github.com/allisson/credvault/internal/user/http"
	userRepository "github.com/allisson/credvault/internal/user/repository"
	userUseCase "github.com/allisson/credvault/internal/user/usecase"
)

// UserStore is the identity store as seen by both authentication and assignment.
type UserStore interface {
	authUseCase.UserRepository
	userUseCase.UserRepository
}

type userComponents struct {
	userStore   UserStore
	userUseCase userUseCase.UserUseCase
	userHandler *userHTTP.UserHandler

	userStoreInit   sync.Once
	userUseCaseInit sync.Once
	userHandlerInit sync.Once
}

// UserStore returns the user repository for the configured driver.
func (c *Container) UserStore() (UserStore, error) {
	err := c.initOnce("userStore", &c.userStoreInit, func() error {
		var err error
		c.userStore, err = repositoryFor(c, "user repository",
			func(db *sql.DB) UserStore { return userRepository.NewPostgreSQLUserRepository(db) },
			func(db *sql.DB) UserStore { return userRepository.NewMySQLUserRepository(db) },
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.userStore, nil
}

// UserUseCase returns the assignment service.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	err := c.initOnce("userUseCase", &c.userUseCaseInit, func() error {
		var err error
		c.userUseCase, err = c.initUserUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.userUseCase, nil
}

// UserHandler returns the users, assignment and role handler.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	err := c.initOnce("userHandler", &c.userHandlerInit, func() error {
		useCase, err := c.UserUseCase()
		if err != nil {
			return fmt.Errorf("failed to get user use case for user handler: %w", err)
		}
		c.userHandler = userHTTP.NewUserHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.userHandler, nil
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}
	userStore, err := c.UserStore()
	if err != nil {
		return nil, err
	}
	hierarchy, err := c.HierarchyUseCase()
	if err != nil {
		return nil, err
	}
	revocationRepo, err := c.RevocationRepository()
	if err != nil {
		return nil, err
	}
	auditRecorder, err := c.AuditLogUseCase()
	if err != nil {
		return nil, err
	}

	baseUseCase := userUseCase.NewUserUseCase(
		txManager,
		userStore,
		hierarchy,
		revocationRepo,
		c.TokenService(),
		auditRecorder,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return userUseCase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}
	return baseUseCase, nil
}
