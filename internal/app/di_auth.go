package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	authRepository "github.com/allisson/credvault/internal/auth/repository"
	authService "github.com/allisson/credvault/internal/auth/service"
	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	"github.com/allisson/credvault/internal/config"
)

type authComponents struct {
	passwordHasher authService.PasswordHasher
	tokenService   authService.TokenService
	revocationRepo authUseCase.RevocationRepository
	authUseCase    authUseCase.AuthUseCase
	authHandler    *authHTTP.AuthHandler

	passwordHasherInit sync.Once
	tokenServiceInit   sync.Once
	revocationRepoInit sync.Once
	authUseCaseInit    sync.Once
	authHandlerInit    sync.Once
}

func newRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client, err := authRepository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// PasswordHasher returns the argon2id password hasher.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	err := c.initOnce("passwordHasher", &c.passwordHasherInit, func() error {
		var err error
		c.passwordHasher, err = authService.NewPasswordHasher()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.passwordHasher, nil
}

// TokenService returns the HS256 access token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService(
			[]byte(c.config.JWTSecret),
			c.config.JWTIssuer,
			c.config.AuthTokenExpiration,
		)
	})
	return c.tokenService
}

// RevocationRepository returns the Redis revocation list when
// AUTH_REVOKE_ON_PRIVILEGE_CHANGE is set and a store that never revokes otherwise.
func (c *Container) RevocationRepository() (authUseCase.RevocationRepository, error) {
	err := c.initOnce("revocationRepo", &c.revocationRepoInit, func() error {
		if !c.config.RevokeOnPrivilegeChange {
			c.revocationRepo = authRepository.NoopRevocationRepository{}
			return nil
		}

		client, err := c.RedisClient()
		if err != nil {
			return fmt.Errorf("failed to get redis client for revocation repository: %w", err)
		}
		c.revocationRepo = authRepository.NewRedisRevocationRepository(client, c.config.AuthTokenExpiration)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.revocationRepo, nil
}

// AuthUseCase returns the authentication use case.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	err := c.initOnce("authUseCase", &c.authUseCaseInit, func() error {
		var err error
		c.authUseCase, err = c.initAuthUseCase()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.authUseCase, nil
}

// AuthHandler returns the register, login, refresh and password handler.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	err := c.initOnce("authHandler", &c.authHandlerInit, func() error {
		useCase, err := c.AuthUseCase()
		if err != nil {
			return fmt.Errorf("failed to get auth use case for auth handler: %w", err)
		}
		c.authHandler = authHTTP.NewAuthHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.authHandler, nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for auth use case: %w", err)
	}
	userRepo, err := c.UserStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}
	hierarchy, err := c.HierarchyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get hierarchy use case for auth use case: %w", err)
	}
	revocationRepo, err := c.RevocationRepository()
	if err != nil {
		return nil, err
	}
	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, err
	}

	baseUseCase, err := authUseCase.NewAuthUseCase(
		txManager,
		userRepo,
		hierarchy,
		revocationRepo,
		hasher,
		c.TokenService(),
		authUseCase.Options{RequireMembership: c.config.RegistrationRequireMembership},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth use case: %w", err)
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		return authUseCase.NewAuthUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}
	return baseUseCase, nil
}
