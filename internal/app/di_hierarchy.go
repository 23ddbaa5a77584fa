package app

import (
	"database/sql"
	"fmt"
	"sync"

	hierarchyHTTP "github.com/allisson/credvault/internal/hierarchy/http"
	hierarchyRepository "github.com/allisson/credvault/internal/hierarchy/repository"
	hierarchyUseCase "github.com/allisson/credvault/internal/hierarchy/usecase"
)

type hierarchyComponents struct {
	ouRepo           hierarchyUseCase.OURepository
	divisionRepo     hierarchyUseCase.DivisionRepository
	hierarchyUseCase hierarchyUseCase.HierarchyUseCase
	hierarchyHandler *hierarchyHTTP.HierarchyHandler

	ouRepoInit           sync.Once
	divisionRepoInit     sync.Once
	hierarchyUseCaseInit sync.Once
	hierarchyHandlerInit sync.Once
}

// OURepository returns the OU repository for the configured driver.
func (c *Container) OURepository() (hierarchyUseCase.OURepository, error) {
	err := c.initOnce("ouRepo", &c.ouRepoInit, func() error {
		var err error
		c.ouRepo, err = repositoryFor(c, "ou repository",
			func(db *sql.DB) hierarchyUseCase.OURepository {
				return hierarchyRepository.NewPostgreSQLOURepository(db)
			},
			func(db *sql.DB) hierarchyUseCase.OURepository {
				return hierarchyRepository.NewMySQLOURepository(db)
			},
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.ouRepo, nil
}

// DivisionRepository returns the division repository for the configured driver.
func (c *Container) DivisionRepository() (hierarchyUseCase.DivisionRepository, error) {
	err := c.initOnce("divisionRepo", &c.divisionRepoInit, func() error {
		var err error
		c.divisionRepo, err = repositoryFor(c, "division repository",
			func(db *sql.DB) hierarchyUseCase.DivisionRepository {
				return hierarchyRepository.NewPostgreSQLDivisionRepository(db)
			},
			func(db *sql.DB) hierarchyUseCase.DivisionRepository {
				return hierarchyRepository.NewMySQLDivisionRepository(db)
			},
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.divisionRepo, nil
}

// HierarchyUseCase returns the OU/division use case.
func (c *Container) HierarchyUseCase() (hierarchyUseCase.HierarchyUseCase, error) {
	err := c.initOnce("hierarchyUseCase", &c.hierarchyUseCaseInit, func() error {
		ouRepo, err := c.OURepository()
		if err != nil {
			return err
		}
		divisionRepo, err := c.DivisionRepository()
		if err != nil {
			return err
		}
		c.hierarchyUseCase = hierarchyUseCase.NewHierarchyUseCase(ouRepo, divisionRepo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.hierarchyUseCase, nil
}

// HierarchyHandler returns the OU and division listing handler.
func (c *Container) HierarchyHandler() (*hierarchyHTTP.HierarchyHandler, error) {
	err := c.initOnce("hierarchyHandler", &c.hierarchyHandlerInit, func() error {
		useCase, err := c.HierarchyUseCase()
		if err != nil {
			return fmt.Errorf("failed to get hierarchy use case for hierarchy handler: %w", err)
		}
		c.hierarchyHandler = hierarchyHTTP.NewHierarchyHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.hierarchyHandler, nil
}
