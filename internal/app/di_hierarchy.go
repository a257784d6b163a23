package app

import (
	"fmt"

	hierarchyRepository "github.com/cooltech/credvault/internal/hierarchy/repository"
	hierarchyUsecase "github.com/cooltech/credvault/internal/hierarchy/usecase"
)

// HierarchyRepository returns the hierarchy repository based on database driver.
func (c *Container) HierarchyRepository() (hierarchyUsecase.HierarchyRepository, error) {
	var err error
	c.hierarchyRepoInit.Do(func() {
		c.hierarchyRepo, err = c.initHierarchyRepository()
		if err != nil {
			c.initErrors["hierarchyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hierarchyRepo"]; exists {
		return nil, storedErr
	}
	return c.hierarchyRepo, nil
}

// HierarchyUseCase returns the hierarchy use case instance.
func (c *Container) HierarchyUseCase() (hierarchyUsecase.UseCase, error) {
	var err error
	c.hierarchyUseCaseInit.Do(func() {
		c.hierarchyUseCase, err = c.initHierarchyUseCase()
		if err != nil {
			c.initErrors["hierarchyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["hierarchyUseCase"]; exists {
		return nil, storedErr
	}
	return c.hierarchyUseCase, nil
}

// initHierarchyRepository creates the hierarchy repository instance.
func (c *Container) initHierarchyRepository() (hierarchyUsecase.HierarchyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for hierarchy repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return hierarchyRepository.NewMySQLHierarchyRepository(db), nil
	case "postgres":
		return hierarchyRepository.NewPostgreSQLHierarchyRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initHierarchyUseCase creates the hierarchy use case with its dependencies.
func (c *Container) initHierarchyUseCase() (hierarchyUsecase.UseCase, error) {
	hierarchyRepo, err := c.HierarchyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get hierarchy repository for hierarchy use case: %w", err)
	}

	return hierarchyUsecase.NewHierarchyUseCase(hierarchyRepo), nil
}
