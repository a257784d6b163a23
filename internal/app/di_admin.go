package app

import (
	"fmt"

	adminUsecase "github.com/cooltech/credvault/internal/admin/usecase"
	hierarchyRepository "github.com/cooltech/credvault/internal/hierarchy/repository"
	identityRepository "github.com/cooltech/credvault/internal/identity/repository"
)

// AdminUserRepository returns the user repository view used by administration.
func (c *Container) AdminUserRepository() (adminUsecase.UserRepository, error) {
	var err error
	c.adminUserRepoInit.Do(func() {
		c.adminUserRepo, err = c.initAdminUserRepository()
		if err != nil {
			c.initErrors["adminUserRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUserRepo"]; exists {
		return nil, storedErr
	}
	return c.adminUserRepo, nil
}

// AdminHierarchyRepository returns the hierarchy repository view used by administration.
func (c *Container) AdminHierarchyRepository() (adminUsecase.HierarchyRepository, error) {
	var err error
	c.adminHierarchyInit.Do(func() {
		c.adminHierarchyRepo, err = c.initAdminHierarchyRepository()
		if err != nil {
			c.initErrors["adminHierarchyRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminHierarchyRepo"]; exists {
		return nil, storedErr
	}
	return c.adminHierarchyRepo, nil
}

// AdminUseCase returns the administration use case instance.
func (c *Container) AdminUseCase() (adminUsecase.UseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// initAdminUserRepository creates the user repository instance for administration.
func (c *Container) initAdminUserRepository() (adminUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for admin user repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAdminHierarchyRepository creates the hierarchy repository instance for administration.
func (c *Container) initAdminHierarchyRepository() (adminUsecase.HierarchyRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for admin hierarchy repository: %w", err)
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

// initAdminUseCase creates the administration use case with all its dependencies.
func (c *Container) initAdminUseCase() (adminUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for admin use case: %w", err)
	}

	userRepo, err := c.AdminUserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for admin use case: %w", err)
	}

	hierarchyRepo, err := c.AdminHierarchyRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get hierarchy repository for admin use case: %w", err)
	}

	return adminUsecase.NewAdminUseCase(txManager, userRepo, hierarchyRepo), nil
}
