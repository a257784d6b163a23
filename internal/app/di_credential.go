package app

import (
	"fmt"

	credentialRepository "github.com/cooltech/credvault/internal/credential/repository"
	credentialUsecase "github.com/cooltech/credvault/internal/credential/usecase"
)

// CredentialStore returns the credential store based on database driver.
func (c *Container) CredentialStore() (credentialUsecase.CredentialStore, error) {
	var err error
	c.credentialStoreInit.Do(func() {
		c.credentialStore, err = c.initCredentialStore()
		if err != nil {
			c.initErrors["credentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialStore"]; exists {
		return nil, storedErr
	}
	return c.credentialStore, nil
}

// CredentialUseCase returns the credential use case instance.
// The use case is wrapped with business metrics instrumentation.
func (c *Container) CredentialUseCase() (credentialUsecase.UseCase, error) {
	var err error
	c.credentialUseCaseInit.Do(func() {
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// initCredentialStore creates the credential store instance.
func (c *Container) initCredentialStore() (credentialUsecase.CredentialStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential store: %w", err)
	}

	// Select the appropriate store based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return credentialRepository.NewMySQLCredentialStore(db), nil
	case "postgres":
		return credentialRepository.NewPostgreSQLCredentialStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCredentialUseCase creates the credential use case with all its dependencies.
func (c *Container) initCredentialUseCase() (credentialUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}

	credentialStore, err := c.CredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential store for credential use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for credential use case: %w", err)
	}

	useCase := credentialUsecase.NewCredentialUseCase(txManager, credentialStore)
	return credentialUsecase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}
