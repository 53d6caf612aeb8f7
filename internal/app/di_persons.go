package app

import (
	"fmt"

	"github.com/allisson/fieldvault/internal/database"
	personsHTTP "github.com/allisson/fieldvault/internal/persons/http"
	personsRepository "github.com/allisson/fieldvault/internal/persons/repository"
	personsUseCase "github.com/allisson/fieldvault/internal/persons/usecase"
)

// PersonRepository returns the person repository for the configured driver.
func (c *Container) PersonRepository() (personsUseCase.PersonRepository, error) {
	err := c.initOnce(&c.personRepositoryInit, "personRepository", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for person repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverMySQL:
			c.personRepository = personsRepository.NewMySQLPersonRepository(db)
		case database.DriverPostgres:
			c.personRepository = personsRepository.NewPostgreSQLPersonRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.personRepository, nil
}

// PersonUseCase returns the person use case wrapped with metrics.
func (c *Container) PersonUseCase() (personsUseCase.PersonUseCase, error) {
	err := c.initOnce(&c.personUseCaseInit, "personUseCase", func() error {
		txManager, err := c.TxManager()
		if err != nil {
			return fmt.Errorf("failed to get tx manager for person use case: %w", err)
		}

		repo, err := c.PersonRepository()
		if err != nil {
			return fmt.Errorf("failed to get person repository for person use case: %w", err)
		}

		fieldCipher, err := c.FieldCipher()
		if err != nil {
			return fmt.Errorf("failed to get field cipher for person use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for person use case: %w", err)
		}

		useCase := personsUseCase.NewPersonUseCase(txManager, repo, fieldCipher)
		c.personUseCase = personsUseCase.NewPersonUseCaseWithMetrics(useCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.personUseCase, nil
}

// PersonHandler returns the HTTP handler for person endpoints.
func (c *Container) PersonHandler() (*personsHTTP.PersonHandler, error) {
	err := c.initOnce(&c.personHandlerInit, "personHandler", func() error {
		useCase, err := c.PersonUseCase()
		if err != nil {
			return fmt.Errorf("failed to get person use case for person handler: %w", err)
		}
		c.personHandler = personsHTTP.NewPersonHandler(useCase, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.personHandler, nil
}
