package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/cooltech/credvault/internal/app"
	"github.com/cooltech/credvault/internal/config"
	credentialdomain "github.com/cooltech/credvault/internal/credential/domain"
	credentialRepository "github.com/cooltech/credvault/internal/credential/repository"
	"github.com/cooltech/credvault/internal/database"
	hierarchydomain "github.com/cooltech/credvault/internal/hierarchy/domain"
	hierarchyRepository "github.com/cooltech/credvault/internal/hierarchy/repository"
	identitydomain "github.com/cooltech/credvault/internal/identity/domain"
	identityRepository "github.com/cooltech/credvault/internal/identity/repository"
)

// The starter organizational structure: every OU gets the same division names,
// and every division starts with two placeholder credentials.
var (
	seedOUNames = []string{
		"News management",
		"Software reviews",
		"Hardware reviews",
		"Opinion publishing",
	}

	seedDivisionNames = []string{
		"Finances", "IT", "Writing", "Development", "Design", "SEO",
		"Content", "Support", "QA", "Marketing", "Research",
	}
)

// seedUserRepository is the subset of the user repository used by seeding.
type seedUserRepository interface {
	Create(ctx context.Context, user *identitydomain.User) error
	ReplaceMembership(ctx context.Context, userID uuid.UUID, divisionIDs, ouIDs []uuid.UUID) error
}

// seedHierarchyRepository is the subset of the hierarchy repository used by seeding.
type seedHierarchyRepository interface {
	CreateOU(ctx context.Context, ou *hierarchydomain.OU) error
	CreateDivision(ctx context.Context, division *hierarchydomain.Division) error
}

// seedCredentialStore is the subset of the credential store used by seeding.
type seedCredentialStore interface {
	Create(ctx context.Context, repo *credentialdomain.CredentialRepository) error
}

// seedRepositories bundles the driver-specific repositories used by seeding.
type seedRepositories struct {
	users       seedUserRepository
	hierarchy   seedHierarchyRepository
	credentials seedCredentialStore
}

// RunSeed wipes the database and loads the starter organizational structure:
// the configured OUs and divisions, a credential repository with two starter
// credentials per division, and the four well-known users (normaluser,
// multidivuser, manager, admin). Everything runs in a single transaction.
func RunSeed(ctx context.Context) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	db, err := container.DB()
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	txManager, err := container.TxManager()
	if err != nil {
		return fmt.Errorf("failed to get tx manager: %w", err)
	}

	repos, err := newSeedRepositories(cfg.DBDriver, db)
	if err != nil {
		return err
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	logger.Info("seeding database", slog.String("driver", cfg.DBDriver))

	err = txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := resetTables(ctx, db); err != nil {
			return err
		}

		ouIDs, divisionIDs, err := seedHierarchy(ctx, repos)
		if err != nil {
			return err
		}

		return seedUsers(ctx, repos.users, hasher, ouIDs, divisionIDs)
	})
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	logger.Info("seed completed",
		slog.Int("ous", len(seedOUNames)),
		slog.Int("divisions", len(seedOUNames)*len(seedDivisionNames)),
	)
	return nil
}

// newSeedRepositories selects the driver-specific repositories.
func newSeedRepositories(driver string, db *sql.DB) (*seedRepositories, error) {
	switch driver {
	case "mysql":
		return &seedRepositories{
			users:       identityRepository.NewMySQLUserRepository(db),
			hierarchy:   hierarchyRepository.NewMySQLHierarchyRepository(db),
			credentials: credentialRepository.NewMySQLCredentialStore(db),
		}, nil
	case "postgres":
		return &seedRepositories{
			users:       identityRepository.NewPostgreSQLUserRepository(db),
			hierarchy:   hierarchyRepository.NewPostgreSQLHierarchyRepository(db),
			credentials: credentialRepository.NewPostgreSQLCredentialStore(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// resetTables removes all existing rows. Children go first so foreign keys
// never block the deletes.
func resetTables(ctx context.Context, db *sql.DB) error {
	querier := database.GetTx(ctx, db)

	tables := []string{
		"user_divisions",
		"user_ous",
		"credential_repositories",
		"divisions",
		"ous",
		"users",
	}
	for _, table := range tables {
		if _, err := querier.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset table %s: %w", table, err)
		}
	}
	return nil
}

// seedHierarchy creates the OUs, their divisions, and a credential repository
// per division. Returns the created OU and division ids in creation order.
func seedHierarchy(
	ctx context.Context,
	repos *seedRepositories,
) ([]uuid.UUID, []uuid.UUID, error) {
	now := time.Now().UTC()

	var ouIDs, divisionIDs []uuid.UUID
	for _, ouName := range seedOUNames {
		ou := &hierarchydomain.OU{
			ID:   uuid.Must(uuid.NewV7()),
			Name: ouName,
		}
		if err := repos.hierarchy.CreateOU(ctx, ou); err != nil {
			return nil, nil, err
		}
		ouIDs = append(ouIDs, ou.ID)

		for _, divisionName := range seedDivisionNames {
			division := &hierarchydomain.Division{
				ID:   uuid.Must(uuid.NewV7()),
				Name: fmt.Sprintf("%s - %s", ouName, divisionName),
				OUID: ou.ID,
			}
			if err := repos.hierarchy.CreateDivision(ctx, division); err != nil {
				return nil, nil, err
			}
			divisionIDs = append(divisionIDs, division.ID)

			credentialRepo := &credentialdomain.CredentialRepository{
				ID:         uuid.Must(uuid.NewV7()),
				DivisionID: division.ID,
			}
			credentialRepo.Add("WP Site", "user1/wp-pass", now)
			credentialRepo.Add("Server", "user2/server-pass", now)
			if err := repos.credentials.Create(ctx, credentialRepo); err != nil {
				return nil, nil, err
			}
		}
	}

	return ouIDs, divisionIDs, nil
}

// seedUsers creates the four well-known users with their membership:
// normaluser in a single division, multidivuser spanning two OUs, manager,
// and an admin with membership in every division.
func seedUsers(
	ctx context.Context,
	users seedUserRepository,
	hasher *pwdhash.PasswordHasher,
	ouIDs []uuid.UUID,
	divisionIDs []uuid.UUID,
) error {
	perOU := len(seedDivisionNames)

	entries := []struct {
		username    string
		password    string
		role        identitydomain.Role
		divisionIDs []uuid.UUID
		ouIDs       []uuid.UUID
	}{
		{
			username:    "normaluser",
			password:    "password",
			role:        identitydomain.RoleUser,
			divisionIDs: []uuid.UUID{divisionIDs[0]},
			ouIDs:       []uuid.UUID{ouIDs[0]},
		},
		{
			username:    "multidivuser",
			password:    "password",
			role:        identitydomain.RoleUser,
			divisionIDs: []uuid.UUID{divisionIDs[1], divisionIDs[perOU+1]},
			ouIDs:       []uuid.UUID{ouIDs[0], ouIDs[1]},
		},
		{
			username:    "manager",
			password:    "password",
			role:        identitydomain.RoleManager,
			divisionIDs: []uuid.UUID{divisionIDs[2]},
			ouIDs:       []uuid.UUID{ouIDs[0]},
		},
		{
			username:    "admin",
			password:    "admin",
			role:        identitydomain.RoleAdmin,
			divisionIDs: divisionIDs,
			ouIDs:       []uuid.UUID{ouIDs[0]},
		},
	}

	for _, entry := range entries {
		digest, err := hasher.Hash([]byte(entry.password))
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", entry.username, err)
		}

		user := &identitydomain.User{
			ID:             uuid.Must(uuid.NewV7()),
			Username:       entry.username,
			PasswordDigest: digest,
			Role:           entry.role,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", entry.username, err)
		}
		if err := users.ReplaceMembership(ctx, user.ID, entry.divisionIDs, entry.ouIDs); err != nil {
			return fmt.Errorf("failed to assign membership for %s: %w", entry.username, err)
		}
	}

	return nil
}
