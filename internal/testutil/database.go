// Package testutil provides testing utilities for database integration tests.
//
// Database connection strings can be customized via environment variables:
//   - TEST_POSTGRES_DSN: PostgreSQL connection string
//   - TEST_MYSQL_DSN: MySQL connection string
//
// Integration tests are skipped unless the matching variable is set, so the
// unit suite stays runnable without a database.
//
// Database setup:
//
//	db := testutil.SetupPostgresDB(t)
//	defer testutil.TeardownDB(t, db)
//	defer testutil.CleanupPostgresDB(t, db)
//
// Test fixtures (for foreign key constraints):
//
//	ouID := testutil.CreateTestOU(t, db, "postgres", "Engineering")
//	divisionID := testutil.CreateTestDivision(t, db, "postgres", ouID, "Platform")
//
// Migrations are automatically discovered by walking up from the current
// working directory until a "migrations/{dbType}" directory is found.
package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

// GetPostgresTestDSN returns the PostgreSQL test DSN from the environment.
func GetPostgresTestDSN() string {
	return os.Getenv("TEST_POSTGRES_DSN")
}

// GetMySQLTestDSN returns the MySQL test DSN from the environment.
func GetMySQLTestDSN() string {
	return os.Getenv("TEST_MYSQL_DSN")
}

// SetupPostgresDB creates a new PostgreSQL database connection and runs migrations.
// Skips the test when TEST_POSTGRES_DSN is not set.
func SetupPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := GetPostgresTestDSN()
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set, skipping integration test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err, "failed to connect to postgres")

	err = db.Ping()
	require.NoError(t, err, "failed to ping postgres database")

	runPostgresMigrations(t, db)

	// Clean up any existing data before the test runs
	CleanupPostgresDB(t, db)

	return db
}

// SetupMySQLDB creates a new MySQL database connection and runs migrations.
// Skips the test when TEST_MYSQL_DSN is not set.
func SetupMySQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := GetMySQLTestDSN()
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set, skipping integration test")
	}

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err, "failed to connect to mysql")

	err = db.Ping()
	require.NoError(t, err, "failed to ping mysql database")

	runMySQLMigrations(t, db)

	// Clean up any existing data before the test runs
	CleanupMySQLDB(t, db)

	return db
}

// TeardownDB closes the database connection.
func TeardownDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db != nil {
		err := db.Close()
		require.NoError(t, err, "failed to close database connection")
	}
}

// CleanupPostgresDB truncates all tables in the PostgreSQL database.
func CleanupPostgresDB(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(
		"TRUNCATE TABLE user_ous, user_divisions, credential_repositories, divisions, ous, users RESTART IDENTITY CASCADE",
	)
	require.NoError(t, err, "failed to truncate postgres tables")
}

// CleanupMySQLDB truncates all tables in the MySQL database.
func CleanupMySQLDB(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	require.NoError(t, err, "failed to disable foreign key checks")

	tables := []string{
		"user_ous",
		"user_divisions",
		"credential_repositories",
		"divisions",
		"ous",
		"users",
	}
	for _, table := range tables {
		_, err = db.Exec("TRUNCATE TABLE " + table)
		require.NoError(t, err, "failed to truncate "+table)
	}

	_, err = db.Exec("SET FOREIGN_KEY_CHECKS = 1")
	require.NoError(t, err, "failed to enable foreign key checks")
}

// CreateTestOU inserts an organizational unit and returns its id.
func CreateTestOU(t *testing.T, db *sql.DB, driver, name string) uuid.UUID {
	t.Helper()

	id := uuid.Must(uuid.NewV7())
	query := rebind(driver, "INSERT INTO ous (id, name, created_at) VALUES (?, ?, NOW())")
	_, err := db.Exec(query, id, name)
	require.NoError(t, err, "failed to create test ou")
	return id
}

// CreateTestDivision inserts a division with an empty credential repository
// and returns the division id.
func CreateTestDivision(t *testing.T, db *sql.DB, driver string, ouID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	divisionID := uuid.Must(uuid.NewV7())
	query := rebind(driver, "INSERT INTO divisions (id, name, ou_id, created_at) VALUES (?, ?, ?, NOW())")
	_, err := db.Exec(query, divisionID, name, ouID)
	require.NoError(t, err, "failed to create test division")

	repoID := uuid.Must(uuid.NewV7())
	query = rebind(
		driver,
		"INSERT INTO credential_repositories (id, division_id, credentials, created_at, updated_at) VALUES (?, ?, ?, NOW(), NOW())",
	)
	_, err = db.Exec(query, repoID, divisionID, []byte("[]"))
	require.NoError(t, err, "failed to create test credential repository")

	return divisionID
}

// rebind converts ? placeholders to $N for the postgres driver.
func rebind(driver, query string) string {
	if driver != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// runPostgresMigrations applies all pending PostgreSQL migrations for the test database.
func runPostgresMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	require.NoError(t, err, "failed to create postgres driver")

	migrationsPath, err := getMigrationsPath("postgresql")
	require.NoError(t, err, "failed to find postgresql migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance for postgres")

	// The migrate instance is intentionally not closed: it wraps a database
	// connection owned by the caller.
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run postgres migrations from %s", migrationsPath))
	}
}

// runMySQLMigrations applies all pending MySQL migrations for the test database.
func runMySQLMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := mysql.WithInstance(db, &mysql.Config{})
	require.NoError(t, err, "failed to create mysql driver")

	migrationsPath, err := getMigrationsPath("mysql")
	require.NoError(t, err, "failed to find mysql migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"mysql",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance for mysql")

	// The migrate instance is intentionally not closed: it wraps a database
	// connection owned by the caller.
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run mysql migrations from %s", migrationsPath))
	}
}

// getMigrationsPath resolves the absolute path to migration files for the
// specified database type by walking up from the working directory.
func getMigrationsPath(dbType string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		migrationsPath := filepath.Join(dir, "migrations", dbType)
		if _, err := os.Stat(migrationsPath); err == nil {
			return migrationsPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found for %s (started from %s)", dbType, dir)
		}
		dir = parent
	}
}
