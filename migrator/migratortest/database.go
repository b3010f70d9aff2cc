package migratortest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for pgtestdb
	"github.com/peterldowns/pgtestdb"
	"github.com/stretchr/testify/require"

	"github.com/screwyprof/stakeview/migrator"
)

// CreateTestDatabase creates a test database with schema migrations applied.
// Returns the connection pool ready for use.
func CreateTestDatabase(t *testing.T, migrationsDir string) *pgxpool.Pool {
	t.Helper()

	migratorInstance := migrator.NewSchemaMigrator(migrationsDir)
	return createTestDatabaseWithMigrator(t, migratorInstance)
}

// createTestDatabaseWithMigrator creates a test database using the provided migrator
func createTestDatabaseWithMigrator(t *testing.T, migratorInstance pgtestdb.Migrator) *pgxpool.Pool {
	t.Helper()

	config := createTestDatabaseConfig()

	// Create test database and get its config
	dbConfig := pgtestdb.Custom(t, config, migratorInstance)

	// Connect to the test database using test context for proper lifecycle management
	pool, err := createTestConnection(t.Context(), dbConfig.URL())
	require.NoError(t, err)

	// Log the database URL for debugging
	t.Logf("testdbconf: %s", dbConfig.URL())

	return pool
}

// createTestConnection creates a connection pool sized for test execution:
// a minimal pool with short lifecycles and fast failure detection.
func createTestConnection(ctx context.Context, connectionString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, err
	}

	// Tests are mostly sequential; keep one connection warm, cap at two
	config.MinConns = 1
	config.MaxConns = 2

	config.MaxConnLifetime = 10 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	// Fail fast in test scenarios
	config.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, config)
}

// createTestDatabaseConfig creates the standard pgtestdb configuration for stakeview tests
func createTestDatabaseConfig() pgtestdb.Config {
	return pgtestdb.Config{
		DriverName: "pgx",
		User:       "stakeview",
		Password:   "stakeview",
		Host:       "localhost",
		Port:       "5432",
		Options:    "sslmode=disable",
	}
}
