// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ayurplan/engine/internal/infrastructure/persistence/migrations"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/sqlite"
)

// IntegrationEnv enables container-backed tests when set to a non-empty value
const IntegrationEnv = "AYURPLAN_INTEGRATION"

// SetupSQLite returns a migrated in-memory SQLite database closed at test end
func SetupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err, "Failed to set up sqlite")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TestDatabase provides a test database instance with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	DB        *sql.DB
	GormDB    *gorm.DB
	PgxPool   *pgxpool.Pool
	DSN       string
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     string
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "postgres:15-alpine",
		Database: "ayurplan_test",
		Username: "test_user",
		Password: "test_password",
		Port:     "5432",
	}
}

// RequireIntegration skips t unless container-backed tests are enabled
func RequireIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv(IntegrationEnv) == "" {
		t.Skipf("set %s=1 to run container-backed tests", IntegrationEnv)
	}
}

// SetupTestDatabase starts a postgres container, applies the embedded
// migrations and returns connections to it
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	RequireIntegration(t)

	cfg := DefaultDatabaseConfig()
	ctx := context.Background()
	dsnFor := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
	}

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        cfg.Image,
				ExposedPorts: []string{cfg.Port + "/tcp"},
				Env: map[string]string{
					"POSTGRES_DB":       cfg.Database,
					"POSTGRES_USER":     cfg.Username,
					"POSTGRES_PASSWORD": cfg.Password,
				},
				WaitingFor: wait.ForAll(
					wait.ForLog("database system is ready to accept connections").
						WithOccurrence(2).
						WithStartupTimeout(60*time.Second),
					wait.ForSQL(nat.Port(cfg.Port+"/tcp"), "pgx", dsnFor),
				),
				Tmpfs: map[string]string{
					"/var/lib/postgresql/data": "rw,noexec,nosuid,size=512m",
				},
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port(cfg.Port+"/tcp"))
	require.NoError(t, err)
	dsn := dsnFor(host, port)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.PingContext(ctx), "Failed to ping test database")

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create GORM connection")

	pgxConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err, "Failed to parse pgx config")
	pgxConfig.MaxConns = 5
	pgxPool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	require.NoError(t, err, "Failed to create pgx pool")

	testDB := &TestDatabase{
		Container: container,
		DB:        db,
		GormDB:    gormDB,
		PgxPool:   pgxPool,
		DSN:       dsn,
		t:         t,
	}
	t.Cleanup(testDB.Cleanup)

	require.NoError(t, testDB.RunMigrations(), "Failed to run migrations")
	return testDB
}

// RunMigrations applies the embedded migrations
func (td *TestDatabase) RunMigrations() error {
	m, err := migrations.New(td.DB, DefaultDatabaseConfig().Database, zap.NewNop())
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// TruncateAllTables removes all data from tables while preserving structure
func (td *TestDatabase) TruncateAllTables(ctx context.Context) error {
	_, err := td.PgxPool.Exec(ctx, "TRUNCATE TABLE food_doshas, food_items, recipes, patients, diet_charts CASCADE")
	return err
}

// CountRecords counts records in a table
func (td *TestDatabase) CountRecords(ctx context.Context, table string) (int, error) {
	var count int
	err := td.PgxPool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	return count, err
}

// Cleanup closes all connections and stops the container
func (td *TestDatabase) Cleanup() {
	if td.PgxPool != nil {
		td.PgxPool.Close()
	}
	if td.DB != nil {
		td.DB.Close()
	}
	if td.Container != nil {
		if err := td.Container.Terminate(context.Background()); err != nil {
			td.t.Logf("Failed to terminate postgres container: %v", err)
		}
	}
}
