package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ayurplan/engine/internal/infrastructure/cache"
	"github.com/ayurplan/engine/internal/infrastructure/config"
	"github.com/ayurplan/engine/internal/infrastructure/monitoring"
	gormRepo "github.com/ayurplan/engine/internal/infrastructure/persistence/gorm"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/migrations"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/ayurplan/engine/internal/infrastructure/persistence/redis"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/sqlite"
	"github.com/ayurplan/engine/internal/ports/outbound"
	"github.com/ayurplan/engine/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down N|version]",
	Short: "Apply PostgreSQL schema migrations",
	Long: `migrate runs the embedded SQL migrations against the configured
PostgreSQL database. "up" applies every pending migration, "down N" rolls
back N migrations and "version" prints the current schema version. SQLite
databases are migrated automatically at startup.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		if cfg.Database.Driver != "postgres" {
			return fmt.Errorf("migrate requires the postgres driver, configured %q", cfg.Database.Driver)
		}
		cm, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return err
		}
		defer cm.Close()

		m, err := migrations.New(cm.SQLDB(), cfg.Database.Database, log)
		if err != nil {
			return err
		}
		defer m.Close()

		switch args[0] {
		case "up":
			return m.Up()
		case "down":
			if len(args) != 2 {
				return fmt.Errorf("down requires a step count")
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			return m.Steps(-n)
		case "version":
			v, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
			return nil
		default:
			return fmt.Errorf("unknown migrate action %q", args[0])
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog and patients into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		switch cfg.Database.Driver {
		case "postgres":
			cm, err := postgres.NewConnectionManager(cfg, log)
			if err != nil {
				return err
			}
			defer cm.Close()
			foods, closeCache := catalogWriter(cfg, cm.GetDB(), log)
			defer closeCache()
			return sqlite.SeedDatabase(ctx, cm.GetDB(), foods)
		default:
			db, err := sqlite.SetupDatabase(cfg.Database.Path, gormLogger.Silent)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			foods, closeCache := catalogWriter(cfg, db, log)
			defer closeCache()
			return sqlite.SeedDatabase(ctx, db, foods)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

// catalogWriter drops cached Redis entries on writes when Redis is enabled
func catalogWriter(cfg *config.Config, db *gorm.DB, log *zap.Logger) (outbound.CatalogWriter, func()) {
	repo := gormRepo.NewCatalogRepository(db)
	if !cfg.Redis.Enabled {
		return repo, func() {}
	}
	client, err := cache.NewRedisClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, cached catalog entries will expire on their own", zap.Error(err))
		return repo, func() {}
	}
	reg := prometheus.NewRegistry()
	catalogCache := cache.NewCatalogCache(repo, redisRepo.NewCacheRepository(client),
		monitoring.NewMetricsCollector(reg, reg, log), cfg.Redis.KeyPrefix, cfg.Redis.CatalogTTL, log)
	return catalogCache.Writer(repo), func() { _ = client.Close() }
}

func bootstrap(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath(cmd))
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
