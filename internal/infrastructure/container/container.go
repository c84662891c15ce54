// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ayurplan/engine/internal/application/compliance"
	"github.com/ayurplan/engine/internal/application/dietchart"
	"github.com/ayurplan/engine/internal/application/mealsuggestion"
	"github.com/ayurplan/engine/internal/application/nutrition"
	"github.com/ayurplan/engine/internal/application/resolver"
	domaincompliance "github.com/ayurplan/engine/internal/domain/compliance"
	"github.com/ayurplan/engine/internal/domain/mealplan"
	"github.com/ayurplan/engine/internal/infrastructure/cache"
	"github.com/ayurplan/engine/internal/infrastructure/config"
	"github.com/ayurplan/engine/internal/infrastructure/http/handlers"
	"github.com/ayurplan/engine/internal/infrastructure/http/server"
	"github.com/ayurplan/engine/internal/infrastructure/monitoring"
	gormRepo "github.com/ayurplan/engine/internal/infrastructure/persistence/gorm"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/memory"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/migrations"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/ayurplan/engine/internal/infrastructure/persistence/redis"
	"github.com/ayurplan/engine/internal/infrastructure/persistence/sqlite"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	"github.com/ayurplan/engine/pkg/healthcheck"
	"github.com/ayurplan/engine/pkg/logger"
)

// ConfigPath is the configuration file to load; empty searches the defaults
type ConfigPath string

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,

	// Repository modules
	RepositoryModule,
	SeedModule,

	// Domain and service modules
	DomainModule,
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			ServiceName: cfg.App.Name,
		})
	},
)

// Database bundles the ORM handle with its primary connection pool
type Database struct {
	Gorm *gorm.DB
	SQL  *sql.DB

	// Stats reports query monitor statistics; nil for sqlite
	Stats func() postgres.QueryStats

	close func() error
}

// DatabaseModule provides database connections
var DatabaseModule = fx.Provide(
	NewDatabase,
	func(d *Database) *gorm.DB { return d.Gorm },
)

// NewDatabase opens the configured driver, migrates and seeds it
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*Database, error) {
	var d *Database
	switch cfg.Database.Driver {
	case "postgres":
		cm, err := postgres.NewConnectionManager(cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := migrate(cm.SQLDB(), cfg.Database.Database, log); err != nil {
				_ = cm.Close()
				return nil, err
			}
		}
		d = &Database{Gorm: cm.GetDB(), SQL: cm.SQLDB(), Stats: cm.QueryStats, close: cm.Close}

	case "sqlite", "":
		db, err := sqlite.SetupDatabase(cfg.Database.Path, gormLogLevel(cfg.Database.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == "" || cfg.Database.Path == ":memory:"),
		)
		d = &Database{Gorm: db, SQL: sqlDB, close: sqlDB.Close}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := d.close(); err != nil {
				log.Error("Failed to close database connection", zap.Error(err))
			}
			return nil
		},
	})
	return d, nil
}

func migrate(db *sql.DB, name string, log *zap.Logger) error {
	m, err := migrations.New(db, name, log)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func gormLogLevel(level string) gormLogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormLogger.Info
	case "warn":
		return gormLogger.Warn
	case "error":
		return gormLogger.Error
	default:
		return gormLogger.Silent
	}
}

// CacheBackend is the catalog cache store. Redis is nil when the
// in-process cache is used.
type CacheBackend struct {
	Repo  outbound.CacheRepository
	Redis *cache.RedisClient
}

// CacheModule provides caching
var CacheModule = fx.Provide(
	NewCacheBackend,
	func(b *CacheBackend) outbound.CacheRepository { return b.Repo },
)

// NewCacheBackend connects to Redis when enabled and falls back to memory
func NewCacheBackend(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *CacheBackend {
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(&cfg.Redis, log)
		if err == nil {
			lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})
			return &CacheBackend{Repo: redisRepo.NewCacheRepository(client), Redis: client}
		}
		log.Warn("Redis unavailable, using in-memory cache", zap.Error(err))
	}

	mem := memory.NewCacheRepository(time.Minute)
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return mem.Close() }})
	log.Info("Using in-memory catalog cache")
	return &CacheBackend{Repo: mem}
}

// MonitoringModule provides metrics and tracing
var MonitoringModule = fx.Provide(
	func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		return reg
	},
	func(reg *prometheus.Registry, log *zap.Logger) *monitoring.MetricsCollector {
		return monitoring.NewMetricsCollector(reg, reg, log)
	},
	func(m *monitoring.MetricsCollector) outbound.EngineMetrics { return m },
	func(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		tp, err := monitoring.NewTracingProvider(context.Background(), monitoring.TracingConfigFrom(cfg), log)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: tp.Shutdown})
		return tp, nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewCatalogRepository,
	gormRepo.NewPatientRepository,
	gormRepo.NewDietChartRepository,

	// Catalog reads go through the cache and writes invalidate it
	func(
		repo *gormRepo.CatalogRepository,
		backend outbound.CacheRepository,
		metrics outbound.EngineMetrics,
		cfg *config.Config,
		log *zap.Logger,
	) *cache.CatalogCache {
		return cache.NewCatalogCache(repo, backend, metrics, cfg.Redis.KeyPrefix, cfg.Redis.CatalogTTL, log)
	},
	func(c *cache.CatalogCache) outbound.CatalogStore { return c },
	func(c *cache.CatalogCache, repo *gormRepo.CatalogRepository) outbound.CatalogWriter {
		return c.Writer(repo)
	},
)

// SeedModule loads the demo data when configured
var SeedModule = fx.Invoke(SeedDatabase)

// SeedDatabase seeds an empty database through the invalidating catalog writer
func SeedDatabase(cfg *config.Config, db *Database, foods outbound.CatalogWriter, log *zap.Logger) {
	if !cfg.Database.Seed {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sqlite.SeedDatabase(ctx, db.Gorm, foods); err != nil {
		log.Warn("Failed to seed database", zap.Error(err))
	}
}

// DomainModule provides the scoring and composition engines
var DomainModule = fx.Provide(
	func() *domaincompliance.Scorer {
		return domaincompliance.NewScorer()
	},
	func(scorer *domaincompliance.Scorer, cfg *config.Config) *mealplan.Planner {
		var opts []mealplan.PlannerOption
		if cfg.Engine.CalorieTolerance > 0 {
			opts = append(opts, mealplan.WithCalorieTolerance(cfg.Engine.CalorieTolerance))
		}
		return mealplan.NewPlanner(scorer, opts...)
	},
	resolver.New,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	nutrition.NewNutritionService,
	compliance.NewComplianceService,
	func(
		planner *mealplan.Planner,
		store outbound.CatalogStore,
		patients outbound.PatientRepository,
		metrics outbound.EngineMetrics,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MealSuggestionService {
		pool := mealsuggestion.DefaultPoolConfig()
		if cfg.Engine.CompatibleLimit > 0 {
			pool.CompatibleLimit = cfg.Engine.CompatibleLimit
		}
		if cfg.Engine.FallbackLimit > 0 {
			pool.FallbackLimit = cfg.Engine.FallbackLimit
		}
		if cfg.Engine.MinCompatible > 0 {
			pool.MinCompatible = cfg.Engine.MinCompatible
		}
		return mealsuggestion.NewMealSuggestionService(planner, store, patients, metrics, pool, log)
	},
	dietchart.NewDietChartService,
)

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewAPIHandlers,
	NewHealthCheck,
	server.NewServer,
)

// NewHealthCheck registers a checker per backing store
func NewHealthCheck(cfg *config.Config, log *zap.Logger, db *Database, backend *CacheBackend) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log.Named("health"))
	hc.Register("database", healthcheck.NewDatabaseChecker(db.SQL))
	if backend.Redis != nil {
		hc.Register("redis", healthcheck.NewRedisChecker(backend.Redis.Client()))
	}
	if db.Stats != nil {
		hc.Register("queries", healthcheck.NewCustomChecker("queries", func(context.Context) (healthcheck.Status, string, interface{}) {
			return healthcheck.StatusHealthy, "", db.Stats()
		}))
	}
	return hc
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting planning engine",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down planning engine")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
