// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	appplanning "github.com/enduraplan/v2/internal/application/planning"
	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/enduraplan/v2/internal/infrastructure/cache"
	"github.com/enduraplan/v2/internal/infrastructure/catalogfile"
	"github.com/enduraplan/v2/internal/infrastructure/config"
	"github.com/enduraplan/v2/internal/infrastructure/http/apiserver"
	"github.com/enduraplan/v2/internal/infrastructure/monitoring"
	gormRepo "github.com/enduraplan/v2/internal/infrastructure/persistence/gorm"
	redisRepo "github.com/enduraplan/v2/internal/infrastructure/persistence/redis"
	"github.com/enduraplan/v2/internal/infrastructure/persistence/sqlite"
	"github.com/enduraplan/v2/internal/ports/inbound"
	"github.com/enduraplan/v2/internal/ports/outbound"
	"github.com/enduraplan/v2/pkg/healthcheck"
	"github.com/enduraplan/v2/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	EngineModule,
	ServiceModule,
	MonitoringModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the SQLite database through GORM
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.Seed {
			if err := sqlite.SeedDatabase(db); err != nil {
				log.Warn("Failed to seed catalog", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
		)
		return db, nil
	},
)

// CacheModule provides the two-layer cache. Redis is attached only when
// enabled; without it the local LRU still serves plan-set caching.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*cache.CacheService, *cache.RedisClient) {
		var redisClient *cache.RedisClient
		if cfg.Redis.Enabled {
			client, err := cache.NewRedisClient(&cfg.Redis, log)
			if err != nil {
				log.Warn("Redis unavailable, falling back to local cache only", zap.Error(err))
			} else {
				redisClient = client
			}
		}
		return cache.NewCacheService(redisClient, cfg.Cache.LocalMaxSize, log), redisClient
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewCatalogRepository,
	gormRepo.NewPlanRepository,
	redisRepo.NewCacheRepository,
)

// EngineModule provides the selection engine with config-driven tuning
var EngineModule = fx.Provide(
	func(cfg *config.Config) planning.Tuning {
		t := planning.DefaultTuning()
		if cfg.Engine.BandFloor > 0 {
			t.BandFloor = cfg.Engine.BandFloor
		}
		if cfg.Engine.BandCeiling > 0 {
			t.BandCeiling = cfg.Engine.BandCeiling
		}
		if cfg.Engine.CarbsOvershoot > 0 {
			t.CarbsOvershoot = cfg.Engine.CarbsOvershoot
		}
		if cfg.Engine.SodiumOvershoot > 0 {
			t.SodiumOvershoot = cfg.Engine.SodiumOvershoot
		}
		if cfg.Engine.FluidOvershoot > 0 {
			t.FluidOvershoot = cfg.Engine.FluidOvershoot
		}
		if cfg.Engine.SearchRotations > 0 {
			t.SearchRotations = cfg.Engine.SearchRotations
		}
		if cfg.Engine.RefineMaxIterations > 0 {
			t.RefineMaxIterations = cfg.Engine.RefineMaxIterations
		}
		return t
	},
	planning.NewEngine,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		engine *planning.Engine,
		catalogRepo outbound.CatalogRepository,
		planRepo outbound.PlanRepository,
		cacheRepo outbound.CacheRepository,
		collector *monitoring.MetricsCollector,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.PlanningService {
		var cache outbound.CacheRepository
		if cfg.Cache.Enabled {
			cache = cacheRepo
		}
		// The interface must stay nil when metrics are disabled; a typed
		// nil collector would pass the service's nil checks.
		var metrics outbound.MetricsRecorder
		if collector != nil {
			metrics = collector
		}
		return appplanning.NewPlanningService(engine, catalogRepo, planRepo, cache, cfg.Cache.TTL, metrics, log)
	},
)

// MonitoringModule provides metrics and health checks
var MonitoringModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) *monitoring.MetricsCollector {
		if !cfg.Monitoring.EnableMetrics {
			return nil
		}
		return monitoring.NewMetricsCollector(log)
	},
	NewHealthCheck,
)

// NewHealthCheck assembles the dependency checks served on the health
// endpoints. Redis only backs the cache, so its failure degrades rather
// than fails readiness.
func NewHealthCheck(cfg *config.Config, log *zap.Logger, db *gorm.DB, redisClient *cache.RedisClient) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log)
	hc.Register("database", healthcheck.NewDatabaseChecker(db))
	if redisClient != nil {
		hc.Register("redis", healthcheck.NewPingChecker(redisClient, false))
	}
	return hc
}

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.NewAPIServer,
)

// LifecycleModule wires start and stop hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	catalogRepo outbound.CatalogRepository,
	collector *monitoring.MetricsCollector,
	server *apiserver.APIServer,
) {
	var watcher *catalogfile.Watcher

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Enduraplan",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			if cfg.Catalog.File != "" {
				count, err := catalogfile.Import(ctx, cfg.Catalog.File, catalogRepo)
				if err != nil {
					return fmt.Errorf("failed to import catalog file: %w", err)
				}
				log.Info("Catalog imported",
					zap.String("path", cfg.Catalog.File),
					zap.Int("items", count),
				)
				if collector != nil {
					collector.SetCatalogSize(count)
				}

				if cfg.Catalog.Watch {
					w, err := catalogfile.NewWatcher(cfg.Catalog.File, catalogRepo, log)
					if err != nil {
						return fmt.Errorf("failed to watch catalog file: %w", err)
					}
					watcher = w
					watcher.Start()
				}
			}

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping Enduraplan")
			if watcher != nil {
				if err := watcher.Stop(); err != nil {
					log.Warn("Catalog watcher shutdown failed", zap.Error(err))
				}
			}
			return server.Stop(ctx)
		},
	})
}
