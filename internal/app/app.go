// Package app wires configuration, storage, AI providers and HTTP routes
// into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/config"
	"github.com/project-samarth/core/internal/database"
	"github.com/project-samarth/core/internal/middleware"
	"github.com/project-samarth/core/internal/modules/cache"
	"github.com/project-samarth/core/internal/modules/engine"
	pkgcron "github.com/project-samarth/core/internal/pkg/cron"
	"github.com/project-samarth/core/internal/pkg/datagov"
	"github.com/project-samarth/core/internal/pkg/jwt"
	pkgredis "github.com/project-samarth/core/internal/pkg/redis"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	mongo    *database.Mongo
	redis    *pkgredis.Client
	store    cache.Store
	engine   *engine.Engine
	loadedAt time.Time
	logger   *zap.Logger
	cancel   context.CancelFunc
	sched    *pkgcron.Scheduler
}

// New initializes the application: config → storage → datasets → routes.
// MongoDB and Redis are both optional: without Mongo the cache falls back to
// an in-process store, without Redis the rate limiter and idempotence guard
// are disabled.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	jwt.SetSecret(cfg.JWTSecret)

	ctx, cancel := context.WithCancel(context.Background())

	var mongoDB *database.Mongo
	var store cache.Store
	if cfg.MongoURL != "" {
		m, err := database.Connect(ctx, cfg)
		if err != nil {
			logger.Warn("mongodb unavailable, using in-memory cache", zap.Error(err))
		} else {
			mongoDB = m
			s, err := cache.NewMongoStore(ctx, m.DB)
			if err != nil {
				cancel()
				return nil, fmt.Errorf("cache store: %w", err)
			}
			store = s
		}
	}
	if store == nil {
		store = cache.NewMemory()
	}

	var rc *pkgredis.Client
	if cfg.RedisURL != "" {
		c, err := pkgredis.Connect(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			rc = c
		}
	}

	eng, loadedAt := buildEngine(ctx, cfg, logger)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	}
	router.Use(cors.New(corsConfig))

	sched := pkgcron.New()
	registerCronJobs(sched, store, logger)
	go sched.Start(ctx)

	app := &App{
		cfg:      cfg,
		router:   router,
		mongo:    mongoDB,
		redis:    rc,
		store:    store,
		engine:   eng,
		loadedAt: loadedAt,
		logger:   logger,
		cancel:   cancel,
		sched:    sched,
	}
	app.registerRoutes()

	return app, nil
}

// buildEngine loads the datasets the engine serves from memory. The bundled
// samples are the default; the live crop production fetch replaces the crop
// sample when the real API is enabled and returns data.
func buildEngine(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*engine.Engine, time.Time) {
	client := datagov.NewHTTPClient(cfg.DataGov.APIKey, logger)

	crops := datagov.SampleCropData()
	if cfg.DataGov.UseRealAPI && cfg.DataGov.APIKey != "" {
		fetchCtx, fetchCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer fetchCancel()
		real, err := client.FetchCropProduction(fetchCtx)
		if err != nil {
			logger.Warn("live crop data fetch failed, using bundled sample", zap.Error(err))
		} else if len(real) > 0 {
			logger.Info("loaded live crop production data", zap.Int("records", len(real)))
			crops = real
		}
	}

	return engine.NewEngine(crops, datagov.SampleRainfallData(), client, logger), time.Now()
}

// registerCronJobs schedules cache maintenance.
func registerCronJobs(sched *pkgcron.Scheduler, store cache.Store, logger *zap.Logger) {
	sched.Register(pkgcron.Job{
		Name:        "cache:purge-expired",
		Description: "Delete expired query cache entries",
		Interval:    12 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := store.PurgeExpired(ctx)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("purged expired cache entries", zap.Int64("deleted", deleted))
			}
			return nil
		},
	})
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background goroutines and closes storage connections.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close", zap.Error(err))
		}
	}
	if err := a.mongo.Disconnect(); err != nil {
		a.logger.Warn("mongo disconnect", zap.Error(err))
	}
}
