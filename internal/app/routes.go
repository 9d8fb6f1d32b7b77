package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/middleware"
	"github.com/project-samarth/core/internal/modules/answer"
	"github.com/project-samarth/core/internal/modules/auth"
	"github.com/project-samarth/core/internal/modules/cache"
	"github.com/project-samarth/core/internal/modules/datasets"
	"github.com/project-samarth/core/internal/modules/health"
	"github.com/project-samarth/core/internal/modules/query"
	"github.com/project-samarth/core/internal/modules/routing"
	pkgai "github.com/project-samarth/core/internal/pkg/ai"
	"github.com/project-samarth/core/internal/pkg/response"
)

const (
	routingMaxTokens = 1024
	answerMaxTokens  = 4096
)

func (a *App) registerRoutes() {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	var rdb *redis.Client
	if a.redis != nil {
		rdb = a.redis.Raw()
	}
	r.Use(middleware.RateLimit(rdb))
	r.Use(middleware.Idempotence(rdb))

	// The router and synthesizer share the provider pool but may be pinned to
	// different models; a config with no enabled provider leaves both nil and
	// /api/query reports the misconfiguration per request.
	var queryRouter *routing.Router
	var synth *answer.Synthesizer
	if provider := pkgai.SelectProvider(a.cfg.AI, a.cfg.AI.RoutingModel); provider != nil {
		queryRouter = routing.NewRouter(pkgai.NewCompleter(provider, routingMaxTokens), a.logger)
	}
	if provider := pkgai.SelectProvider(a.cfg.AI, a.cfg.AI.AnswerModel); provider != nil {
		synth = answer.NewSynthesizer(pkgai.NewCompleter(provider, answerMaxTokens), a.logger)
	}

	querySvc := query.NewService(a.store, queryRouter, a.engine, synth, a.cfg.CacheTTL, a.logger).
		WithSynthesizerFactory(func(apiKey string) *answer.Synthesizer {
			provider := pkgai.SelectProvider(a.cfg.AI, a.cfg.AI.AnswerModel)
			if provider == nil {
				return nil
			}
			override := *provider
			override.APIKey = apiKey
			return answer.NewSynthesizer(pkgai.NewCompleter(&override, answerMaxTokens), a.logger)
		})

	api := r.Group("/api")

	api.GET("/", func(c *gin.Context) {
		cacheBackend := "In-Memory"
		if _, ok := a.store.(*cache.MongoStore); ok {
			cacheBackend = "MongoDB"
		}
		response.OK(c, gin.H{
			"message": "Project Samarth API",
			"version": "1.0.0",
			"cache":   cacheBackend,
			"health":  "/api/health",
		})
	})

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "pong"})
	})

	query.NewHandler(querySvc).RegisterRoutes(api)
	health.RegisterRoutes(api, a.engine, a.store, a.loadedAt, a.logger)
	datasets.RegisterRoutes(api)
	auth.NewHandler(a.cfg.AdminPassword, a.logger).RegisterRoutes(api)
	cache.NewHandler(a.store, a.logger).RegisterRoutes(api, authMW)

	api.GET("/cron", authMW, func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	api.POST("/cron/:name/run", authMW, func(c *gin.Context) {
		a.logger.Info("cron job triggered manually",
			zap.String("job", c.Param("name")),
			zap.String("subject", middleware.CurrentSubject(c)))
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		response.OK(c, gin.H{"message": "job executed"})
	})
}
