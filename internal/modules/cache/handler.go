package cache

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/pkg/response"
)

// Handler exposes the cache administrative surface.
type Handler struct {
	store  Store
	logger *zap.Logger
}

func NewHandler(store Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cache", authMW)
	g.GET("/stats", h.stats)
	g.POST("/clear", h.clear)
	g.DELETE("/expired", h.deleteExpired)
}

func (h *Handler) stats(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		response.ServiceUnavailable(c, "cache store not reachable")
		return
	}

	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c, fmt.Errorf("getting cache stats: %w", err))
		return
	}
	response.OK(c, stats)
}

// clear wipes every cached query. Destructive, so it asks for an explicit
// confirm=true query flag before acting.
func (h *Handler) clear(c *gin.Context) {
	if c.Query("confirm") != "true" {
		response.OK(c, gin.H{
			"message": "Are you sure? This will delete all cached queries.",
			"hint":    "Add ?confirm=true to the URL to confirm deletion",
		})
		return
	}

	deleted, err := h.store.Clear(c.Request.Context())
	if err != nil {
		response.InternalError(c, fmt.Errorf("clearing cache: %w", err))
		return
	}
	h.logger.Info("cache cleared", zap.Int64("deleted", deleted))
	response.OK(c, gin.H{
		"message":       "Cache cleared successfully",
		"deleted_count": deleted,
	})
}

func (h *Handler) deleteExpired(c *gin.Context) {
	deleted, err := h.store.PurgeExpired(c.Request.Context())
	if err != nil {
		response.InternalError(c, fmt.Errorf("deleting expired cache: %w", err))
		return
	}
	h.logger.Info("expired cache entries deleted", zap.Int64("deleted", deleted))
	response.OK(c, gin.H{
		"message":       "Expired cache entries deleted successfully",
		"deleted_count": deleted,
	})
}
