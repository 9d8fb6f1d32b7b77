// Package health exposes the service health check, including dataset load
// state and a cache snapshot.
package health

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/project-samarth/core/internal/modules/cache"
	"github.com/project-samarth/core/internal/modules/engine"
	"github.com/project-samarth/core/internal/pkg/response"
)

type status struct {
	Status          string             `json:"status"`
	DataLoaded      bool               `json:"data_loaded"`
	LastUpdated     *time.Time         `json:"last_updated"`
	CropRecords     int                `json:"crop_records"`
	RainfallRecords int                `json:"rainfall_records"`
	CacheConnected  bool               `json:"cache_connected"`
	CacheStats      *cache.SimpleStats `json:"cache_stats"`
}

// RegisterRoutes mounts the health check. The endpoint never fails: a cache
// backend outage shows up as cache_connected=false, not as an error.
func RegisterRoutes(rg *gin.RouterGroup, eng *engine.Engine, store cache.Store, loadedAt time.Time, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rg.GET("/health", func(c *gin.Context) {
		st := status{
			Status:          "healthy",
			DataLoaded:      eng.CropRecordCount() > 0,
			CropRecords:     eng.CropRecordCount(),
			RainfallRecords: eng.RainfallRecordCount(),
		}
		if !loadedAt.IsZero() {
			st.LastUpdated = &loadedAt
		}

		ctx := c.Request.Context()
		if err := store.Ping(ctx); err == nil {
			st.CacheConnected = true
			stats, err := store.SimpleStats(ctx)
			if err != nil {
				logger.Warn("cache stats for health check failed", zap.Error(err))
			} else {
				st.CacheStats = stats
			}
		}

		response.OK(c, st)
	})
}
