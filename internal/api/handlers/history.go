package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pocketrush/backend/internal/stats"
	"github.com/pocketrush/backend/internal/store"
)

// RecentShots lists the latest persisted shots. Degrades to 503 when no
// database is configured.
func RecentShots(shots *store.ShotStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if shots == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shot history not configured"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		rows, err := shots.Recent(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shots": rows})
	}
}

// GetStats returns the live Redis counters. Degrades to 503 when no Redis
// is configured.
func GetStats(counters *stats.Stats) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counters == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stats not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		summary, err := counters.Summary(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
