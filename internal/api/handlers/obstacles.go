package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketrush/backend/internal/game"
)

// GetObstacles reports the obstacle field state for UI display.
func GetObstacles(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := session.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"enabled":   snap.ObstaclesEnabled,
			"count":     len(snap.Obstacles),
			"obstacles": snap.Obstacles,
		})
	}
}

// ToggleObstacles flips the field on or off. Turning it off clears every
// live obstacle immediately.
func ToggleObstacles(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		enabled := session.ToggleObstacles()
		c.JSON(http.StatusOK, gin.H{"enabled": enabled})
	}
}
