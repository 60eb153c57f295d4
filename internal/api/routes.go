package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pocketrush/backend/internal/api/handlers"
	"github.com/pocketrush/backend/internal/config"
	"github.com/pocketrush/backend/internal/game"
	"github.com/pocketrush/backend/internal/stats"
	"github.com/pocketrush/backend/internal/store"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, session *game.Session, shots *store.ShotStore, counters *stats.Stats, cfg *config.Config) {
	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		v1.GET("/state", handlers.GetState(session))
		v1.POST("/shot", handlers.TakeShot(session))
		v1.POST("/aim", handlers.Aim(session))
		v1.POST("/cue-ball", handlers.PlaceCueBall(session))

		obstacles := v1.Group("/obstacles")
		{
			obstacles.GET("", handlers.GetObstacles(session))
			obstacles.POST("/toggle", handlers.ToggleObstacles(session))
		}

		v1.GET("/shots", handlers.RecentShots(shots))
		v1.GET("/stats", handlers.GetStats(counters))
	}
}
