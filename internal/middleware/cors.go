package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pocketrush/backend/internal/config"
)

// CORSMiddleware returns a CORS policy configured for the environment.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Accept",
			"Cache-Control", "X-Requested-With",
		},
		MaxAge: 12 * time.Hour,
	}

	if cfg.Environment == "development" {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	} else {
		allowed := []string{}
		if cfg.FrontendURL != "" {
			allowed = append(allowed, cfg.FrontendURL)
		}
		corsConfig.AllowOrigins = allowed
	}
	corsConfig.AllowCredentials = true

	return cors.New(corsConfig)
}
