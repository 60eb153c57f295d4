package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pocketrush/backend/internal/api"
	"github.com/pocketrush/backend/internal/config"
	"github.com/pocketrush/backend/internal/database"
	"github.com/pocketrush/backend/internal/game"
	"github.com/pocketrush/backend/internal/middleware"
	"github.com/pocketrush/backend/internal/stats"
	"github.com/pocketrush/backend/internal/store"
	"github.com/pocketrush/backend/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Shot history is optional: without DATABASE_URL the server keeps
	// everything in memory.
	var shots *store.ShotStore
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		shots, err = store.New(db)
		if err != nil {
			log.Fatalf("Failed to bootstrap shot store: %v", err)
		}
		log.Println("[DB] shot history enabled")
	} else {
		log.Println("[DB] DATABASE_URL not set - shot history disabled")
	}

	// Live counters are optional the same way.
	var counters *stats.Stats
	if cfg.RedisURL != "" {
		rdb, err := stats.Connect(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		counters = stats.New(rdb)
		log.Println("[STATS] live counters enabled")
	} else {
		log.Println("[STATS] REDIS_URL not set - live counters disabled")
	}

	session := game.NewSession(nil)
	if !cfg.ObstaclesEnabled {
		session.ToggleObstacles()
	}

	session.OnShotDone(func(rec game.ShotRecord) {
		log.Printf("[GAME] shot settled: power=%.1f potted=%d ticks=%d",
			rec.Power, rec.Potted, rec.DurationTicks)
		if shots != nil {
			if err := shots.Record(rec); err != nil {
				log.Printf("[DB] record shot: %v", err)
			}
		}
		if counters != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			counters.ShotFinished(ctx, rec.Potted, rec.PredictedBounces)
			counters.ObstaclesSpawned(ctx, session.ObstaclesSpawned())
		}
	})

	hub := ws.NewHub(session)
	go hub.Run()

	// The tick loop drives the whole simulation and broadcasts frames.
	go func() {
		interval := time.Second / time.Duration(cfg.TickRate)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			session.Tick()
			if hub.ClientCount() > 0 {
				hub.BroadcastFrame(session.Snapshot())
			}
		}
	}()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(router, session, shots, counters, cfg)
	router.GET("/ws", ws.HandleWebSocket(hub))

	log.Printf("Starting PocketRush server on port %s (tick rate %d)", cfg.Port, cfg.TickRate)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
