package main

import (
	"fmt"
	"os"

	"github.com/yungbote/diabetect-backend/internal/cache"
	"github.com/yungbote/diabetect-backend/internal/config"
	"github.com/yungbote/diabetect-backend/internal/db"
	"github.com/yungbote/diabetect-backend/internal/handlers"
	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/repos"
	"github.com/yungbote/diabetect-backend/internal/server"
	"github.com/yungbote/diabetect-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := config.Load(log)

	// Postgres (optional: prediction log + stats)
	var logRepo repos.PredictionLogRepo
	if cfg.Postgres.Enabled {
		postgresService, err := db.NewPostgresService(cfg.Postgres, log)
		if err != nil {
			log.Warn("Postgres init failed, stats endpoint disabled", "error", err)
		} else if err := postgresService.AutoMigrateAll(); err != nil {
			log.Warn("Postgres auto migration failed, stats endpoint disabled", "error", err)
		} else {
			logRepo = repos.NewPredictionLogRepo(postgresService.DB(), log)
		}
	}

	// Redis (optional: response cache)
	log.Info("Setting up response cache from main...")
	rdb := cache.NewClient(cfg.Redis, log)
	predictionCache := cache.New(rdb, log, cfg.PredictionTTL, cfg.MetricsTTL)

	// Services
	log.Info("Setting up Services from main...")
	predictionService, err := services.NewPredictionService(cfg.ModelDir, predictionCache, logRepo, log)
	if err != nil {
		// Keep serving: /health reports the degraded state, /predict 503s.
		log.Warn("Model artifacts unavailable, serving degraded", "model_dir", cfg.ModelDir, "error", err)
	}
	statsService := services.NewStatsService(logRepo, log)

	// Handlers
	log.Info("Setting up handlers from main...")
	healthHandler := handlers.NewHealthHandler(predictionService)
	metricsHandler := handlers.NewMetricsHandler(predictionService)
	predictHandler := handlers.NewPredictHandler(predictionService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		HealthHandler:  healthHandler,
		MetricsHandler: metricsHandler,
		PredictHandler: predictHandler,
		StatsHandler:   statsHandler,
	})

	fmt.Printf("Server listening on :%s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
