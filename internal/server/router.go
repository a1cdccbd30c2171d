package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/diabetect-backend/internal/handlers"
)

type RouterConfig struct {
	AllowedOrigins []string
	HealthHandler  *handlers.HealthHandler
	MetricsHandler *handlers.MetricsHandler
	PredictHandler *handlers.PredictHandler
	StatsHandler   *handlers.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", handlers.Root)
	router.GET("/health", cfg.HealthHandler.Health)
	router.GET("/metrics", cfg.MetricsHandler.Metrics)
	router.POST("/predict", cfg.PredictHandler.Predict)

	api := router.Group("/api")
	{
		api.GET("/stats", cfg.StatsHandler.Stats)
	}

	return router
}
