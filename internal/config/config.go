package config

import (
	"strings"
	"time"

	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/utils"
)

type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Port           string
	ModelDir       string
	AllowedOrigins []string
	Postgres       PostgresConfig
	Redis          RedisConfig
	PredictionTTL  time.Duration
	MetricsTTL     time.Duration
}

func Load(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	modelDir := utils.GetEnv("MODEL_DIR", "model", log)

	// Frontend discovers its backend URL at runtime; the backend mirrors that
	// by taking the allowed origin from the environment, with local dev defaults.
	frontendURL := utils.GetEnv("FRONTEND_URL", "", log)
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:5500",
	}
	if frontendURL != "" && !contains(origins, frontendURL) {
		origins = append([]string{frontendURL}, origins...)
	}

	predictionTTLSeconds := utils.GetEnvAsInt("PREDICTION_CACHE_TTL", 86400, log)
	metricsTTLSeconds := utils.GetEnvAsInt("METRICS_CACHE_TTL", 3600, log)

	return Config{
		Port:           port,
		ModelDir:       modelDir,
		AllowedOrigins: origins,
		Postgres: PostgresConfig{
			Enabled:  strings.EqualFold(utils.GetEnv("POSTGRES_ENABLED", "false", log), "true"),
			Host:     utils.GetEnv("POSTGRES_HOST", "localhost", log),
			Port:     utils.GetEnv("POSTGRES_PORT", "5432", log),
			User:     utils.GetEnv("POSTGRES_USER", "postgres", log),
			Password: utils.GetEnv("POSTGRES_PASSWORD", "", log),
			Name:     utils.GetEnv("POSTGRES_NAME", "diabetect", log),
		},
		Redis: RedisConfig{
			Addr:     utils.GetEnv("REDIS_ADDR", "", log),
			Password: utils.GetEnv("REDIS_PASSWORD", "", log),
			DB:       utils.GetEnvAsInt("REDIS_DB", 0, log),
		},
		PredictionTTL: time.Duration(predictionTTLSeconds) * time.Second,
		MetricsTTL:    time.Duration(metricsTTLSeconds) * time.Second,
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
