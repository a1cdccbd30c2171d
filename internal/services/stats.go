package services

import (
	"context"
	"errors"

	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/repos"
)

// ErrStatsUnavailable reports that no prediction log store is configured.
var ErrStatsUnavailable = errors.New("prediction statistics unavailable")

type StatsService interface {
	Stats(ctx context.Context) (*repos.PredictionStats, error)
}

type statsService struct {
	log     *logger.Logger
	logRepo repos.PredictionLogRepo
}

// NewStatsService serves aggregates over the prediction log. logRepo may be
// nil when no database is configured; Stats then reports unavailable while
// the predict path stays unaffected.
func NewStatsService(logRepo repos.PredictionLogRepo, baseLog *logger.Logger) StatsService {
	return &statsService{
		log:     baseLog.With("service", "StatsService"),
		logRepo: logRepo,
	}
}

func (s *statsService) Stats(ctx context.Context) (*repos.PredictionStats, error) {
	if s.logRepo == nil {
		return nil, ErrStatsUnavailable
	}
	return s.logRepo.Stats(ctx, nil)
}
