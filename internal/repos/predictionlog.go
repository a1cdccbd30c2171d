package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/types"
)

// PredictionStats are the aggregates served by /api/stats.
type PredictionStats struct {
	TotalPredictions   int64   `json:"total_predictions"`
	AverageProbability float64 `json:"average_probability"`
	PositiveCount      int64   `json:"positive_count"`
}

type PredictionLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.PredictionLog) (*types.PredictionLog, error)
	Stats(ctx context.Context, tx *gorm.DB) (*PredictionStats, error)
}

type predictionLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPredictionLogRepo(db *gorm.DB, baseLog *logger.Logger) PredictionLogRepo {
	return &predictionLogRepo{db: db, log: baseLog.With("repo", "PredictionLogRepo")}
}

func (r *predictionLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.PredictionLog) (*types.PredictionLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *predictionLogRepo) Stats(ctx context.Context, tx *gorm.DB) (*PredictionStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var stats PredictionStats
	if err := transaction.WithContext(ctx).
		Model(&types.PredictionLog{}).
		Count(&stats.TotalPredictions).Error; err != nil {
		return nil, err
	}
	if stats.TotalPredictions == 0 {
		return &stats, nil
	}

	var avg *float64
	if err := transaction.WithContext(ctx).
		Model(&types.PredictionLog{}).
		Select("AVG(probability)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageProbability = *avg
	}

	if err := transaction.WithContext(ctx).
		Model(&types.PredictionLog{}).
		Where("label = ?", "Positive").
		Count(&stats.PositiveCount).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
