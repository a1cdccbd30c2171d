package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/yungbote/diabetect-backend/internal/cache"
	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/ml"
	"github.com/yungbote/diabetect-backend/internal/repos"
	"github.com/yungbote/diabetect-backend/internal/types"
)

var (
	// ErrNoFeatures rejects a request where every field is absent; there is
	// no signal to predict from.
	ErrNoFeatures = errors.New("prediction request has no fields set")
	// ErrNotLoaded reports that model artifacts were not available at
	// startup; the service is up but cannot predict.
	ErrNotLoaded = errors.New("model artifacts not loaded")
)

const (
	labelPositive = "Positive"
	labelNegative = "Negative"
)

type PredictionService interface {
	Predict(ctx context.Context, req types.PredictionRequest) (*types.PredictionResult, error)
	Loaded() bool
	BestModelName() string
	MetricsDocument(ctx context.Context) ([]byte, error)
}

// predictionService owns an immutable reference to the loaded registry and
// the selected pipeline, constructed once at startup and shared read-only
// across requests. No hidden globals.
type predictionService struct {
	log      *logger.Logger
	registry *ml.Registry
	pipeline *ml.Pipeline
	cache    *cache.PredictionCache
	logRepo  repos.PredictionLogRepo
}

// NewPredictionService loads the registry and the selected pipeline from
// modelDir. On load failure it returns a non-nil, unloaded service along
// with the error, so the caller can keep serving health checks that report
// the degraded state.
func NewPredictionService(modelDir string, c *cache.PredictionCache, logRepo repos.PredictionLogRepo, baseLog *logger.Logger) (PredictionService, error) {
	log := baseLog.With("service", "PredictionService")
	svc := &predictionService{log: log, cache: c, logRepo: logRepo}

	reg, err := ml.LoadRegistry(modelDir)
	if err != nil {
		return svc, fmt.Errorf("load registry: %w", err)
	}
	pipeline, err := ml.LoadPipeline(modelDir, ml.BestModelFile)
	if err != nil {
		return svc, fmt.Errorf("load best pipeline: %w", err)
	}

	svc.registry = reg
	svc.pipeline = pipeline
	log.Info("Model artifacts loaded",
		"best_model", reg.ModelNames[reg.BestModelName],
		"feature_count", len(reg.FeatureOrder),
	)
	return svc, nil
}

func (s *predictionService) Loaded() bool {
	return s.registry != nil && s.pipeline != nil
}

func (s *predictionService) BestModelName() string {
	if s.registry == nil {
		return ""
	}
	return s.registry.ModelNames[s.registry.BestModelName]
}

func (s *predictionService) Predict(ctx context.Context, req types.PredictionRequest) (*types.PredictionResult, error) {
	if !s.Loaded() {
		return nil, ErrNotLoaded
	}
	if req.Empty() {
		return nil, ErrNoFeatures
	}

	// The key deliberately covers only these four inputs: requests that
	// differ in any other feature share a cache entry.
	key := cache.PredictionKey(req.Glucose, req.Insulin, req.BMI, req.Age)
	if cached, ok := s.cache.GetPrediction(ctx, key); ok {
		cached.Cached = true
		s.appendLog(ctx, req, cached)
		return cached, nil
	}

	fields := req.FieldsByName()
	vector := make([]float64, len(s.registry.FeatureOrder))
	for i, name := range s.registry.FeatureOrder {
		if v := fields[name]; v != nil {
			vector[i] = *v
		} else {
			vector[i] = math.NaN()
		}
	}

	prob, err := s.pipeline.PredictProbability(vector)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	label := labelNegative
	if prob >= 0.5 {
		label = labelPositive
	}

	res := &types.PredictionResult{
		BestModel:   s.BestModelName(),
		Probability: prob,
		Label:       label,
		Cached:      false,
	}
	s.cache.SetPrediction(ctx, key, res)
	s.appendLog(ctx, req, res)
	return res, nil
}

// MetricsDocument returns the registry as JSON, served from the cache when
// a fresh copy exists.
func (s *predictionService) MetricsDocument(ctx context.Context) ([]byte, error) {
	if s.registry == nil {
		return nil, ErrNotLoaded
	}
	if body, ok := s.cache.GetMetrics(ctx); ok {
		return body, nil
	}
	body, err := json.Marshal(s.registry)
	if err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	s.cache.SetMetrics(ctx, body)
	return body, nil
}

// appendLog records the served prediction for the stats endpoint. Failures
// are logged and swallowed; a broken log store never fails a prediction.
func (s *predictionService) appendLog(ctx context.Context, req types.PredictionRequest, res *types.PredictionResult) {
	if s.logRepo == nil {
		return
	}
	entry := &types.PredictionLog{
		Glucose:     req.Glucose,
		Insulin:     req.Insulin,
		BMI:         req.BMI,
		Age:         req.Age,
		Probability: res.Probability,
		Label:       res.Label,
		ModelKey:    s.registry.BestModelName,
		Cached:      res.Cached,
	}
	if _, err := s.logRepo.Create(ctx, nil, entry); err != nil {
		s.log.Warn("Failed to append prediction log", "error", err)
	}
}
