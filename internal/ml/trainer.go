package ml

import (
	"fmt"

	"github.com/yungbote/diabetect-backend/internal/dataset"
	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/types"
)

const (
	defaultTestFraction = 0.2
	knnNeighbors        = 11
	forestTrees         = 200
)

// Trainer runs the offline batch pipeline: stratified split, four pipeline
// fits, held-out evaluation, best-model selection. It is single-shot, not
// incremental; the same records and seed always reproduce the same result.
type Trainer struct {
	log          *logger.Logger
	Seed         int64
	TestFraction float64
}

func NewTrainer(log *logger.Logger, seed int64) *Trainer {
	return &Trainer{
		log:          log.With("service", "Trainer"),
		Seed:         seed,
		TestFraction: defaultTestFraction,
	}
}

// TrainResult bundles everything the selector persists.
type TrainResult struct {
	Pipelines map[string]*Pipeline
	Registry  *Registry
}

func (t *Trainer) Train(records []types.HealthRecord) (*TrainResult, error) {
	split, err := dataset.StratifiedSplit(records, t.TestFraction, t.Seed)
	if err != nil {
		return nil, fmt.Errorf("split dataset: %w", err)
	}
	t.log.Info("Dataset split",
		"train_rows", len(split.XTrain),
		"test_rows", len(split.XTest),
	)

	mask := ZeroAsMissingMask(dataset.FeatureColumns)
	pipelines := map[string]*Pipeline{
		"lr":  NewPipeline(NewMedianImputer(mask), NewStandardScaler(), NewLogisticRegression()),
		"knn": NewPipeline(NewMedianImputer(mask), NewStandardScaler(), NewKNN(knnNeighbors)),
		"dt":  NewPipeline(NewMedianImputer(mask), nil, NewDecisionTree()),
		"rf":  NewPipeline(NewMedianImputer(mask), nil, NewRandomForest(forestTrees, t.Seed)),
	}

	modelMetrics := make(map[string]Metrics, len(pipelines))
	for _, key := range ModelKeys {
		p := pipelines[key]
		t.log.Info("Training model", "model", DisplayNames[key])
		if err := p.Fit(split.XTrain, split.YTrain); err != nil {
			return nil, fmt.Errorf("fit %s: %w", key, err)
		}
		m, err := Evaluate(p, split.XTest, split.YTest)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", key, err)
		}
		modelMetrics[key] = m
		t.log.Info("Model evaluated",
			"model", DisplayNames[key],
			"accuracy", m.Accuracy,
			"precision", m.Precision,
			"recall", m.Recall,
			"f1", m.F1,
		)
	}

	best := SelectBest(modelMetrics)
	t.log.Info("Best model selected", "model", DisplayNames[best], "accuracy", modelMetrics[best].Accuracy)

	reg := &Registry{
		FeatureOrder:  append([]string(nil), dataset.FeatureColumns...),
		BestModelName: best,
		ModelNames:    DisplayNames,
		Models:        modelMetrics,
	}
	return &TrainResult{Pipelines: pipelines, Registry: reg}, nil
}
