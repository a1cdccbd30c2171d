package ml

import (
	"encoding/json"
	"fmt"
)

// Estimator is the single capability every classifier variant implements:
// fit on a preprocessed matrix, then map one preprocessed feature vector to
// a positive-class probability.
type Estimator interface {
	Fit(X [][]float64, y []int) error
	PredictProbability(x []float64) float64
	kind() string
}

// Pipeline is the ordered composition of preprocessing and a trained
// estimator, treated as one unit for fitting, persistence and inference.
// The scaler is nil for scale-invariant estimators (trees).
type Pipeline struct {
	Imputer   *MedianImputer
	Scaler    *StandardScaler
	Estimator Estimator
}

func NewPipeline(imputer *MedianImputer, scaler *StandardScaler, estimator Estimator) *Pipeline {
	return &Pipeline{Imputer: imputer, Scaler: scaler, Estimator: estimator}
}

// Fit fits each stage in order on the training matrix. Preprocessing state
// is learned here once and reused unchanged at inference.
func (p *Pipeline) Fit(X [][]float64, y []int) error {
	if err := p.Imputer.Fit(X); err != nil {
		return err
	}
	Xt := p.Imputer.Transform(X)
	if p.Scaler != nil {
		if err := p.Scaler.Fit(Xt); err != nil {
			return err
		}
		Xt = p.Scaler.Transform(Xt)
	}
	return p.Estimator.Fit(Xt, y)
}

// PredictProbability runs one raw feature vector (NaN for missing values)
// through the fitted stages. Pure function of the input and fitted state.
func (p *Pipeline) PredictProbability(x []float64) (float64, error) {
	if len(x) != len(p.Imputer.ZeroAsMissing) {
		return 0, fmt.Errorf("pipeline: expected %d features, got %d", len(p.Imputer.ZeroAsMissing), len(x))
	}
	xt := p.Imputer.TransformRow(x)
	if p.Scaler != nil {
		xt = p.Scaler.TransformRow(xt)
	}
	return p.Estimator.PredictProbability(xt), nil
}

type pipelineJSON struct {
	Imputer   *MedianImputer  `json:"imputer"`
	Scaler    *StandardScaler `json:"scaler,omitempty"`
	Estimator estimatorJSON   `json:"estimator"`
}

type estimatorJSON struct {
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params"`
}

func (p *Pipeline) MarshalJSON() ([]byte, error) {
	params, err := json.Marshal(p.Estimator)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pipelineJSON{
		Imputer: p.Imputer,
		Scaler:  p.Scaler,
		Estimator: estimatorJSON{
			Kind:   p.Estimator.kind(),
			Params: params,
		},
	})
}

func (p *Pipeline) UnmarshalJSON(data []byte) error {
	var raw pipelineJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var est Estimator
	switch raw.Estimator.Kind {
	case "logreg":
		est = &LogisticRegression{}
	case "knn":
		est = &KNN{}
	case "dt":
		est = &DecisionTree{}
	case "rf":
		est = &RandomForest{}
	default:
		return fmt.Errorf("pipeline: unknown estimator kind %q", raw.Estimator.Kind)
	}
	if err := json.Unmarshal(raw.Estimator.Params, est); err != nil {
		return fmt.Errorf("pipeline: decode %s params: %w", raw.Estimator.Kind, err)
	}

	p.Imputer = raw.Imputer
	p.Scaler = raw.Scaler
	p.Estimator = est
	return nil
}
