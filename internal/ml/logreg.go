package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a binary linear classifier trained with full-batch
// gradient descent on standardized inputs. The iteration cap is high enough
// to converge on datasets of this size; training also stops early once the
// loss stops moving.
type LogisticRegression struct {
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	LearningRate float64   `json:"learning_rate"`
	MaxIter      int       `json:"max_iter"`
	L2           float64   `json:"l2"`
	Tol          float64   `json:"tol"`
}

func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		MaxIter:      2000,
		L2:           1e-3,
		Tol:          1e-8,
	}
}

func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("logreg: got %d samples and %d labels", len(X), len(y))
	}
	n := len(X)
	p := len(X[0])
	m.Weights = make([]float64, p)
	m.Bias = 0

	grad := make([]float64, p)
	prevLoss := math.Inf(1)
	for iter := 0; iter < m.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0
		loss := 0.0

		for i, row := range X {
			prob := sigmoid(floats.Dot(m.Weights, row) + m.Bias)
			diff := prob - float64(y[i])
			for j, v := range row {
				grad[j] += diff * v
			}
			gradBias += diff

			// Cross-entropy, clamped away from log(0).
			p := math.Min(math.Max(prob, 1e-12), 1-1e-12)
			if y[i] == 1 {
				loss -= math.Log(p)
			} else {
				loss -= math.Log(1 - p)
			}
		}

		inv := 1.0 / float64(n)
		for j := range grad {
			grad[j] = grad[j]*inv + m.L2*m.Weights[j]
			m.Weights[j] -= m.LearningRate * grad[j]
		}
		m.Bias -= m.LearningRate * gradBias * inv
		loss *= inv

		if math.Abs(prevLoss-loss) < m.Tol {
			break
		}
		prevLoss = loss
	}
	return nil
}

func (m *LogisticRegression) PredictProbability(x []float64) float64 {
	return sigmoid(floats.Dot(m.Weights, x) + m.Bias)
}

func (m *LogisticRegression) kind() string { return "logreg" }

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
