package ml

import (
	"fmt"
	"sort"
)

// KNN is a k-nearest-neighbors classifier with a uniform vote. Fitting just
// memorizes the (already preprocessed) training matrix; the probability is
// the fraction of positive labels among the k nearest rows by Euclidean
// distance. Distance ties break by training-row order, so predictions are
// deterministic.
type KNN struct {
	K int         `json:"k"`
	X [][]float64 `json:"x"`
	Y []int       `json:"y"`
}

func NewKNN(k int) *KNN {
	return &KNN{K: k}
}

func (m *KNN) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("knn: got %d samples and %d labels", len(X), len(y))
	}
	if m.K < 1 {
		return fmt.Errorf("knn: k must be >= 1, got %d", m.K)
	}
	m.X = X
	m.Y = y
	return nil
}

func (m *KNN) PredictProbability(x []float64) float64 {
	type neighbor struct {
		dist  float64
		index int
	}
	neighbors := make([]neighbor, len(m.X))
	for i, row := range m.X {
		d := 0.0
		for j, v := range row {
			diff := v - x[j]
			d += diff * diff
		}
		neighbors[i] = neighbor{dist: d, index: i}
	}
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].dist != neighbors[b].dist {
			return neighbors[a].dist < neighbors[b].dist
		}
		return neighbors[a].index < neighbors[b].index
	})

	k := m.K
	if k > len(neighbors) {
		k = len(neighbors)
	}
	positives := 0
	for _, nb := range neighbors[:k] {
		if m.Y[nb.index] == 1 {
			positives++
		}
	}
	return float64(positives) / float64(k)
}

func (m *KNN) kind() string { return "knn" }
