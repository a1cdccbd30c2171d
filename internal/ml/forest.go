package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// RandomForest is a bagged ensemble of CART trees. Each tree trains on a
// bootstrap sample and considers sqrt(p) features per split; the predicted
// probability is the mean of the per-tree leaf fractions. All randomness
// derives from Seed, so the fitted forest is reproducible.
type RandomForest struct {
	NumTrees    int            `json:"num_trees"`
	MaxFeatures int            `json:"max_features"`
	Seed        int64          `json:"seed"`
	Trees       []DecisionTree `json:"trees"`
}

func NewRandomForest(numTrees int, seed int64) *RandomForest {
	return &RandomForest{NumTrees: numTrees, Seed: seed}
}

func (m *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("forest: got %d samples and %d labels", len(X), len(y))
	}
	if m.NumTrees < 1 {
		return fmt.Errorf("forest: need at least one tree, got %d", m.NumTrees)
	}

	p := len(X[0])
	maxFeatures := m.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(p)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
		m.MaxFeatures = maxFeatures
	}

	rng := rand.New(rand.NewSource(m.Seed))
	n := len(X)
	m.Trees = make([]DecisionTree, m.NumTrees)

	for t := 0; t < m.NumTrees; t++ {
		bootX := make([][]float64, n)
		bootY := make([]int, n)
		for i := 0; i < n; i++ {
			k := rng.Intn(n)
			bootX[i] = X[k]
			bootY[i] = y[k]
		}

		tree := DecisionTree{
			MinSamplesSplit: 2,
			MaxFeatures:     maxFeatures,
			rng:             rand.New(rand.NewSource(rng.Int63())),
		}
		if err := tree.Fit(bootX, bootY); err != nil {
			return fmt.Errorf("forest: tree %d: %w", t, err)
		}
		tree.rng = nil
		m.Trees[t] = tree
	}
	return nil
}

func (m *RandomForest) PredictProbability(x []float64) float64 {
	sum := 0.0
	for i := range m.Trees {
		sum += m.Trees[i].PredictProbability(x)
	}
	return sum / float64(len(m.Trees))
}

func (m *RandomForest) kind() string { return "rf" }
