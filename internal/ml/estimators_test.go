package ml

import (
	"math"
	"testing"
)

// separable2D is a small linearly separable set: negatives cluster near the
// origin, positives near (4,4).
func separable2D() ([][]float64, []int) {
	X := [][]float64{
		{0.0, 0.1}, {0.2, 0.0}, {0.1, 0.3}, {0.3, 0.2}, {0.0, 0.4},
		{3.8, 4.1}, {4.2, 3.9}, {4.0, 4.3}, {3.9, 3.7}, {4.1, 4.0},
	}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return X, y
}

func TestLogisticRegressionSeparable(t *testing.T) {
	X, y := separable2D()
	m := NewLogisticRegression()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}

	pos := m.PredictProbability([]float64{4.0, 4.0})
	neg := m.PredictProbability([]float64{0.1, 0.1})
	if pos <= 0.5 || neg >= 0.5 {
		t.Fatalf("separable data not separated: pos=%v neg=%v", pos, neg)
	}
	for _, p := range []float64{pos, neg} {
		if p < 0 || p > 1 || math.IsNaN(p) {
			t.Fatalf("probability out of range: %v", p)
		}
	}
}

func TestKNNVoteFraction(t *testing.T) {
	X := [][]float64{{0}, {0.1}, {5}, {5.1}}
	y := []int{0, 0, 1, 1}
	m := NewKNN(3)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}

	// Nearest three to 0: the two negatives and one positive.
	got := m.PredictProbability([]float64{0})
	if want := 1.0 / 3.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("prob=%v, want %v", got, want)
	}
}

func TestKNNCapsAtTrainingSize(t *testing.T) {
	m := NewKNN(11)
	if err := m.Fit([][]float64{{0}, {1}}, []int{0, 1}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if got := m.PredictProbability([]float64{0.4}); got != 0.5 {
		t.Fatalf("prob=%v, want 0.5 (vote over both rows)", got)
	}
}

func TestDecisionTreeSeparable(t *testing.T) {
	X, y := separable2D()
	m := NewDecisionTree()
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}

	// A separable set grows pure leaves.
	for i, row := range X {
		got := m.PredictProbability(row)
		if got != float64(y[i]) {
			t.Fatalf("row %d: prob=%v, want %v", i, got, float64(y[i]))
		}
	}
}

func TestDecisionTreePureNodeIsLeaf(t *testing.T) {
	m := NewDecisionTree()
	if err := m.Fit([][]float64{{1}, {2}, {3}}, []int{1, 1, 1}); err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(m.Nodes) != 1 || m.Nodes[0].Feature != -1 {
		t.Fatalf("pure training set should produce a single leaf, got %+v", m.Nodes)
	}
	if m.Nodes[0].Value != 1 {
		t.Fatalf("leaf value=%v, want 1", m.Nodes[0].Value)
	}
}

func TestRandomForestSeparableAndDeterministic(t *testing.T) {
	X, y := separable2D()

	a := NewRandomForest(25, 42)
	if err := a.Fit(X, y); err != nil {
		t.Fatalf("fit: %v", err)
	}
	pos := a.PredictProbability([]float64{4.0, 4.0})
	neg := a.PredictProbability([]float64{0.1, 0.1})
	if pos <= 0.5 || neg >= 0.5 {
		t.Fatalf("separable data not separated: pos=%v neg=%v", pos, neg)
	}
	if pos < 0 || pos > 1 || neg < 0 || neg > 1 {
		t.Fatalf("probability out of range: pos=%v neg=%v", pos, neg)
	}

	b := NewRandomForest(25, 42)
	if err := b.Fit(X, y); err != nil {
		t.Fatalf("refit: %v", err)
	}
	probes := [][]float64{{0, 0}, {2, 2}, {4, 4}, {1.5, 3.0}}
	for _, probe := range probes {
		if a.PredictProbability(probe) != b.PredictProbability(probe) {
			t.Fatalf("same seed produced different forests at %v", probe)
		}
	}
}
