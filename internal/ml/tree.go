package ml

import (
	"fmt"
	"math/rand"
	"sort"
)

// TreeNode is one node of a fitted CART tree, stored flat so the whole tree
// serializes as a plain array. Feature == -1 marks a leaf; Value is the
// positive-class fraction of the training rows that reached it.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// DecisionTree is a CART classifier splitting on Gini impurity. Growth is
// unbounded: nodes split until pure, too small, or no split improves
// impurity. Ties between equally good splits resolve to the first candidate
// scanned, so fitting is deterministic for a given feature order.
type DecisionTree struct {
	Nodes           []TreeNode `json:"nodes"`
	MinSamplesSplit int        `json:"min_samples_split"`
	MaxFeatures     int        `json:"max_features"`

	// rng drives per-split feature subsampling when MaxFeatures > 0.
	// Only the random forest sets it; a standalone tree scans every feature.
	rng *rand.Rand
}

func NewDecisionTree() *DecisionTree {
	return &DecisionTree{MinSamplesSplit: 2}
}

func (m *DecisionTree) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("tree: got %d samples and %d labels", len(X), len(y))
	}
	indices := make([]int, len(X))
	for i := range indices {
		indices[i] = i
	}
	m.Nodes = m.Nodes[:0]
	m.build(X, y, indices)
	return nil
}

func (m *DecisionTree) PredictProbability(x []float64) float64 {
	i := 0
	for {
		node := m.Nodes[i]
		if node.Feature < 0 {
			return node.Value
		}
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

func (m *DecisionTree) kind() string { return "dt" }

// build grows the subtree for the given sample indices and returns its root
// node index.
func (m *DecisionTree) build(X [][]float64, y []int, indices []int) int {
	positives := 0
	for _, i := range indices {
		if y[i] == 1 {
			positives++
		}
	}
	n := len(indices)
	value := float64(positives) / float64(n)

	nodeIndex := len(m.Nodes)
	if positives == 0 || positives == n || n < m.MinSamplesSplit {
		m.Nodes = append(m.Nodes, TreeNode{Feature: -1, Value: value})
		return nodeIndex
	}

	feature, threshold, ok := m.bestSplit(X, y, indices)
	if !ok {
		m.Nodes = append(m.Nodes, TreeNode{Feature: -1, Value: value})
		return nodeIndex
	}

	var left, right []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Reserve this node before recursing so children land after it.
	m.Nodes = append(m.Nodes, TreeNode{Feature: feature, Threshold: threshold, Value: value})
	leftIndex := m.build(X, y, left)
	rightIndex := m.build(X, y, right)
	m.Nodes[nodeIndex].Left = leftIndex
	m.Nodes[nodeIndex].Right = rightIndex
	return nodeIndex
}

func (m *DecisionTree) bestSplit(X [][]float64, y []int, indices []int) (int, float64, bool) {
	n := len(indices)
	totalPos := 0
	for _, i := range indices {
		if y[i] == 1 {
			totalPos++
		}
	}

	bestImpurity := gini(totalPos, n)
	bestFeature, bestThreshold := -1, 0.0
	found := false

	type sample struct {
		value float64
		label int
	}
	samples := make([]sample, n)

	for _, f := range m.candidateFeatures(len(X[0])) {
		for k, i := range indices {
			samples[k] = sample{value: X[i][f], label: y[i]}
		}
		sort.Slice(samples, func(a, b int) bool { return samples[a].value < samples[b].value })

		leftPos, leftN := 0, 0
		for k := 0; k < n-1; k++ {
			if samples[k].label == 1 {
				leftPos++
			}
			leftN++
			if samples[k].value == samples[k+1].value {
				continue
			}
			rightN := n - leftN
			rightPos := totalPos - leftPos
			impurity := (float64(leftN)*gini(leftPos, leftN) + float64(rightN)*gini(rightPos, rightN)) / float64(n)
			if impurity < bestImpurity-1e-12 {
				bestImpurity = impurity
				bestFeature = f
				bestThreshold = (samples[k].value + samples[k+1].value) / 2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func (m *DecisionTree) candidateFeatures(p int) []int {
	if m.MaxFeatures <= 0 || m.MaxFeatures >= p || m.rng == nil {
		all := make([]int, p)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return m.rng.Perm(p)[:m.MaxFeatures]
}

func gini(positives, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(positives) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}
