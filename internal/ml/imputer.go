package ml

import (
	"fmt"
	"math"
	"sort"
)

// zeroAsMissingFeatures are the columns where a literal 0 is biologically
// impossible and therefore treated as a missing value.
var zeroAsMissingFeatures = map[string]bool{
	"Glucose":       true,
	"BloodPressure": true,
	"SkinThickness": true,
	"Insulin":       true,
	"BMI":           true,
}

// ZeroAsMissingMask returns, for each feature name, whether zeros in that
// column are treated as missing.
func ZeroAsMissingMask(features []string) []bool {
	mask := make([]bool, len(features))
	for i, name := range features {
		mask[i] = zeroAsMissingFeatures[name]
	}
	return mask
}

// MedianImputer replaces missing values with per-column medians computed on
// the training split. A value is missing when it is NaN, or exactly zero in
// a column flagged zero-as-missing. Medians are computed over the non-missing
// training values only and baked in at fit time, so the exact same
// substitution happens at inference.
type MedianImputer struct {
	Medians       []float64 `json:"medians"`
	ZeroAsMissing []bool    `json:"zero_as_missing"`
}

func NewMedianImputer(zeroAsMissing []bool) *MedianImputer {
	return &MedianImputer{ZeroAsMissing: zeroAsMissing}
}

func (m *MedianImputer) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("imputer: empty training matrix")
	}
	cols := len(X[0])
	if len(m.ZeroAsMissing) != cols {
		return fmt.Errorf("imputer: mask has %d columns, matrix has %d", len(m.ZeroAsMissing), cols)
	}

	m.Medians = make([]float64, cols)
	for j := 0; j < cols; j++ {
		var observed []float64
		for _, row := range X {
			if !m.missing(j, row[j]) {
				observed = append(observed, row[j])
			}
		}
		if len(observed) == 0 {
			// Whole column missing (e.g. all zeros in a flagged column):
			// the median degenerates to 0 and imputation is a no-op.
			m.Medians[j] = 0
			continue
		}
		sort.Float64s(observed)
		m.Medians[j] = median(observed)
	}
	return nil
}

// median of a sorted, non-empty slice: the middle element for odd length,
// the mean of the two middle elements for even length.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// TransformRow returns a copy of x with missing values replaced.
func (m *MedianImputer) TransformRow(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		if m.missing(j, v) {
			out[j] = m.Medians[j]
		} else {
			out[j] = v
		}
	}
	return out
}

func (m *MedianImputer) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = m.TransformRow(row)
	}
	return out
}

func (m *MedianImputer) missing(j int, v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return m.ZeroAsMissing[j] && v == 0
}
