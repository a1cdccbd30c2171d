package ml

import (
	"math"
	"testing"
)

func TestMetricsFromConfusion(t *testing.T) {
	m := metricsFromConfusion(ConfusionMatrix{TN: 80, FP: 20, FN: 10, TP: 40})

	if got, want := m.Accuracy, 120.0/150.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("accuracy=%v, want %v", got, want)
	}
	if got, want := m.Precision, 40.0/60.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("precision=%v, want %v", got, want)
	}
	if got, want := m.Recall, 40.0/50.0; math.Abs(got-want) > 1e-12 {
		t.Fatalf("recall=%v, want %v", got, want)
	}
	wantF1 := 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	if math.Abs(m.F1-wantF1) > 1e-12 {
		t.Fatalf("f1=%v, want %v", m.F1, wantF1)
	}
}

func TestMetricsZeroDivision(t *testing.T) {
	// No positive predictions and no positive labels: every ratio that
	// would divide by zero reports 0 instead of NaN.
	m := metricsFromConfusion(ConfusionMatrix{TN: 10})
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Fatalf("expected zeroed metrics, got %+v", m)
	}
	if m.Accuracy != 1 {
		t.Fatalf("accuracy=%v, want 1", m.Accuracy)
	}
}
