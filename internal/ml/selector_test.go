package ml

import "testing"

func metricsWith(accuracy, precision, recall float64) Metrics {
	return Metrics{Accuracy: accuracy, Precision: precision, Recall: recall}
}

func TestSelectBestByAccuracy(t *testing.T) {
	got := SelectBest(map[string]Metrics{
		"lr":  metricsWith(0.70, 0.9, 0.9),
		"knn": metricsWith(0.75, 0.1, 0.1),
		"dt":  metricsWith(0.72, 0.9, 0.9),
		"rf":  metricsWith(0.74, 0.9, 0.9),
	})
	if got != "knn" {
		t.Fatalf("selected %q, want knn", got)
	}
}

func TestSelectBestPrecisionTieBreak(t *testing.T) {
	got := SelectBest(map[string]Metrics{
		"lr":  metricsWith(0.75, 0.60, 0.9),
		"knn": metricsWith(0.75, 0.80, 0.1),
		"dt":  metricsWith(0.70, 0.99, 0.99),
		"rf":  metricsWith(0.75, 0.70, 0.9),
	})
	if got != "knn" {
		t.Fatalf("selected %q, want knn (highest precision at tied accuracy)", got)
	}
}

func TestSelectBestRecallTieBreak(t *testing.T) {
	got := SelectBest(map[string]Metrics{
		"lr":  metricsWith(0.75, 0.80, 0.40),
		"knn": metricsWith(0.75, 0.80, 0.55),
		"dt":  metricsWith(0.75, 0.80, 0.50),
		"rf":  metricsWith(0.70, 0.99, 0.99),
	})
	if got != "knn" {
		t.Fatalf("selected %q, want knn (highest recall at tied accuracy+precision)", got)
	}
}

func TestSelectBestFullTieIsDeterministic(t *testing.T) {
	tied := map[string]Metrics{
		"lr":  metricsWith(0.75, 0.80, 0.50),
		"knn": metricsWith(0.75, 0.80, 0.50),
		"dt":  metricsWith(0.75, 0.80, 0.50),
		"rf":  metricsWith(0.75, 0.80, 0.50),
	}
	first := SelectBest(tied)
	if first != "lr" {
		t.Fatalf("selected %q, want lr (fixed priority order)", first)
	}
	for i := 0; i < 10; i++ {
		if got := SelectBest(tied); got != first {
			t.Fatalf("selection not deterministic: %q then %q", first, got)
		}
	}
}
