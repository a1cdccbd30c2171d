package ml

// SelectBest picks exactly one model key from the evaluated candidates.
// Higher accuracy wins; exact ties fall through to positive-class precision,
// then recall. A full tie resolves to whichever key comes first in
// ModelKeys, so selection is always deterministic, never random.
func SelectBest(metrics map[string]Metrics) string {
	best := ""
	for _, key := range ModelKeys {
		m, ok := metrics[key]
		if !ok {
			continue
		}
		if best == "" {
			best = key
			continue
		}
		if better(m, metrics[best]) {
			best = key
		}
	}
	return best
}

func better(a, b Metrics) bool {
	if a.Accuracy != b.Accuracy {
		return a.Accuracy > b.Accuracy
	}
	if a.Precision != b.Precision {
		return a.Precision > b.Precision
	}
	return a.Recall > b.Recall
}
