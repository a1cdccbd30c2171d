package ml

// ConfusionMatrix holds the four outcome counts of a binary classifier on a
// held-out split.
type ConfusionMatrix struct {
	TN int `json:"TN"`
	FP int `json:"FP"`
	FN int `json:"FN"`
	TP int `json:"TP"`
}

// Metrics are the per-model evaluation results. Precision, recall and F1
// are restricted to the positive class; an undefined ratio reports 0 rather
// than erroring.
type Metrics struct {
	ConfusionMatrix ConfusionMatrix `json:"confusion_matrix"`
	Accuracy        float64         `json:"accuracy"`
	Precision       float64         `json:"precision"`
	Recall          float64         `json:"recall"`
	F1              float64         `json:"f1_score"`
}

// Evaluate runs the fitted pipeline over the held-out split and derives the
// confusion matrix and summary metrics at the 0.5 decision threshold.
func Evaluate(p *Pipeline, X [][]float64, y []int) (Metrics, error) {
	var cm ConfusionMatrix
	for i, row := range X {
		prob, err := p.PredictProbability(row)
		if err != nil {
			return Metrics{}, err
		}
		predicted := 0
		if prob >= 0.5 {
			predicted = 1
		}
		switch {
		case predicted == 1 && y[i] == 1:
			cm.TP++
		case predicted == 1 && y[i] == 0:
			cm.FP++
		case predicted == 0 && y[i] == 1:
			cm.FN++
		default:
			cm.TN++
		}
	}
	return metricsFromConfusion(cm), nil
}

func metricsFromConfusion(cm ConfusionMatrix) Metrics {
	total := cm.TN + cm.FP + cm.FN + cm.TP
	m := Metrics{ConfusionMatrix: cm}
	if total > 0 {
		m.Accuracy = float64(cm.TN+cm.TP) / float64(total)
	}
	if cm.TP+cm.FP > 0 {
		m.Precision = float64(cm.TP) / float64(cm.TP+cm.FP)
	}
	if cm.TP+cm.FN > 0 {
		m.Recall = float64(cm.TP) / float64(cm.TP+cm.FN)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
