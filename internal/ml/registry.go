package ml

import "fmt"

// ModelKeys is the fixed set of model identifiers, in priority order. The
// order doubles as the final tie-break during selection.
var ModelKeys = []string{"lr", "knn", "dt", "rf"}

// DisplayNames maps model keys to the names shown to callers.
var DisplayNames = map[string]string{
	"lr":  "Logistic Regression",
	"knn": "K-Nearest Neighbors",
	"dt":  "Decision Tree",
	"rf":  "Random Forest",
}

// Registry is the persisted metadata document: the single source of truth
// for which artifact to serve and in which order to present features. It is
// written once by the trainer and read-only thereafter.
type Registry struct {
	FeatureOrder  []string           `json:"feature_order"`
	BestModelName string             `json:"best_model_name"`
	ModelNames    map[string]string  `json:"model_names"`
	Models        map[string]Metrics `json:"models"`
}

// Validate checks the internal consistency the serving side depends on:
// the selected key must exist in both maps and the feature order must be
// present, since a wrong order silently produces wrong predictions.
func (r *Registry) Validate() error {
	if len(r.FeatureOrder) == 0 {
		return fmt.Errorf("registry: empty feature order")
	}
	if r.BestModelName == "" {
		return fmt.Errorf("registry: no best model selected")
	}
	if _, ok := r.ModelNames[r.BestModelName]; !ok {
		return fmt.Errorf("registry: best model %q missing from model_names", r.BestModelName)
	}
	if _, ok := r.Models[r.BestModelName]; !ok {
		return fmt.Errorf("registry: best model %q missing from models", r.BestModelName)
	}
	return nil
}
