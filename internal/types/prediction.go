package types

// PredictionRequest mirrors the JSON body of POST /predict. Every field is
// optional; absent fields are imputed from training-set medians before
// inference. Unknown JSON fields are ignored by the binder.
type PredictionRequest struct {
	Pregnancies              *float64 `json:"Pregnancies"`
	Glucose                  *float64 `json:"Glucose"`
	BloodPressure            *float64 `json:"BloodPressure"`
	SkinThickness            *float64 `json:"SkinThickness"`
	Insulin                  *float64 `json:"Insulin"`
	BMI                      *float64 `json:"BMI"`
	DiabetesPedigreeFunction *float64 `json:"DiabetesPedigreeFunction"`
	Age                      *float64 `json:"Age"`
}

// FieldsByName maps canonical feature names to the request's values so the
// serving side can assemble the feature vector in registry order.
func (r PredictionRequest) FieldsByName() map[string]*float64 {
	return map[string]*float64{
		"Pregnancies":              r.Pregnancies,
		"Glucose":                  r.Glucose,
		"BloodPressure":            r.BloodPressure,
		"SkinThickness":            r.SkinThickness,
		"Insulin":                  r.Insulin,
		"BMI":                      r.BMI,
		"DiabetesPedigreeFunction": r.DiabetesPedigreeFunction,
		"Age":                      r.Age,
	}
}

// Empty reports whether every field is absent. A request with no fields at
// all carries no signal and fails validation.
func (r PredictionRequest) Empty() bool {
	for _, v := range r.FieldsByName() {
		if v != nil {
			return false
		}
	}
	return true
}

// PredictionResult is the serving-side output: positive-class probability,
// the thresholded label, the display name of the model that produced it,
// and whether the result came from the response cache.
type PredictionResult struct {
	BestModel   string  `json:"best_model"`
	Probability float64 `json:"prob"`
	Label       string  `json:"label"`
	Cached      bool    `json:"cached"`
}
