package types

// HealthRecord is one row of the training dataset: the eight numeric
// features in canonical order plus the binary outcome label.
type HealthRecord struct {
	Pregnancies              float64
	Glucose                  float64
	BloodPressure            float64
	SkinThickness            float64
	Insulin                  float64
	BMI                      float64
	DiabetesPedigreeFunction float64
	Age                      float64
	Outcome                  int
}

// Features returns the record's feature values in canonical order.
func (r HealthRecord) Features() []float64 {
	return []float64{
		r.Pregnancies,
		r.Glucose,
		r.BloodPressure,
		r.SkinThickness,
		r.Insulin,
		r.BMI,
		r.DiabetesPedigreeFunction,
		r.Age,
	}
}
