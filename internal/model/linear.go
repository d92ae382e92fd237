package model

// LinearRegression implements Regressor for ordinary least squares model
type LinearRegression struct {
	linear
	features []string
}

// NewLinearRegression creates regression model from validated artifact
func NewLinearRegression(a *Artifact) *LinearRegression {
	return &LinearRegression{linear: newLinear(a), features: a.Features}
}

// Features returns ordered feature names of the model
func (m *LinearRegression) Features() []string {
	return m.features
}

// Predict returns continuous prediction for single sample
func (m *LinearRegression) Predict(x []float64) (float64, error) {
	d, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	return d[0], nil
}
