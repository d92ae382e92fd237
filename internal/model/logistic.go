package model

// LogisticRegression implements Classifier for binary and multinomial
// logistic regression models
type LogisticRegression struct {
	linear
	features []string
	classes  []int
}

// NewLogisticRegression creates classification model from validated artifact
func NewLogisticRegression(a *Artifact) *LogisticRegression {
	classes := make([]int, len(a.Classes))
	copy(classes, a.Classes)
	return &LogisticRegression{linear: newLinear(a), features: a.Features, classes: classes}
}

// Features returns ordered feature names of the model
func (m *LogisticRegression) Features() []string {
	return m.features
}

// Classes returns class labels in the order used by PredictProba
func (m *LogisticRegression) Classes() []int {
	return m.classes
}

// PredictProba returns per-class probabilities for single sample
func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	d, err := m.decision(x)
	if err != nil {
		return nil, err
	}
	if len(m.classes) == 2 {
		p := sigmoid(d[0])
		return []float64{1 - p, p}, nil
	}
	return softmax(d), nil
}

// Predict returns class label for single sample
func (m *LogisticRegression) Predict(x []float64) (int, error) {
	d, err := m.decision(x)
	if err != nil {
		return 0, err
	}
	if len(m.classes) == 2 {
		if d[0] > 0 {
			return m.classes[1], nil
		}
		return m.classes[0], nil
	}
	return m.classes[argmax(d)], nil
}
