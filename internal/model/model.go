// Package model provides pre-trained estimators exported from the training
// notebooks. The estimators are loaded once from a JSON artifact and are
// treated by the services as black boxes exposing Predict and PredictProba.
package model

// model module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/vkuznet/mlservices/internal/artifact"
)

// supported artifact kinds
const (
	LinearRegressionKind   = "linear_regression"
	LogisticRegressionKind = "logistic_regression"
)

// ErrFeatureCount is returned when input vector does not match model features
var ErrFeatureCount = errors.New("wrong number of features")

// Regressor represents model predicting continuous value
type Regressor interface {
	Predict(x []float64) (float64, error)
}

// Classifier represents model predicting class label and class probabilities
type Classifier interface {
	Predict(x []float64) (int, error)
	PredictProba(x []float64) ([]float64, error)
}

// Artifact represents exported estimator parameters.
// Coef holds one row per decision function and Intercept one value per row,
// e.g. linear and binary logistic regressions have a single row.
type Artifact struct {
	Kind      string      `json:"kind"`              // estimator kind
	Features  []string    `json:"features"`          // ordered feature names
	Classes   []int       `json:"classes,omitempty"` // class labels, classifiers only
	Coef      [][]float64 `json:"coef"`              // coefficients
	Intercept []float64   `json:"intercept"`         // intercepts
}

// NumFeatures returns number of features expected by the artifact
func (a *Artifact) NumFeatures() int {
	if len(a.Features) > 0 {
		return len(a.Features)
	}
	if len(a.Coef) > 0 {
		return len(a.Coef[0])
	}
	return 0
}

// Validate checks consistency of artifact parameters
func (a *Artifact) Validate() error {
	nf := a.NumFeatures()
	if nf == 0 {
		return errors.New("artifact has no features")
	}
	if len(a.Coef) == 0 {
		return errors.New("artifact has no coefficients")
	}
	for i, row := range a.Coef {
		if len(row) != nf {
			return fmt.Errorf("coefficient row %d has %d values, expected %d", i, len(row), nf)
		}
	}
	if len(a.Intercept) != len(a.Coef) {
		return fmt.Errorf("artifact has %d intercepts for %d coefficient rows", len(a.Intercept), len(a.Coef))
	}
	switch a.Kind {
	case LinearRegressionKind:
		if len(a.Coef) != 1 {
			return fmt.Errorf("linear regression expects single coefficient row, got %d", len(a.Coef))
		}
	case LogisticRegressionKind:
		nc := len(a.Classes)
		if nc < 2 {
			return fmt.Errorf("logistic regression expects at least two classes, got %d", nc)
		}
		if nc == 2 && len(a.Coef) != 1 {
			return fmt.Errorf("binary logistic regression expects single coefficient row, got %d", len(a.Coef))
		}
		if nc > 2 && len(a.Coef) != nc {
			return fmt.Errorf("multinomial logistic regression expects %d coefficient rows, got %d", nc, len(a.Coef))
		}
	default:
		return fmt.Errorf("unsupported artifact kind '%s'", a.Kind)
	}
	return nil
}

// Decode parses and validates artifact data
func Decode(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Load reads model artifact from given file
func Load(path string) (*Artifact, error) {
	data, err := artifact.ReadFile("model", path)
	if err != nil {
		return nil, err
	}
	a, err := Decode(data)
	if err != nil {
		return nil, artifact.Wrap("model", path, err)
	}
	return a, nil
}

// LoadRegressor loads regression model from given artifact file
func LoadRegressor(path string) (*LinearRegression, error) {
	a, err := Load(path)
	if err != nil {
		return nil, err
	}
	if a.Kind != LinearRegressionKind {
		err := fmt.Errorf("artifact kind '%s' is not a regressor", a.Kind)
		return nil, artifact.Wrap("model", path, err)
	}
	return NewLinearRegression(a), nil
}

// LoadClassifier loads classification model from given artifact file
func LoadClassifier(path string) (*LogisticRegression, error) {
	a, err := Load(path)
	if err != nil {
		return nil, err
	}
	if a.Kind != LogisticRegressionKind {
		err := fmt.Errorf("artifact kind '%s' is not a classifier", a.Kind)
		return nil, artifact.Wrap("model", path, err)
	}
	return NewLogisticRegression(a), nil
}
