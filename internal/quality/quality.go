// Package quality implements fruit quality classification service backed by
// pre-trained logistic regression.
package quality

// quality module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vkuznet/mlservices/internal/model"
	"github.com/vkuznet/mlservices/internal/server"
)

// Name of the service
const Name = "fruit"

// quality labels
const (
	Good = "Boa"
	Bad  = "Ruim"
)

// Features lists model features in the order used during training
var Features = []string{"Size", "Weight", "Sweetness", "Crunchiness", "Juiciness", "Ripeness", "Acidity"}

// Request represents classify request body, AID is required but it is not
// used by the model
type Request struct {
	AID         *int     `json:"A_id" validate:"required"`
	Size        *float64 `json:"Size" validate:"required"`
	Weight      *float64 `json:"Weight" validate:"required"`
	Sweetness   *float64 `json:"Sweetness" validate:"required"`
	Crunchiness *float64 `json:"Crunchiness" validate:"required"`
	Juiciness   *float64 `json:"Juiciness" validate:"required"`
	Ripeness    *float64 `json:"Ripeness" validate:"required"`
	Acidity     *float64 `json:"Acidity" validate:"required"`
}

// Vector returns feature vector of validated request
func (r *Request) Vector() []float64 {
	return []float64{
		*r.Size, *r.Weight, *r.Sweetness, *r.Crunchiness,
		*r.Juiciness, *r.Ripeness, *r.Acidity,
	}
}

// CheckFeatures checks that model was trained with our feature vector,
// feature names are optional in model artifacts
func CheckFeatures(n int, names []string) error {
	if n != len(Features) {
		return fmt.Errorf("model expects %d features, got %d", n, len(Features))
	}
	if len(names) == 0 {
		return nil
	}
	for i, name := range names {
		if name != Features[i] {
			return fmt.Errorf("feature %d is %s, expected %s", i, name, Features[i])
		}
	}
	return nil
}

// Response represents classify response body
type Response struct {
	Qualidade     string  `json:"qualidade"`     // quality label
	Probabilidade float64 `json:"probabilidade"` // probability of predicted class
}

// Label maps predicted class to quality label
func Label(class int) string {
	if class == 1 {
		return Good
	}
	return Bad
}

// Service holds classification model
type Service struct {
	model model.Classifier
}

// New creates new quality service for given model
func New(m model.Classifier) *Service {
	return &Service{model: m}
}

// Classify returns quality label and probability of predicted class
func (s *Service) Classify(x []float64) (Response, error) {
	start := time.Now()
	rec, err := s.classify(x)
	server.ObservePrediction(Name, start, err)
	return rec, err
}

func (s *Service) classify(x []float64) (Response, error) {
	var rec Response
	class, err := s.model.Predict(x)
	if err != nil {
		return rec, err
	}
	proba, err := s.model.PredictProba(x)
	if err != nil {
		return rec, err
	}
	// probabilities are indexed by predicted label
	if class < 0 || class >= len(proba) {
		return rec, fmt.Errorf("predicted class %d has no probability in %v", class, proba)
	}
	rec.Qualidade = Label(class)
	rec.Probabilidade = proba[class]
	return rec, nil
}

// ClassifyHandler handles POST /classify requests
func (s *Service) ClassifyHandler(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := server.DecodeJSON(r, &req); err != nil {
		server.ReplyValidationError(w, r, err)
		return
	}
	rec, err := s.Classify(req.Vector())
	if err != nil {
		log.Printf("ERROR: unable to classify sample A_id=%d, error %v", *req.AID, err)
		server.ReplyError(w, r, server.PredictionFailed, err, http.StatusInternalServerError)
		return
	}
	server.WriteJSON(w, http.StatusOK, rec)
}

// Routes returns service routes
func (s *Service) Routes() []server.Route {
	return []server.Route{
		{Method: http.MethodPost, Path: "/classify", Handler: s.ClassifyHandler},
	}
}
