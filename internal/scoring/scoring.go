// Package scoring implements test score prediction service. The service
// predicts a test score from the number of hours a student spent studying
// using pre-trained linear regression.
package scoring

// scoring module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/vkuznet/mlservices/internal/model"
	"github.com/vkuznet/mlservices/internal/server"
)

// Name of the service
const Name = "score"

// Request represents predict request body
type Request struct {
	HorasEstudo *float64 `json:"horas_estudo" validate:"required"` // hours studied
}

// Response represents predict response body
type Response struct {
	PontuacaoTeste int `json:"pontuacao_teste"` // predicted test score
}

// Service holds regression model used for predictions
type Service struct {
	model model.Regressor
}

// New creates new scoring service for given model
func New(m model.Regressor) *Service {
	return &Service{model: m}
}

// Predict returns test score for given hours studied, the model output is
// truncated towards zero
func (s *Service) Predict(hours float64) (int, error) {
	start := time.Now()
	y, err := s.model.Predict([]float64{hours})
	if err == nil && (math.IsNaN(y) || math.IsInf(y, 0)) {
		err = fmt.Errorf("model returned non finite value %v", y)
	}
	server.ObservePrediction(Name, start, err)
	if err != nil {
		return 0, err
	}
	return int(y), nil
}

// PredictHandler handles POST /predict requests
func (s *Service) PredictHandler(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := server.DecodeJSON(r, &req); err != nil {
		server.ReplyValidationError(w, r, err)
		return
	}
	score, err := s.Predict(*req.HorasEstudo)
	if err != nil {
		log.Printf("ERROR: unable to predict score for %v hours, error %v", *req.HorasEstudo, err)
		server.ReplyError(w, r, server.PredictionFailed, err, http.StatusInternalServerError)
		return
	}
	server.WriteJSON(w, http.StatusOK, Response{PontuacaoTeste: score})
}

// Routes returns service routes
func (s *Service) Routes() []server.Route {
	return []server.Route{
		{Method: http.MethodPost, Path: "/predict", Handler: s.PredictHandler},
	}
}
