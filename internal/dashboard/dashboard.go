// Package dashboard implements laptop recommendation dashboard. The user
// selects a laptop model and the dashboard lists all laptops which belong
// to the same cluster.
package dashboard

// dashboard module
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"errors"
	"log"
	"net/http"

	"github.com/vkuznet/mlservices/internal/dataset"
	"github.com/vkuznet/mlservices/internal/server"
)

// Name of the service
const Name = "recommend"

// Title of dashboard page
const Title = "Recomendações de Modelos"

// Recommendation represents recommendation for selected model
type Recommendation struct {
	Model   string     `json:"model"`   // selected model
	Cluster string     `json:"cluster"` // cluster of selected model
	Columns []string   `json:"columns"` // dataset columns
	Rows    [][]string `json:"rows"`    // recommended rows
}

// Service holds dataset used by dashboard
type Service struct {
	data *dataset.Dataset
}

// New creates dashboard service for given dataset
func New(data *dataset.Dataset) *Service {
	return &Service{data: data}
}

// Recommend returns recommendation for given model, unknown model yields
// recommendation without rows
func (s *Service) Recommend(model string) Recommendation {
	rec := Recommendation{Model: model, Columns: s.data.Columns, Rows: [][]string{}}
	row, ok := s.data.Lookup(model)
	if !ok {
		if server.Config.Verbose > 0 {
			log.Printf("model %s is not present in dataset %s", model, s.data.Path)
		}
		return rec
	}
	rec.Cluster = row.Cluster
	for _, r := range s.data.Recommend(model) {
		rec.Rows = append(rec.Rows, r.Values)
	}
	return rec
}

// IndexHandler renders dashboard page, first model is selected by default
func (s *Service) IndexHandler(w http.ResponseWriter, r *http.Request) {
	models := s.data.Models()
	selected := r.FormValue("model")
	if selected == "" && len(models) > 0 {
		selected = models[0]
	}
	var rec Recommendation
	if selected != "" {
		rec = s.Recommend(selected)
	}
	if r.Header.Get("Accept") == "application/json" {
		server.WriteJSON(w, http.StatusOK, rec)
		return
	}
	tmpl := server.MakeTmpl(Name, Title)
	tmpl["Models"] = models
	tmpl["Selected"] = selected
	tmpl["Columns"] = s.data.Columns
	tmpl["Rows"] = rec.Rows
	server.Page(w, r, "recommend.tmpl", tmpl, http.StatusOK)
}

// ModelsHandler provides list of models available for selection
func (s *Service) ModelsHandler(w http.ResponseWriter, r *http.Request) {
	models := s.data.Models()
	if models == nil {
		models = []string{}
	}
	server.WriteJSON(w, http.StatusOK, models)
}

// RecommendHandler provides recommendation for model given as query parameter
func (s *Service) RecommendHandler(w http.ResponseWriter, r *http.Request) {
	model := r.FormValue("model")
	if model == "" {
		server.ReplyError(w, r, server.BadRequest, errors.New("model parameter is required"), http.StatusBadRequest)
		return
	}
	server.WriteJSON(w, http.StatusOK, s.Recommend(model))
}

// Routes returns dashboard routes
func (s *Service) Routes() []server.Route {
	return []server.Route{
		{Method: http.MethodGet, Path: "/", Handler: s.IndexHandler},
		{Method: http.MethodGet, Path: "/models", Handler: s.ModelsHandler},
		{Method: http.MethodGet, Path: "/recommend", Handler: s.RecommendHandler},
	}
}
