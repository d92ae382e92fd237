package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlservices_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"service", "method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mlservices_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "route"},
	)

	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlservices_predictions_total",
			Help: "Total number of model predictions by outcome",
		},
		[]string{"service", "outcome"},
	)

	predictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mlservices_prediction_seconds",
			Help:    "Model inference duration in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1},
		},
		[]string{"service"},
	)
)

// helper function to record HTTP request metrics
func observeRequest(service, method, route string, status int, start time.Time) {
	requestsTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(service, route).Observe(time.Since(start).Seconds())
}

// ObservePrediction records outcome and duration of single model call
func ObservePrediction(service string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	predictionsTotal.WithLabelValues(service, outcome).Inc()
	predictionDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}
