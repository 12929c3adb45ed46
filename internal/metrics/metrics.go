// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrank_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookrank_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Evaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookrank_evaluations_total",
			Help: "Total number of evaluations by variant and outcome",
		},
		[]string{"variant", "outcome"}, // outcome: "ranked", "rejected", "malformed"
	)

	BooksPerEvaluation = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bookrank_books_per_evaluation",
			Help:    "Number of books ranked per successful evaluation",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50, 100},
		},
	)
)

// RecordRequest records one served HTTP request.
func RecordRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordEvaluation counts one evaluation attempt. books is only observed for
// the "ranked" outcome.
func RecordEvaluation(variant, outcome string, books int) {
	Evaluations.WithLabelValues(variant, outcome).Inc()
	if outcome == "ranked" {
		BooksPerEvaluation.Observe(float64(books))
	}
}
