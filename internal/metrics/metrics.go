// Package metrics registers the application's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RoundsCompleted counts finalized rounds by handicap method
	// ("whs" or "simple").
	RoundsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenside_rounds_completed_total",
		Help: "Completed rounds by handicap calculation method.",
	}, []string{"method"})

	// AutosaveFlushes counts successful live-round writes to the store.
	// Debouncing should keep this well below the stroke entry rate.
	AutosaveFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenside_autosave_flushes_total",
		Help: "Successful live scorecard persistence flushes.",
	})

	// ScoresRecorded counts manually entered scores (the add-score form,
	// as opposed to live rounds).
	ScoresRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenside_scores_recorded_total",
		Help: "Scores recorded through manual entry.",
	})

	// RequestDuration observes HTTP request latency by route pattern and
	// status class.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "greenside_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
