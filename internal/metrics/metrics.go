// Package metrics holds the Prometheus collectors for the questionnaire.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_sessions_started_total",
			Help: "Total number of questionnaire sessions started",
		},
		[]string{"question_set"},
	)

	SessionsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_sessions_closed_total",
			Help: "Total number of questionnaire sessions torn down",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quiz_sessions_active",
			Help: "Number of questionnaire sessions currently held in memory",
		},
	)

	AnswersRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_recorded_total",
			Help: "Total number of answers recorded per axis",
		},
		[]string{"axis"},
	)

	ResultsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_results_emitted_total",
			Help: "Total number of match results emitted",
		},
		[]string{"kind"},
	)

	NoMatch = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_no_match_total",
			Help: "Total number of final scoring runs without a candidate",
		},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_scoring_duration_seconds",
			Help:    "Duration of a scoring and selection run",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog loads by source and outcome",
		},
		[]string{"source", "status"},
	)
)
