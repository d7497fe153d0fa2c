// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Resonance Scoring Metrics
	ResonanceScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resonance_score",
			Help:    "Distribution of computed resonance scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
		[]string{"kind"},
	)

	ResonanceStrength = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resonance_strength_total",
			Help: "Resonance results by strength band",
		},
		[]string{"strength"},
	)

	// Recommendation Composer Metrics
	StrategyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_strategy_duration_seconds",
			Help:    "Recommendation strategy execution time",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"strategy"},
	)

	StrategyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_strategy_failures_total",
			Help: "Recommendation strategies that failed or timed out",
		},
		[]string{"strategy"},
	)

	RecommendFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Requests answered with the default recommendation list",
		},
	)

	RecommendItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_items",
			Help:    "Number of items returned per recommendation request",
			Buckets: []float64{0, 1, 3, 5, 8, 12, 20},
		},
	)

	// Visitor Context Metrics
	VisitorEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitor_events_total",
			Help: "Context store events applied, by type",
		},
		[]string{"type"},
	)

	VisitorEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitor_events_published_total",
			Help: "Context store events handed to the event bus",
		},
		[]string{"result"}, // "success", "failure"
	)

	VisitorEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitor_events_consumed_total",
			Help: "Context store events received from the event bus",
		},
		[]string{"type"},
	)

	ActiveVisitors = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "visitor_sessions_active",
			Help: "Visitors with a live behavior aggregator",
		},
	)

	SnapshotPersistence = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visitor_snapshot_operations_total",
			Help: "Visitor snapshot persistence operations",
		},
		[]string{"operation", "result"},
	)

	ScrollEventsThrottled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "behavior_scroll_events_throttled_total",
			Help: "Scroll events coalesced by the per-visitor rate limiter",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAppInfo publishes the build version alongside the Go runtime version.
func RecordAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordResonance records one scorer result.
func RecordResonance(kind, strength string, score float64) {
	if kind == "" {
		kind = "unknown"
	}
	ResonanceScore.WithLabelValues(kind).Observe(score)
	ResonanceStrength.WithLabelValues(strength).Inc()
}

// RecordStrategy records one strategy run. failed covers both errors and timeouts.
func RecordStrategy(strategy string, duration time.Duration, failed bool) {
	StrategyDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	if failed {
		StrategyFailures.WithLabelValues(strategy).Inc()
	}
}

// RecordSnapshot records a visitor snapshot load, save or delete.
func RecordSnapshot(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	SnapshotPersistence.WithLabelValues(operation, result).Inc()
}
