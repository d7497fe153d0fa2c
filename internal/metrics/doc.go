// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limiter rejections (counter)

Scoring Metrics:
  - resonance_score: Score distribution by content kind (histogram)
  - resonance_strength_total: Results per strength band (counter)

Recommendation Metrics:
  - recommend_strategy_duration_seconds: Per-strategy latency (histogram)
  - recommend_strategy_failures_total: Failed or timed-out strategies (counter)
  - recommend_fallbacks_total: Default-list responses (counter)
  - recommend_items: Items per response (histogram)

Visitor Metrics:
  - visitor_events_total: Applied context events by type (counter)
  - visitor_events_published_total / visitor_events_consumed_total: event bus traffic
  - visitor_sessions_active: Live behavior aggregators (gauge)
  - visitor_snapshot_operations_total: Badger snapshot operations (counter)
  - behavior_scroll_events_throttled_total: Coalesced scroll events (counter)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Thread Safety

All metric operations are thread-safe and can be called concurrently.
*/
package metrics
