// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package middleware provides HTTP middleware shared by the Resonance API.

  - RequestID: propagates or generates X-Request-ID and stores it in the
    logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern so visitor IDs never become label values
  - Compression: pooled gzip for clients that accept it

All middleware use the func(http.Handler) http.Handler shape expected by chi.
*/
package middleware
