// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package api provides the HTTP REST API for Resonance.

Routes (chi v5):

	GET    /api/v1/health/live
	GET    /api/v1/health/ready
	POST   /api/v1/visitors                                   issue an anonymous visitor ID
	GET    /api/v1/visitors/{visitorID}/context               current visitor snapshot
	DELETE /api/v1/visitors/{visitorID}                       forget a visitor
	POST   /api/v1/visitors/{visitorID}/events                behavior event
	GET    /api/v1/visitors/{visitorID}/recommendations       ?limit=1..50
	GET    /api/v1/visitors/{visitorID}/next-actions
	GET    /api/v1/visitors/{visitorID}/resonance/{contentID}
	GET    /metrics                                           Prometheus

Behavior events are JSON bodies:

	{"type": "page_enter", "page": "/franchise/process"}
	{"type": "scroll", "depth": 72.5}
	{"type": "visit_start", "location": {"lat": 25.04, "lon": 102.71, "district": "Wuhua"}}

Global middleware: request ID, real IP, panic recovery, CORS (go-chi/cors).
API routes add rate limiting (go-chi/httprate), Prometheus metrics and gzip.
Every response uses the models.APIResponse envelope.
*/
package api
