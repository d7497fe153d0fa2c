// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package main is the entry point for the Resonance HTTP service.
//
// Resonance tracks anonymous website visitors, builds a context for each
// one from their behavior (pages, dwell time, scroll depth, clicks, search)
// and serves resonance scores and ranked recommendations for the catalog of
// franchise, training, product and store content.
//
// # Startup
//
//  1. Configuration: koanf layers of defaults, optional YAML, environment
//  2. Logging: zerolog with the configured level and format
//  3. Catalog: embedded or file seed, wrapped in circuit breakers
//  4. Persistence: badger snapshot database when STORE_PERSIST is true
//  5. Events: in-process watermill gochannel when EVENTS_ENABLED is true
//  6. Context store, scorer, composer and behavior session manager
//  7. Supervisor tree: maintenance, event consumer, HTTP server
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=8080
//	LOG_LEVEL=debug
//	LOG_FORMAT=console
//	STORE_PERSIST=false
//	CATALOG_SEED_PATH=/etc/resonance/seed.json
//	CORS_ORIGINS=https://example.com
//
// A YAML file is read from CONFIG_PATH, ./config.yaml or
// /etc/resonance/config.yaml.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
// server first-come, the snapshot flusher runs a final pass, and the badger
// database is closed after the tree has exited.
package main
