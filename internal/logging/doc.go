// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package logging provides zerolog-based structured logging for Resonance.
//
// JSON output is the production default; console output is available for
// development. Components receive a zerolog.Logger by value and tag it with a
// "component" field. The global logger exists for main and for code paths
// that have no injected logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logger := logging.WithComponent("recommend")
//	logger.Info().Str("visitor_id", id).Int("items", n).Msg("Recommendations composed")
//
//	// In HTTP handlers, request_id and visitor_id come from the context.
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Context read failed")
//
// # Adapters
//
// Two third-party libraries log through their own interfaces:
//
//   - NewSlogLogger feeds sutureslog, which reports supervisor restarts.
//   - NewWatermillLogger implements watermill.LoggerAdapter for the visitor
//     event pub/sub.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated chain
// is never written.
package logging
