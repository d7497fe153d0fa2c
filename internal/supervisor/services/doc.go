// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package services adapts Resonance components to suture.Service.
//
// HTTPServerService turns the blocking ListenAndServe/Shutdown pair into a
// context-aware Serve. PeriodicService runs a maintenance task on a ticker,
// which is how snapshot flushing, context eviction and badger value-log GC
// are scheduled. Components that already implement Serve(ctx) error, such
// as contextstore.EventConsumer and behavior.Manager, are added to the tree
// directly.
package services
