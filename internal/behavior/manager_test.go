// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package behavior

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/contextstore"
)

func TestManager_GetReusesAggregator(t *testing.T) {
	t.Parallel()

	m := NewManager(contextstore.NewMemoryStore(), DefaultConfig(), clock.NewFixed(t0), zerolog.Nop())
	a := m.Get("v1")
	if m.Get("v1") != a {
		t.Error("Get() returned a different aggregator for the same visitor")
	}
	if m.Get("v2") == a {
		t.Error("Get() shared an aggregator across visitors")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestManager_Remove(t *testing.T) {
	t.Parallel()

	m := NewManager(contextstore.NewMemoryStore(), DefaultConfig(), clock.NewFixed(t0), zerolog.Nop())
	first := m.Get("v1")

	if !m.Remove("v1") {
		t.Error("Remove() = false for a live visitor")
	}
	if m.Remove("v1") {
		t.Error("Remove() = true for an already removed visitor")
	}
	if m.Get("v1") == first {
		t.Error("Get() after Remove() returned the old aggregator")
	}
}

func TestManager_EvictIdle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := clock.NewFixed(t0)
	cfg := DefaultConfig()
	cfg.IdleTTL = 10 * time.Minute
	m := NewManager(contextstore.NewMemoryStore(contextstore.WithClock(clk)), cfg, clk, zerolog.Nop())

	m.Get("idle")
	clk.Advance(8 * time.Minute)
	if _, err := m.Get("busy").OnClick(ctx, "x"); err != nil {
		t.Fatal(err)
	}
	clk.Advance(5 * time.Minute)

	if n := m.Evict(); n != 1 {
		t.Errorf("Evict() = %d, want 1", n)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestManager_ServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	m := NewManager(contextstore.NewMemoryStore(), DefaultConfig(), nil, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Serve(ctx) }()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
