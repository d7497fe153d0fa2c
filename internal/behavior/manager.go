// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package behavior

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/contextstore"
	"github.com/tomtom215/resonance/internal/metrics"
)

// Manager keeps one Aggregator per visitor.
type Manager struct {
	mu          sync.Mutex
	aggregators map[string]*Aggregator

	store  contextstore.Store
	cfg    Config
	clock  clock.Clock
	logger zerolog.Logger
}

// NewManager creates a Manager whose aggregators write through store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewManager(store contextstore.Store, cfg Config, clk clock.Clock, logger zerolog.Logger) *Manager {
	return &Manager{
		aggregators: make(map[string]*Aggregator),
		store:       store,
		cfg:         cfg,
		clock:       clock.OrReal(clk),
		logger:      logger,
	}
}

// Get returns the visitor's aggregator, creating it on first use.
func (m *Manager) Get(visitorID string) *Aggregator {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.aggregators[visitorID]; ok {
		return a
	}
	a := NewAggregator(visitorID, m.store, m.cfg, m.clock, m.logger)
	m.aggregators[visitorID] = a
	metrics.ActiveVisitors.Set(float64(len(m.aggregators)))
	return a
}

// Remove drops the visitor's aggregator, reporting whether one existed.
func (m *Manager) Remove(visitorID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.aggregators[visitorID]
	delete(m.aggregators, visitorID)
	metrics.ActiveVisitors.Set(float64(len(m.aggregators)))
	return ok
}

// Len returns the number of live aggregators.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.aggregators)
}

// Evict drops aggregators idle for longer than IdleTTL and returns how many
// were removed. Open page entries of an evicted aggregator are discarded.
func (m *Manager) Evict() int {
	cutoff := m.clock.Now().Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, a := range m.aggregators {
		if a.LastActive().Before(cutoff) {
			delete(m.aggregators, id)
			evicted++
		}
	}
	metrics.ActiveVisitors.Set(float64(len(m.aggregators)))
	if evicted > 0 {
		m.logger.Debug().Int("evicted", evicted).Int("active", len(m.aggregators)).Msg("Evicted idle visitor sessions")
	}
	return evicted
}

// Serve evicts idle aggregators every interval until ctx is done.
func (m *Manager) Serve(ctx context.Context) error {
	interval := max(m.cfg.IdleTTL/4, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Evict()
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (m *Manager) String() string {
	return "behavior-session-janitor"
}
