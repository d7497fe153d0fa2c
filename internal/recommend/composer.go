// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/visitor"
)

// ErrStrategyPanic wraps a panic recovered from a strategy.
var ErrStrategyPanic = errors.New("strategy panicked")

// Composer coordinates the recommendation strategies and merges their output.
// It is safe for concurrent use.
type Composer struct {
	config     *Config
	logger     zerolog.Logger
	clock      clock.Clock
	strategies []Strategy
}

// NewComposer creates a composer with the five standard strategies in
// execution order: journey, interest, engagement, location, temporal.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewComposer(cfg *Config, contents ContentRepository, stores StoreRepository, clk clock.Clock, logger zerolog.Logger) *Composer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return NewComposerWithStrategies(cfg, clk, logger,
		NewJourneyStrategy(contents, cfg),
		NewInterestStrategy(contents, cfg),
		NewEngagementStrategy(contents),
		NewLocationStrategy(stores, cfg),
		NewTemporalStrategy(cfg),
	)
}

// NewComposerWithStrategies creates a composer running the given strategies.
// Their order is the deduplication tie-break.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewComposerWithStrategies(cfg *Config, clk clock.Clock, logger zerolog.Logger, strategies ...Strategy) *Composer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Composer{
		config:     cfg.Clone(),
		logger:     logger.With().Str("component", "recommend").Logger(),
		clock:      clock.OrReal(clk),
		strategies: strategies,
	}
}

// Strategies returns the names of the registered strategies in order.
func (c *Composer) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}

// strategyResult holds the outcome of a single strategy run.
type strategyResult struct {
	name    string
	items   []Item
	err     error
	latency time.Duration
}

// Recommend composes the recommendation list for a visitor snapshot.
// It never fails: strategy errors only remove that strategy's items, and
// when all strategies fail the default list is returned with Degraded set.
//
//nolint:gocritic // hugeParam: snapshot passed by value for immutability
func (c *Composer) Recommend(ctx context.Context, vc visitor.Context) *Response {
	now := c.clock.Now()
	vc = visitor.Derive(vc)

	logger := c.logger.With().
		Str("visitor_id", vc.VisitorID).
		Str("journey", string(vc.Journey)).
		Str("engagement", string(vc.EngagementLevel)).
		Logger()

	results := c.runStrategies(ctx, vc, now)

	reports := make([]StrategyReport, len(results))
	var merged []Item
	failures := 0
	for i, r := range results {
		reports[i] = StrategyReport{Name: r.name, Count: len(r.items), LatencyMS: r.latency.Milliseconds()}
		if r.err != nil {
			failures++
			reports[i].Error = r.err.Error()
			reports[i].Count = 0
			logger.Warn().
				Str("strategy", r.name).
				Err(r.err).
				Msg("strategy failed")
			continue
		}
		for _, it := range r.items {
			it.Strategy = r.name
			merged = append(merged, it)
		}
	}

	resp := &Response{Strategies: reports, GeneratedAt: now}
	if len(results) > 0 && failures == len(results) {
		metrics.RecommendFallbacks.Inc()
		logger.Warn().Int("strategies", len(results)).Msg("all strategies failed, using default recommendations")
		resp.Items = DefaultItems()
		resp.Degraded = true
	} else {
		resp.Items = Rank(merged)
		if c.config.MaxItems > 0 && len(resp.Items) > c.config.MaxItems {
			resp.Items = resp.Items[:c.config.MaxItems]
		}
	}
	metrics.RecommendItems.Observe(float64(len(resp.Items)))

	logger.Debug().
		Int("items", len(resp.Items)).
		Int("failed_strategies", failures).
		Bool("degraded", resp.Degraded).
		Msg("recommendation complete")

	return resp
}

// runStrategies runs all strategies in parallel and returns their results
// in registration order.
func (c *Composer) runStrategies(ctx context.Context, vc visitor.Context, now time.Time) []strategyResult {
	results := make([]strategyResult, len(c.strategies))
	var wg sync.WaitGroup

	for i, s := range c.strategies {
		wg.Add(1)
		go func(idx int, st Strategy) {
			defer wg.Done()
			results[idx] = c.runSingleStrategy(ctx, st, vc.Clone(), now)
		}(i, s)
	}

	wg.Wait()
	return results
}

// runSingleStrategy runs one strategy under its own timeout. A strategy that
// ignores cancellation is abandoned once the deadline passes.
//
//nolint:gocritic // hugeParam: snapshot passed by value for immutability
func (c *Composer) runSingleStrategy(ctx context.Context, s Strategy, vc visitor.Context, now time.Time) strategyResult {
	name := s.Name()
	start := time.Now()

	sctx, cancel := context.WithTimeout(ctx, c.config.StrategyTimeout)
	defer cancel()

	done := make(chan strategyResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- strategyResult{err: fmt.Errorf("%w: %v", ErrStrategyPanic, r)}
			}
		}()
		items, err := s.Recommend(sctx, vc, now)
		done <- strategyResult{items: items, err: err}
	}()

	var res strategyResult
	select {
	case res = <-done:
	case <-sctx.Done():
		res.err = fmt.Errorf("strategy %s: %w", name, sctx.Err())
	}
	res.name = name
	res.latency = time.Since(start)
	if res.err != nil {
		res.items = nil
	}

	metrics.RecordStrategy(name, res.latency, res.err != nil)
	return res
}

// Rank deduplicates items on Key, keeping the first occurrence, and
// stable-sorts the survivors by priority, highest first.
func Rank(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := it.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// StrategyFallback is the Strategy field of default items.
const StrategyFallback = "fallback"

// DefaultItems returns the list served when every strategy fails.
func DefaultItems() []Item {
	return []Item{
		{ContentType: TypeCompanyOverview, Payload: subtype("overview"), Priority: 10, DisplayPosition: PositionHero,
			Reason: "Get to know who we are", Strategy: StrategyFallback},
		{ContentType: TypeStoreNetwork, Payload: subtype("overview"), Priority: 8,
			Reason: "Explore our store network", Strategy: StrategyFallback},
		{ContentType: TypeContactCard, Payload: action("contact"), Priority: 6, DisplayPosition: PositionSidebar,
			Reason: "Get in touch with us", Strategy: StrategyFallback},
	}
}
