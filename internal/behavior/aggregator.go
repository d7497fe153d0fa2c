// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package behavior

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/contextstore"
	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/visitor"
)

var (
	// ErrPageNotEntered is returned by OnPageLeave for a page with no open entry.
	ErrPageNotEntered = errors.New("page was not entered")

	// ErrInvalidDepth is returned by OnScroll for depths outside 0..100.
	ErrInvalidDepth = errors.New("scroll depth must be within 0..100")

	// ErrEmptyArgument is returned when a required page, target or query is blank.
	ErrEmptyArgument = errors.New("empty argument")
)

// Aggregator converts one visitor's UI events into context-store events.
// Its methods are safe for concurrent use and are applied in call order.
type Aggregator struct {
	mu sync.Mutex

	visitorID string
	store     contextstore.Store
	cfg       Config
	clock     clock.Clock
	logger    zerolog.Logger
	scroll    *rate.Limiter

	currentPage string
	entered     map[string]time.Time
	maxDepth    map[string]float64
	settled     map[string]bool
	lastActive  time.Time
}

// NewAggregator creates an aggregator for visitorID writing through store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(visitorID string, store contextstore.Store, cfg Config, clk clock.Clock, logger zerolog.Logger) *Aggregator {
	clk = clock.OrReal(clk)
	return &Aggregator{
		visitorID:  visitorID,
		store:      store,
		cfg:        cfg,
		clock:      clk,
		logger:     logger.With().Str("component", "behavior").Str("visitor_id", visitorID).Logger(),
		scroll:     rate.NewLimiter(rate.Limit(cfg.ScrollRatePerSecond), cfg.ScrollBurst),
		entered:    make(map[string]time.Time),
		maxDepth:   make(map[string]float64),
		settled:    make(map[string]bool),
		lastActive: clk.Now(),
	}
}

// VisitorID returns the visitor this aggregator serves.
func (a *Aggregator) VisitorID() string {
	return a.visitorID
}

// LastActive returns the time of the most recent handler call.
func (a *Aggregator) LastActive() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastActive
}

// CurrentPage returns the most recently entered page still open.
func (a *Aggregator) CurrentPage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentPage
}

// MaxDepth returns the deepest scroll percentage seen on page.
func (a *Aggregator) MaxDepth(page string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.maxDepth[page]
}

// OnVisitStart opens a new visit, recording the location when known.
func (a *Aggregator) OnVisitStart(ctx context.Context, loc *visitor.Location) (visitor.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.touch()

	return a.dispatch(ctx, contextstore.StartVisit(loc))
}

// OnPageEnter records the entry time of page and counts a page view.
func (a *Aggregator) OnPageEnter(ctx context.Context, page string) (visitor.Context, error) {
	page = strings.TrimSpace(page)
	if page == "" {
		return visitor.Context{}, fmt.Errorf("page enter: %w", ErrEmptyArgument)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.touch()

	a.entered[page] = now
	a.currentPage = page
	clear(a.settled)
	return a.dispatch(ctx, contextstore.RecordPageView(page))
}

// OnPageLeave closes the page opened by OnPageEnter, adds the dwell time to
// the visitor's totals and announces the re-derived engagement and journey.
func (a *Aggregator) OnPageLeave(ctx context.Context, page string) (visitor.Context, error) {
	page = strings.TrimSpace(page)

	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.touch()

	start, ok := a.entered[page]
	if !ok {
		return visitor.Context{}, fmt.Errorf("page leave %q: %w", page, ErrPageNotEntered)
	}

	duration := max(now.Sub(start), 0)
	visit := contextstore.AddPageVisit(page, start, duration)
	visit.At = now
	snapshot, err := a.dispatch(ctx, visit)
	if err != nil {
		return visitor.Context{}, err
	}

	delete(a.entered, page)
	if a.currentPage == page {
		a.currentPage = ""
	}

	if snapshot, err = a.dispatch(ctx, contextstore.UpdateEngagement(snapshot.EngagementLevel)); err != nil {
		return visitor.Context{}, err
	}
	if snapshot, err = a.dispatch(ctx, contextstore.UpdateJourney(snapshot.Journey)); err != nil {
		return visitor.Context{}, err
	}

	a.logger.Debug().
		Str("page", page).
		Dur("duration", duration).
		Str("engagement", string(snapshot.EngagementLevel)).
		Str("journey", string(snapshot.Journey)).
		Msg("Page visit closed")
	return snapshot, nil
}

// OnScroll tracks the deepest scroll on the current page. Once that depth
// passes InterestDepth on a categorized page, the category is added to the
// visitor's interests unless already present. The rate limiter only drops
// scrolls that have no interest left to settle.
func (a *Aggregator) OnScroll(ctx context.Context, depthPercent float64) (visitor.Context, error) {
	if depthPercent < 0 || depthPercent > 100 {
		return visitor.Context{}, fmt.Errorf("scroll %v: %w", depthPercent, ErrInvalidDepth)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.touch()

	page := a.currentPage
	if page == "" {
		return a.store.Read(ctx, a.visitorID)
	}
	if depthPercent > a.maxDepth[page] {
		a.maxDepth[page] = depthPercent
	}

	category, categorized := PageCategory(page)
	pending := categorized && a.maxDepth[page] > a.cfg.InterestDepth && !a.settled[category]
	if !pending {
		if !a.scroll.AllowN(now, 1) {
			metrics.ScrollEventsThrottled.Inc()
		}
		return a.store.Read(ctx, a.visitorID)
	}

	snapshot, err := a.store.Read(ctx, a.visitorID)
	if err != nil {
		return visitor.Context{}, err
	}
	if snapshot.HasInterest(category) {
		a.settled[category] = true
		return snapshot, nil
	}

	interests := make([]visitor.Interest, 0, len(snapshot.Interests)+1)
	interests = append(interests, snapshot.Interests...)
	interests = append(interests, visitor.Interest{
		Category: category,
		Level:    a.cfg.DefaultInterestLevel,
		Keywords: []string{},
	})

	if snapshot, err = a.dispatch(ctx, contextstore.UpdateInterests(interests)); err != nil {
		return visitor.Context{}, err
	}
	a.settled[category] = true
	if a.cfg.ScrollResonanceDelta != 0 {
		if snapshot, err = a.dispatch(ctx, contextstore.UpdateResonance(a.cfg.ScrollResonanceDelta)); err != nil {
			return visitor.Context{}, err
		}
	}

	a.logger.Debug().Str("page", page).Str("category", category).Msg("Interest inferred from scroll depth")
	return snapshot, nil
}

// OnClick records a clicked element as an interaction.
func (a *Aggregator) OnClick(ctx context.Context, targetID string) (visitor.Context, error) {
	targetID = strings.TrimSpace(targetID)
	if targetID == "" {
		return visitor.Context{}, fmt.Errorf("click: %w", ErrEmptyArgument)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.touch()

	return a.dispatch(ctx, contextstore.RecordClick(targetID))
}

// OnSearch records a search query.
func (a *Aggregator) OnSearch(ctx context.Context, query string) (visitor.Context, error) {
	if strings.TrimSpace(query) == "" {
		return visitor.Context{}, fmt.Errorf("search: %w", ErrEmptyArgument)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.touch()

	return a.dispatch(ctx, contextstore.RecordSearch(query))
}

// touch stamps activity and returns the current time. Caller must hold mu.
func (a *Aggregator) touch() time.Time {
	now := a.clock.Now()
	a.lastActive = now
	return now
}

// dispatch stamps e with the aggregator clock and applies it. Caller must hold mu.
func (a *Aggregator) dispatch(ctx context.Context, e contextstore.Event) (visitor.Context, error) {
	if e.At.IsZero() {
		e.At = a.clock.Now()
	}
	snapshot, err := a.store.Dispatch(ctx, a.visitorID, e)
	if err != nil {
		return visitor.Context{}, fmt.Errorf("dispatch %s: %w", e.Type, err)
	}
	return snapshot, nil
}
