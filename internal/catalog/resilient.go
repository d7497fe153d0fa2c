// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/resonance/internal/content"
	"github.com/tomtom215/resonance/internal/geo"
	"github.com/tomtom215/resonance/internal/metrics"
)

// ContentSource is the content lookup contract served by this package.
type ContentSource interface {
	GetByType(ctx context.Context, contentType string) (*content.Item, error)
	GetRecommendationsFor(ctx context.Context, contentType string) ([]content.Item, error)
}

// StoreSource is the store lookup contract served by this package.
type StoreSource interface {
	GetNearby(ctx context.Context, at geo.Coordinate, opts content.NearbyOptions) ([]content.Nearby, error)
	GetByDistrict(ctx context.Context, district string) ([]content.Item, error)
}

// BreakerConfig configures a repository circuit breaker.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests" validate:"gte=1"`
	// Interval resets the failure counts while closed. Zero never resets.
	Interval time.Duration `koanf:"interval" validate:"gte=0"`
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
	// FailureThreshold is the consecutive failure count that opens the breaker.
	FailureThreshold uint32 `koanf:"failure_threshold" validate:"gte=1"`
}

// DefaultBreakerConfig returns the production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// breaker wraps a gobreaker instance with metrics and logging.
type breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker[any]
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newBreaker(name string, cfg BreakerConfig, logger zerolog.Logger) *breaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	logger = logger.With().Str("component", "catalog").Str("breaker", name).Logger()
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})
	return &breaker{name: name, cb: cb}
}

// execute runs fn through the breaker. Every failure, including a rejection
// by an open breaker, is returned wrapped in ErrLookupFailure.
func (b *breaker) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		return result, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrLookupFailure, b.name, err)
}

// State returns the breaker state name.
func (b *breaker) State() string {
	return b.cb.State().String()
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// castResult type-asserts a breaker result.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: unexpected result type %T", ErrLookupFailure, result)
	}
	return typed, nil
}

// ResilientContentRepository guards a ContentSource with a circuit breaker.
type ResilientContentRepository struct {
	next ContentSource
	b    *breaker
}

// NewResilientContentRepository wraps next.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResilientContentRepository(next ContentSource, cfg BreakerConfig, logger zerolog.Logger) *ResilientContentRepository {
	return &ResilientContentRepository{next: next, b: newBreaker("content-repository", cfg, logger)}
}

// GetByType implements ContentSource.
func (r *ResilientContentRepository) GetByType(ctx context.Context, contentType string) (*content.Item, error) {
	return castResult[*content.Item](r.b.execute(func() (any, error) {
		return r.next.GetByType(ctx, contentType)
	}))
}

// GetRecommendationsFor implements ContentSource.
func (r *ResilientContentRepository) GetRecommendationsFor(ctx context.Context, contentType string) ([]content.Item, error) {
	return castResult[[]content.Item](r.b.execute(func() (any, error) {
		return r.next.GetRecommendationsFor(ctx, contentType)
	}))
}

// State returns the breaker state name.
func (r *ResilientContentRepository) State() string {
	return r.b.State()
}

// ResilientStoreRepository guards a StoreSource with a circuit breaker.
type ResilientStoreRepository struct {
	next StoreSource
	b    *breaker
}

// NewResilientStoreRepository wraps next.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResilientStoreRepository(next StoreSource, cfg BreakerConfig, logger zerolog.Logger) *ResilientStoreRepository {
	return &ResilientStoreRepository{next: next, b: newBreaker("store-repository", cfg, logger)}
}

// GetNearby implements StoreSource.
func (r *ResilientStoreRepository) GetNearby(ctx context.Context, at geo.Coordinate, opts content.NearbyOptions) ([]content.Nearby, error) {
	return castResult[[]content.Nearby](r.b.execute(func() (any, error) {
		return r.next.GetNearby(ctx, at, opts)
	}))
}

// GetByDistrict implements StoreSource.
func (r *ResilientStoreRepository) GetByDistrict(ctx context.Context, district string) ([]content.Item, error) {
	return castResult[[]content.Item](r.b.execute(func() (any, error) {
		return r.next.GetByDistrict(ctx, district)
	}))
}

// State returns the breaker state name.
func (r *ResilientStoreRepository) State() string {
	return r.b.State()
}
