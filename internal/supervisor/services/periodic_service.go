// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Task is one maintenance pass.
type Task func(ctx context.Context) error

// PeriodicService runs a Task every interval until its context ends.
//
// A failed pass is logged and retried on the next tick; it never stops the
// service. When RunOnStop is set the task runs once more during shutdown,
// which lets the snapshot flusher persist the final dirty contexts.
type PeriodicService struct {
	name     string
	interval time.Duration
	task     Task
	logger   zerolog.Logger

	// RunOnStop runs the task a final time with StopTimeout when the
	// service is stopped.
	RunOnStop   bool
	StopTimeout time.Duration

	runs     atomic.Int64
	failures atomic.Int64
}

// ErrInvalidInterval is returned by NewPeriodicService for a non-positive interval.
var ErrInvalidInterval = errors.New("periodic service interval must be positive")

// NewPeriodicService creates a service that calls task every interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPeriodicService(name string, interval time.Duration, task Task, logger zerolog.Logger) (*PeriodicService, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &PeriodicService{
		name:        name,
		interval:    interval,
		task:        task,
		logger:      logger.With().Str("service", name).Logger(),
		StopTimeout: 5 * time.Second,
	}, nil
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if p.RunOnStop {
				stopCtx, cancel := context.WithTimeout(context.Background(), p.StopTimeout)
				p.run(stopCtx)
				cancel()
			}
			return ctx.Err()
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *PeriodicService) run(ctx context.Context) {
	p.runs.Add(1)
	if err := p.task(ctx); err != nil {
		p.failures.Add(1)
		p.logger.Warn().Err(err).Msg("Maintenance pass failed")
	}
}

// Runs returns how many passes have run, and how many of them failed.
func (p *PeriodicService) Runs() (runs, failures int64) {
	return p.runs.Load(), p.failures.Load()
}

// String implements fmt.Stringer for supervisor logging.
func (p *PeriodicService) String() string {
	return p.name
}
