// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*PeriodicService)(nil)

func TestNewPeriodicService_InvalidInterval(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	for _, d := range []time.Duration{0, -time.Second} {
		if _, err := NewPeriodicService("x", d, noop, zerolog.Nop()); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("interval %v: err = %v, want ErrInvalidInterval", d, err)
		}
	}
}

func TestPeriodicService_RunsAndSurvivesFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	task := func(context.Context) error {
		if calls.Add(1)%2 == 0 {
			return errors.New("flush failed")
		}
		return nil
	}

	svc, err := NewPeriodicService("snapshot-flusher", 5*time.Millisecond, task, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPeriodicService() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 4 {
		select {
		case <-deadline:
			t.Fatalf("task ran %d times, want >= 4", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	runs, failures := svc.Runs()
	if runs < 4 || failures < 2 {
		t.Errorf("Runs() = %d, %d", runs, failures)
	}
	if svc.String() != "snapshot-flusher" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestPeriodicService_RunOnStop(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	svc, err := NewPeriodicService("flusher", time.Hour, func(ctx context.Context) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		calls.Add(1)
		return nil
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPeriodicService() error = %v", err)
	}
	svc.RunOnStop = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("final pass ran %d times, want 1", calls.Load())
	}
}
