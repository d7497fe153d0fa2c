// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/api"
	"github.com/tomtom215/resonance/internal/behavior"
	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/config"
	"github.com/tomtom215/resonance/internal/contextstore"
	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/recommend"
	"github.com/tomtom215/resonance/internal/resonance"
	"github.com/tomtom215/resonance/internal/supervisor"
	"github.com/tomtom215/resonance/internal/supervisor/services"
)

// app holds every long-lived component built from the configuration.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	catalog   *catalog.Catalog
	persister *contextstore.BadgerPersister
	bus       *gochannel.GoChannel
	store     *contextstore.MemoryStore
	sessions  *behavior.Manager
	server    *http.Server
}

// newApp wires the components in dependency order. On error, anything
// already opened is closed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(cfg *config.Config, logger zerolog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			if closeErr := a.close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("Cleanup after failed startup")
			}
		}
	}()

	clk := clock.Real{}

	a.catalog, err = catalog.Open(cfg.Catalog, logger.With().Str("component", "catalog").Logger())
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	opts := []contextstore.Option{
		contextstore.WithClock(clk),
		contextstore.WithLogger(logger.With().Str("component", "contextstore").Logger()),
	}

	if cfg.Store.Persist {
		a.persister, err = contextstore.OpenBadgerPersister(contextstore.BadgerConfig{
			Path:     cfg.Store.Path,
			InMemory: cfg.Store.InMemory,
			TTL:      cfg.Store.SnapshotTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		opts = append(opts, contextstore.WithPersister(a.persister))
		logger.Info().Str("path", cfg.Store.Path).Bool("in_memory", cfg.Store.InMemory).Msg("Snapshot persistence enabled")
	}

	if cfg.Events.Enabled {
		a.bus = gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.Events.Buffer,
		}, logging.NewWatermillLogger(logger.With().Str("component", "watermill").Logger()))
		opts = append(opts, contextstore.WithPublisher(a.bus), contextstore.WithTopic(cfg.Events.Topic))
	}

	a.store = contextstore.NewMemoryStore(opts...)
	a.sessions = behavior.NewManager(a.store, cfg.Behavior, clk, logger.With().Str("component", "behavior").Logger())

	handler, err := api.NewHandler(api.Dependencies{
		Store:    a.store,
		Sessions: a.sessions,
		Scorer:   resonance.NewScorer(&cfg.Scoring, clk),
		Composer: recommend.NewComposer(&cfg.Recommend, a.catalog.Contents, a.catalog.Stores, clk,
			logger.With().Str("component", "recommend").Logger()),
		Catalog: a.catalog,
		Breakers: map[string]api.BreakerState{
			"content-repository": a.catalog.Contents,
			"store-repository":   a.catalog.Stores,
		},
		Clock:   clk,
		Version: version,
	})
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	))

	a.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return a, nil
}

// tree builds the supervisor tree for the wired components.
func (a *app) tree() (*supervisor.Tree, error) {
	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = a.cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(a.logger), treeCfg)

	maintenance := a.logger.With().Str("component", "maintenance").Logger()

	if a.persister != nil {
		flusher, err := services.NewPeriodicService("snapshot-flusher", a.cfg.Store.FlushInterval, a.flush, maintenance)
		if err != nil {
			return nil, fmt.Errorf("snapshot flusher: %w", err)
		}
		flusher.RunOnStop = true
		tree.AddDataService(flusher)

		gc, err := services.NewPeriodicService("badger-gc", a.cfg.Store.GCInterval, func(context.Context) error {
			return a.persister.RunGC()
		}, maintenance)
		if err != nil {
			return nil, fmt.Errorf("badger gc: %w", err)
		}
		tree.AddDataService(gc)
	}

	evictor, err := services.NewPeriodicService("context-evictor", max(a.cfg.Store.IdleTTL/2, time.Second), a.evict, maintenance)
	if err != nil {
		return nil, fmt.Errorf("context evictor: %w", err)
	}
	tree.AddDataService(evictor)

	if a.bus != nil {
		consumer, err := contextstore.NewEventConsumer(a.bus, a.cfg.Events.Topic, nil,
			a.logger.With().Str("component", "events").Logger())
		if err != nil {
			return nil, err
		}
		tree.AddMessagingService(consumer)
	}
	tree.AddMessagingService(a.sessions)

	tree.AddAPIService(services.NewHTTPServerService(a.server, a.cfg.Server.ShutdownTimeout))
	return tree, nil
}

func (a *app) flush(ctx context.Context) error {
	written, err := a.store.Flush(ctx)
	if written > 0 {
		a.logger.Debug().Int("snapshots", written).Msg("Flushed visitor snapshots")
	}
	return err
}

func (a *app) evict(context.Context) error {
	if n := a.store.Evict(a.cfg.Store.IdleTTL); n > 0 {
		a.logger.Debug().Int("evicted", n).Int("resident", a.store.Len()).Msg("Evicted idle visitor contexts")
	}
	return nil
}

// run serves until ctx is canceled.
func (a *app) run(ctx context.Context) error {
	tree, err := a.tree()
	if err != nil {
		return err
	}

	a.logger.Info().Str("addr", a.server.Addr).Msg("HTTP server listening")
	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			a.logger.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	return err
}

// close releases the event bus and the snapshot database. Safe to call on
// a partially built app.
func (a *app) close() error {
	var errs []error
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if a.persister != nil && a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := a.store.Flush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("final flush: %w", err))
		}
		cancel()
	}
	if a.persister != nil {
		if err := a.persister.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close snapshot store: %w", err))
		}
	}
	return errors.Join(errs...)
}
