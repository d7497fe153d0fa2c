// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package contextstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/clock"
	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/visitor"
)

// TopicVisitorEvents is the watermill topic applied events are published on.
const TopicVisitorEvents = "visitor.events"

// Message metadata keys.
const (
	MetadataEventType = "event_type"
	MetadataVisitorID = "visitor_id"
)

// Reader returns visitor snapshots.
type Reader interface {
	Read(ctx context.Context, visitorID string) (visitor.Context, error)
}

// Dispatcher applies events to visitor snapshots.
type Dispatcher interface {
	Dispatch(ctx context.Context, visitorID string, e Event) (visitor.Context, error)
}

// Store is the full context store contract.
type Store interface {
	Reader
	Dispatcher
}

type entry struct {
	snapshot visitor.Context
	version  uint64
	dirty    bool
	touched  time.Time
}

// MemoryStore keeps snapshots in memory, optionally backed by a Persister
// and mirrored to a watermill Publisher. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	deletes uint64

	persister Persister
	publisher message.Publisher
	topic     string
	clock     clock.Clock
	logger    zerolog.Logger
	ids       *idGenerator
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithPersister enables snapshot rehydration and Flush.
func WithPersister(p Persister) Option {
	return func(s *MemoryStore) { s.persister = p }
}

// WithPublisher mirrors applied events to pub on TopicVisitorEvents.
func WithPublisher(pub message.Publisher) Option {
	return func(s *MemoryStore) { s.publisher = pub }
}

// WithTopic overrides the publish topic.
func WithTopic(topic string) Option {
	return func(s *MemoryStore) { s.topic = topic }
}

// WithClock sets the clock used to timestamp events.
func WithClock(c clock.Clock) Option {
	return func(s *MemoryStore) { s.clock = c }
}

// WithLogger sets the logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func WithLogger(l zerolog.Logger) Option {
	return func(s *MemoryStore) { s.logger = l }
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		topic:   TopicVisitorEvents,
		clock:   clock.Real{},
		logger:  zerolog.Nop(),
		ids:     newIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.clock = clock.OrReal(s.clock)
	s.logger = s.logger.With().Str("component", "contextstore").Logger()
	return s
}

// Read returns the visitor's current snapshot. Unknown visitors get an empty
// context. The returned value is a copy.
func (s *MemoryStore) Read(ctx context.Context, visitorID string) (visitor.Context, error) {
	if visitorID == "" {
		return visitor.Context{}, fmt.Errorf("read: empty visitor id")
	}

	s.mu.RLock()
	e, ok := s.entries[visitorID]
	var snapshot visitor.Context
	if ok {
		snapshot = e.snapshot.Clone()
	}
	s.mu.RUnlock()
	if ok {
		return snapshot, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.entryLocked(ctx, visitorID)
	if err != nil {
		return visitor.Context{}, err
	}
	return e.snapshot.Clone(), nil
}

// entryLocked returns the entry for visitorID, rehydrating it from the
// persister or creating an empty one. Caller must hold mu for writing; it is
// released while the persister is read so other visitors are not blocked.
func (s *MemoryStore) entryLocked(ctx context.Context, visitorID string) (*entry, error) {
	for {
		if e, ok := s.entries[visitorID]; ok {
			return e, nil
		}

		gen := s.deletes
		s.mu.Unlock()
		snapshot, err := s.load(ctx, visitorID)
		s.mu.Lock()
		if err != nil {
			return nil, err
		}

		if e, ok := s.entries[visitorID]; ok {
			return e, nil
		}
		if gen != s.deletes {
			continue
		}
		e := &entry{snapshot: snapshot, touched: s.clock.Now()}
		s.entries[visitorID] = e
		return e, nil
	}
}

// load reads a persisted snapshot, falling back to an empty context.
func (s *MemoryStore) load(ctx context.Context, visitorID string) (visitor.Context, error) {
	if s.persister == nil {
		return visitor.New(visitorID), nil
	}

	loaded, err := s.persister.Load(ctx, visitorID)
	switch {
	case err == nil:
		s.logger.Debug().Str("visitor_id", visitorID).Msg("rehydrated visitor snapshot")
		return visitor.Derive(loaded), nil
	case errors.Is(err, ErrNotFound):
		return visitor.New(visitorID), nil
	default:
		return visitor.Context{}, fmt.Errorf("load snapshot %s: %w", visitorID, err)
	}
}

// Dispatch applies e to the visitor's snapshot and returns the new snapshot.
// Events without an ID or timestamp get one assigned.
func (s *MemoryStore) Dispatch(ctx context.Context, visitorID string, e Event) (visitor.Context, error) {
	if visitorID == "" {
		return visitor.Context{}, fmt.Errorf("dispatch: empty visitor id")
	}

	now := s.clock.Now()
	if e.At.IsZero() {
		e.At = now
	}
	if e.ID == "" {
		e.ID = s.ids.next(e.At)
	}
	e.VisitorID = visitorID

	s.mu.Lock()
	current, err := s.entryLocked(ctx, visitorID)
	if err != nil {
		s.mu.Unlock()
		return visitor.Context{}, err
	}
	next, err := Reduce(current.snapshot, e)
	if err != nil {
		s.mu.Unlock()
		return visitor.Context{}, fmt.Errorf("dispatch %s: %w", e.Type, err)
	}
	current.snapshot = next
	current.version++
	current.dirty = true
	current.touched = now
	s.mu.Unlock()

	metrics.VisitorEvents.WithLabelValues(string(e.Type)).Inc()
	s.checkAdvisory(e, next)
	s.publish(e)

	return next.Clone(), nil
}

// checkAdvisory logs UPDATE_JOURNEY / UPDATE_ENGAGEMENT events whose value
// disagrees with the derived one.
//
//nolint:gocritic // hugeParam: snapshots are passed by value for immutability
func (s *MemoryStore) checkAdvisory(e Event, next visitor.Context) {
	switch {
	case e.Type == EventUpdateJourney && e.Stage != next.Journey:
		s.logger.Debug().
			Str("visitor_id", e.VisitorID).
			Str("claimed", string(e.Stage)).
			Str("derived", string(next.Journey)).
			Msg("journey update disagrees with derived stage")
	case e.Type == EventUpdateEngagement && e.Level != next.EngagementLevel:
		s.logger.Debug().
			Str("visitor_id", e.VisitorID).
			Str("claimed", string(e.Level)).
			Str("derived", string(next.EngagementLevel)).
			Msg("engagement update disagrees with derived level")
	}
}

func (s *MemoryStore) publish(e Event) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(e)
	if err != nil {
		metrics.VisitorEventsPublished.WithLabelValues("failure").Inc()
		s.logger.Error().Err(err).Str("event_id", e.ID).Msg("marshal event")
		return
	}

	msg := message.NewMessage(e.ID, payload)
	msg.Metadata.Set(MetadataEventType, string(e.Type))
	msg.Metadata.Set(MetadataVisitorID, e.VisitorID)

	if err := s.publisher.Publish(s.topic, msg); err != nil {
		metrics.VisitorEventsPublished.WithLabelValues("failure").Inc()
		s.logger.Warn().Err(err).Str("event_id", e.ID).Str("topic", s.topic).Msg("publish event")
		return
	}
	metrics.VisitorEventsPublished.WithLabelValues("success").Inc()
}

// Delete forgets a visitor, in memory and in the persister.
func (s *MemoryStore) Delete(ctx context.Context, visitorID string) error {
	s.mu.Lock()
	delete(s.entries, visitorID)
	s.deletes++
	s.mu.Unlock()

	if s.persister != nil {
		err := s.persister.Delete(ctx, visitorID)
		s.mu.Lock()
		s.deletes++
		s.mu.Unlock()
		if err != nil {
			return fmt.Errorf("delete snapshot %s: %w", visitorID, err)
		}
	}
	return nil
}

// Flush writes every dirty snapshot to the persister. It returns the number
// of snapshots written and the first error encountered.
func (s *MemoryStore) Flush(ctx context.Context) (int, error) {
	if s.persister == nil {
		return 0, nil
	}

	type pendingSnapshot struct {
		snapshot visitor.Context
		version  uint64
	}

	s.mu.RLock()
	pending := make([]pendingSnapshot, 0)
	for _, e := range s.entries {
		if e.dirty {
			pending = append(pending, pendingSnapshot{snapshot: e.snapshot, version: e.version})
		}
	}
	s.mu.RUnlock()

	written := 0
	var firstErr error
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := s.persister.Save(ctx, p.snapshot); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
		s.markClean(p.snapshot.VisitorID, p.version)
	}
	return written, firstErr
}

// markClean clears the dirty flag unless the snapshot changed after version.
func (s *MemoryStore) markClean(visitorID string, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[visitorID]; ok && e.version == version {
		e.dirty = false
	}
}

// Evict drops snapshots untouched for longer than idle. Dirty snapshots are
// kept until they have been flushed. It returns the number evicted.
func (s *MemoryStore) Evict(idle time.Duration) int {
	cutoff := s.clock.Now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.entries {
		if e.touched.Before(cutoff) && (!e.dirty || s.persister == nil) {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of snapshots held in memory.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
