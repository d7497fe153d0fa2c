// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package contextstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/resonance/internal/metrics"
	"github.com/tomtom215/resonance/internal/visitor"
)

// ErrNotFound is returned when no snapshot is stored for a visitor.
var ErrNotFound = errors.New("visitor snapshot not found")

// Key prefix for BadgerDB storage
const snapshotKeyPrefix = "visitor:"

// Persister loads and saves visitor snapshots across sessions.
type Persister interface {
	Load(ctx context.Context, visitorID string) (visitor.Context, error)
	Save(ctx context.Context, snapshot visitor.Context) error
	Delete(ctx context.Context, visitorID string) error
}

// BadgerConfig configures the snapshot database.
type BadgerConfig struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string
	// InMemory keeps all data in RAM (tests, ephemeral deployments).
	InMemory bool
	// TTL expires snapshots of visitors who do not come back. Zero disables expiry.
	TTL time.Duration
}

// BadgerPersister implements Persister using BadgerDB for durable storage.
type BadgerPersister struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerPersister opens (or creates) the snapshot database.
func OpenBadgerPersister(cfg BadgerConfig) (*BadgerPersister, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerPersister{db: db, ttl: cfg.TTL}, nil
}

// NewBadgerPersister wraps an already open database.
func NewBadgerPersister(db *badger.DB, ttl time.Duration) *BadgerPersister {
	return &BadgerPersister{db: db, ttl: ttl}
}

// Load retrieves a snapshot by visitor ID.
func (p *BadgerPersister) Load(_ context.Context, visitorID string) (visitor.Context, error) {
	var snapshot visitor.Context

	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKeyPrefix + visitorID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snapshot)
		})
	})
	if !errors.Is(err, ErrNotFound) {
		metrics.RecordSnapshot("load", err)
	}
	if err != nil {
		return visitor.Context{}, err
	}
	return snapshot, nil
}

// Save stores a snapshot, replacing any previous one.
//
//nolint:gocritic // hugeParam: snapshots are passed by value for immutability
func (p *BadgerPersister) Save(_ context.Context, snapshot visitor.Context) error {
	if snapshot.VisitorID == "" {
		return fmt.Errorf("save snapshot: empty visitor id")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	err = p.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(snapshotKeyPrefix+snapshot.VisitorID), data)
		if p.ttl > 0 {
			entry = entry.WithTTL(p.ttl)
		}
		return txn.SetEntry(entry)
	})
	metrics.RecordSnapshot("save", err)
	if err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Delete removes a snapshot. Deleting a missing snapshot is not an error.
func (p *BadgerPersister) Delete(_ context.Context, visitorID string) error {
	err := p.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(snapshotKeyPrefix + visitorID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		return nil
	})
	metrics.RecordSnapshot("delete", err)
	return err
}

// Count returns the number of stored snapshots.
func (p *BadgerPersister) Count() (int, error) {
	count := 0
	err := p.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(snapshotKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims space in the value log. It returns nil when there was
// nothing to collect.
func (p *BadgerPersister) RunGC() error {
	err := p.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (p *BadgerPersister) Close() error {
	return p.db.Close()
}
