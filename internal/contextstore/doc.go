// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package contextstore holds visitor context snapshots and applies events to them.

Writers never modify a snapshot in place. Dispatch runs the pure Reduce
function over the current snapshot and swaps in the result, so any snapshot a
reader obtained earlier stays valid and unchanged. Every reduction ends by
re-deriving the journey stage and engagement level; UPDATE_JOURNEY and
UPDATE_ENGAGEMENT events are accepted for compatibility but cannot move those
fields away from what the counters imply.

# Persistence

A Persister (BadgerPersister in production) lets a returning visitor's
snapshot be rehydrated across sessions. Dispatch only marks snapshots dirty;
Flush writes them out and Evict drops idle ones from memory. The supervisor
runs both on a ticker.

# Event Fan-out

When a watermill Publisher is configured, every applied event is published
as JSON on TopicVisitorEvents with the event ID as the message UUID:

	pubsub := gochannel.NewGoChannel(gochannel.Config{}, logging.NewWatermillLogger(logger))
	store := contextstore.NewMemoryStore(contextstore.WithPublisher(pubsub))

Publishing failures are logged and counted but never fail a Dispatch.
*/
package contextstore
