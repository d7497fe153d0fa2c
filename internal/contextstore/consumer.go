// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package contextstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/resonance/internal/metrics"
)

// Subscriber is the subset of message.Subscriber the consumer needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// EventHandler is invoked for each decoded event. Returning an error nacks the message.
type EventHandler func(ctx context.Context, e Event) error

// ConsumerStats holds runtime statistics for monitoring.
type ConsumerStats struct {
	MessagesReceived  int64
	MessagesProcessed int64
	ParseErrors       int64
	HandlerErrors     int64
	LastMessageTime   time.Time
}

// EventConsumer reads applied visitor events back off the bus. It is run
// as a supervised service: Serve blocks until ctx is canceled.
type EventConsumer struct {
	source  Subscriber
	topic   string
	handler EventHandler
	logger  zerolog.Logger

	messagesReceived  atomic.Int64
	messagesProcessed atomic.Int64
	parseErrors       atomic.Int64
	handlerErrors     atomic.Int64
	lastMessageTime   atomic.Value // time.Time
}

// NewEventConsumer creates a consumer for topic. handler may be nil, in which
// case events are only counted and logged.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEventConsumer(source Subscriber, topic string, handler EventHandler, logger zerolog.Logger) (*EventConsumer, error) {
	if source == nil {
		return nil, fmt.Errorf("message source required")
	}
	if topic == "" {
		topic = TopicVisitorEvents
	}
	c := &EventConsumer{
		source:  source,
		topic:   topic,
		handler: handler,
		logger:  logger.With().Str("component", "event-consumer").Str("topic", topic).Logger(),
	}
	c.lastMessageTime.Store(time.Time{})
	return c, nil
}

// Serve subscribes and processes messages until ctx is done or the
// subscription channel closes.
func (c *EventConsumer) Serve(ctx context.Context) error {
	messages, err := c.source.Subscribe(ctx, c.topic)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.topic, err)
	}

	c.logger.Info().Msg("Event consumer started")
	defer c.logger.Info().Msg("Event consumer stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return ctx.Err()
			}
			c.processMessage(ctx, msg)
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (c *EventConsumer) String() string {
	return "event-consumer"
}

func (c *EventConsumer) processMessage(ctx context.Context, msg *message.Message) {
	c.messagesReceived.Add(1)
	c.lastMessageTime.Store(time.Now())

	var e Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		c.parseErrors.Add(1)
		c.logger.Warn().Err(err).Str("message_uuid", msg.UUID).Msg("Discarding unparseable event")
		// Poison messages are acked so they are not redelivered forever.
		msg.Ack()
		return
	}

	if c.handler != nil {
		if err := c.handler(ctx, e); err != nil {
			c.handlerErrors.Add(1)
			c.logger.Error().Err(err).Str("event_id", e.ID).Msg("Event handler failed")
			msg.Nack()
			return
		}
	}

	metrics.VisitorEventsConsumed.WithLabelValues(string(e.Type)).Inc()
	c.messagesProcessed.Add(1)
	c.logger.Debug().
		Str("event_id", e.ID).
		Str("event_type", string(e.Type)).
		Str("visitor_id", e.VisitorID).
		Msg("Consumed visitor event")
	msg.Ack()
}

// Stats returns current runtime statistics.
func (c *EventConsumer) Stats() ConsumerStats {
	var last time.Time
	if t, ok := c.lastMessageTime.Load().(time.Time); ok {
		last = t
	}
	return ConsumerStats{
		MessagesReceived:  c.messagesReceived.Load(),
		MessagesProcessed: c.messagesProcessed.Load(),
		ParseErrors:       c.parseErrors.Load(),
		HandlerErrors:     c.handlerErrors.Load(),
		LastMessageTime:   last,
	}
}
