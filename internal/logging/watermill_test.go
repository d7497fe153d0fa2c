// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestWatermillLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	adapter := NewWatermillLogger(NewTestLogger(&buf).Level(zerolog.DebugLevel))

	adapter.Info("subscribed", watermill.LogFields{"topic": "visitor.events"})
	adapter.Error("publish failed", errors.New("closed"), nil)
	adapter.Trace("too verbose", nil)
	adapter.With(watermill.LogFields{"handler": "consumer"}).Debug("ack", nil)

	out := buf.String()
	for _, want := range []string{
		`"component":"watermill"`,
		`"topic":"visitor.events"`,
		`"error":"closed"`,
		`"handler":"consumer"`,
		`"message":"ack"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
	if strings.Contains(out, "too verbose") {
		t.Errorf("trace emitted at debug level: %s", out)
	}
}
