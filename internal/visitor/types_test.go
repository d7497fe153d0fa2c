// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package visitor

import (
	"testing"

	"github.com/tomtom215/resonance/internal/geo"
)

func TestContext_Clone(t *testing.T) {
	t.Parallel()

	orig := New("v1")
	orig.Location = &Location{Coordinates: &geo.Coordinate{Lon: 102.71, Lat: 25.04}, District: "五华区"}
	orig.Interests = []Interest{{Category: "training", Level: 5, Keywords: []string{"professional"}}}
	orig.Behavior.PagesVisited = []string{"/"}

	cp := orig.Clone()
	cp.Location.Coordinates.Lon = 0
	cp.Location.District = "盘龙区"
	cp.Interests[0].Keywords[0] = "changed"
	cp.Interests[0].Level = 9
	cp.Behavior.PagesVisited[0] = "/franchise"

	if orig.Location.Coordinates.Lon != 102.71 {
		t.Error("Clone shares coordinates with original")
	}
	if orig.Location.District != "五华区" {
		t.Error("Clone shares location with original")
	}
	if orig.Interests[0].Keywords[0] != "professional" || orig.Interests[0].Level != 5 {
		t.Error("Clone shares interests with original")
	}
	if orig.Behavior.PagesVisited[0] != "/" {
		t.Error("Clone shares behavior slices with original")
	}
}

func TestContext_PrimaryInterest(t *testing.T) {
	t.Parallel()

	c := New("v1")
	if _, ok := c.PrimaryInterest(); ok {
		t.Error("PrimaryInterest() on empty context should report false")
	}

	c.Interests = []Interest{
		{Category: "stores", Level: 6},
		{Category: "franchise", Level: 8},
		{Category: "training", Level: 8},
	}
	got, ok := c.PrimaryInterest()
	if !ok || got.Category != "franchise" {
		t.Errorf("PrimaryInterest() = %+v, want franchise (first of tied maxima)", got)
	}
	if !c.HasInterest("training") || c.HasInterest("products") {
		t.Error("HasInterest() mismatch")
	}
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	if _, err := ParseJourneyStage("decision"); err != nil {
		t.Errorf("ParseJourneyStage(decision) error = %v", err)
	}
	if _, err := ParseJourneyStage("bogus"); err == nil {
		t.Error("ParseJourneyStage(bogus) should fail")
	}
	if _, err := ParseEngagementLevel("medium"); err != nil {
		t.Errorf("ParseEngagementLevel(medium) error = %v", err)
	}
	if _, err := ParseEngagementLevel(""); err == nil {
		t.Error("ParseEngagementLevel(\"\") should fail")
	}
}
