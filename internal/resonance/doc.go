// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package resonance scores how well a content item fits a visitor.

A score is the weighted sum of five components, each in [0, 1]:

	Component   Weight  Signal
	interest    0.35    interest categories and keywords vs. the item's kind and text
	location    0.20    store distance bands, or district/city match
	behavior    0.20    page views, dwell time, matching searches and clicks
	temporal    0.10    business hours, upcoming sessions, weekend/evening
	journey     0.15    funnel stage x content type table

The result carries the per-component breakdown, a strength band
(perfect >= 0.9, strong >= 0.7, moderate >= 0.4, weak) and at least one
human-readable reason.

The scorer never fails. Missing fields fall back to neutral values, so an
empty visitor context or a sparse content item still produces a finite
score. Calculate reads the injected clock once per call and has no other
hidden state, so equal inputs at the same instant give equal results.

Usage:

	scorer := resonance.NewScorer(resonance.DefaultConfig(), clock.Real{})
	result := scorer.Calculate(visitorCtx, item)
	fmt.Println(result.Score, result.Strength, result.Reasons)
*/
package resonance
