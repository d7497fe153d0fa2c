// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package behavior turns raw page events into context-store events.

An Aggregator belongs to one visitor. Its handlers (OnVisitStart,
OnPageEnter, OnPageLeave, OnScroll, OnClick, OnSearch) are serialized by a
mutex so events apply in arrival order, and every change reaches the visitor
snapshot through contextstore.Dispatcher. The aggregator itself only keeps
session scratch state: page entry timestamps and the deepest scroll seen on
each page.

Leaving a page dispatches ADD_PAGE_VISIT, then UPDATE_ENGAGEMENT and
UPDATE_JOURNEY carrying the values derived from the updated snapshot.
Engagement is computed over cumulative totals for the whole visitor, not the
page just closed.

Scrolling past InterestDepth on a page with a known category (see
PageCategory) adds that category as an interest and nudges the resonance
score. Scroll handling is rate limited per visitor; throttled events still
update the maximum depth.

Manager hands out one Aggregator per visitor and evicts idle ones.
*/
package behavior
