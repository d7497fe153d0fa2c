// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package recommend composes a ranked recommendation list for a visitor.
//
// # Architecture
//
// The composer runs five independent strategies over one visitor snapshot:
//
//   - Journey: stage-specific picks for awareness, interest, consideration, decision
//   - Interest: targeted items for interests above per-category thresholds
//   - Engagement: intro, news/FAQ or deep content depending on engagement level
//   - Location: navigation, promo and district items from the store repository
//   - Temporal: business-hours, weekend and evening items from the clock
//
// Strategies run concurrently. Each one gets its own timeout, and an error,
// timeout or panic only drops that strategy's contribution. The surviving
// items are concatenated in strategy order, deduplicated on
// (content type, subtype or action) with the first occurrence winning, and
// stable-sorted by priority descending. When every strategy fails the
// composer answers with a fixed three-item default list and marks the
// response degraded.
//
// # Usage
//
//	composer := recommend.NewComposer(recommend.DefaultConfig(), contents, stores, clk, logger)
//	resp := composer.Recommend(ctx, visitorCtx)
//	for _, item := range resp.Items {
//	    fmt.Println(item.ContentType, item.Priority, item.Reason)
//	}
//	actions := composer.NextActions(visitorCtx)
//
// # Thread Safety
//
// The composer is safe for concurrent use. Strategies only read the snapshot
// they are handed; each receives its own copy.
package recommend
