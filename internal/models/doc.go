// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

/*
Package models defines the JSON shapes served by the Resonance HTTP API.

Every response is wrapped in APIResponse:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-10-20T11:00:00Z", "request_id": "..."}
	}

Errors carry an APIError with a machine-readable code:

	{
	  "status": "error",
	  "error": {"code": "VALIDATION_ERROR", "message": "depth must be less than or equal to 100"},
	  "metadata": {"timestamp": "2026-10-20T11:00:00Z"}
	}

Domain payloads (visitor.Context, recommend.Item, resonance.Result) are
embedded as-is; this package only adds the envelopes around them.
*/
package models
