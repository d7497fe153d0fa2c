// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/resonance/internal/behavior"
	"github.com/tomtom215/resonance/internal/catalog"
	"github.com/tomtom215/resonance/internal/contextstore"
)

// Error codes for API responses
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeLookupFailed     = "LOOKUP_FAILED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeNotReady         = "SERVICE_UNAVAILABLE"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// ErrMissingDependency is returned by NewHandler when a required collaborator is nil.
var ErrMissingDependency = errors.New("api handler dependency missing")

// classifyError maps domain errors to an HTTP status and error code.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, contextstore.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, catalog.ErrLookupFailure):
		return http.StatusServiceUnavailable, ErrCodeLookupFailed
	case errors.Is(err, behavior.ErrPageNotEntered):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, behavior.ErrInvalidDepth), errors.Is(err, behavior.ErrEmptyArgument),
		errors.Is(err, contextstore.ErrUnknownEvent):
		return http.StatusBadRequest, ErrCodeValidation
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}
