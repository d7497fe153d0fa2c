// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/models"
)

// GetRecommendations handles GET /api/v1/visitors/{visitorID}/recommendations.
//
// Query parameters:
//   - limit: maximum items (1-50, default all)
//
// Strategy failures never fail the request; Degraded reports the fallback list.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	limit, ok := getIntParam(r, "limit", 0)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "limit must be an integer", nil)
		return
	}
	req := RecommendationsRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	visitorID := chi.URLParam(r, "visitorID")
	vc, err := h.store.Read(r.Context(), visitorID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	resp := h.composer.Recommend(r.Context(), vc)
	items := resp.Top(req.Limit)

	logging.Ctx(r.Context()).Debug().
		Int("items", len(items)).
		Bool("degraded", resp.Degraded).
		Msg("Recommendations served")

	respondSuccess(w, r, http.StatusOK, models.RecommendationsResponse{
		VisitorID:   visitorID,
		Items:       items,
		Strategies:  resp.Strategies,
		Degraded:    resp.Degraded,
		GeneratedAt: resp.GeneratedAt,
	})
}

// GetNextActions handles GET /api/v1/visitors/{visitorID}/next-actions.
func (h *Handler) GetNextActions(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, "visitorID")
	vc, err := h.store.Read(r.Context(), visitorID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.NextActionsResponse{
		VisitorID: visitorID,
		Journey:   vc.Journey,
		Actions:   h.composer.NextActions(vc),
	})
}

// GetResonance handles GET /api/v1/visitors/{visitorID}/resonance/{contentID}.
func (h *Handler) GetResonance(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, "visitorID")
	contentID := chi.URLParam(r, "contentID")

	item, err := h.catalog.Get(r.Context(), contentID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	vc, err := h.store.Read(r.Context(), visitorID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.ResonanceResponse{
		VisitorID: visitorID,
		Content:   item,
		Result:    h.scorer.Calculate(vc, item),
	})
}
