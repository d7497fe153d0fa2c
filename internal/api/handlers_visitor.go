// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/resonance/internal/logging"
	"github.com/tomtom215/resonance/internal/models"
	"github.com/tomtom215/resonance/internal/visitor"
)

// CreateVisitor handles POST /api/v1/visitors.
// It issues a fresh anonymous visitor ID with an empty context.
func (h *Handler) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	visitorID := uuid.NewString()

	vc, err := h.store.Read(r.Context(), visitorID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	logging.Ctx(logging.ContextWithVisitorID(r.Context(), visitorID)).Info().Msg("Visitor created")
	respondSuccess(w, r, http.StatusCreated, models.VisitorCreated{VisitorID: visitorID, Context: vc})
}

// GetContext handles GET /api/v1/visitors/{visitorID}/context.
// Unknown visitors receive an empty context.
func (h *Handler) GetContext(w http.ResponseWriter, r *http.Request) {
	vc, err := h.store.Read(r.Context(), chi.URLParam(r, "visitorID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, vc)
}

// DeleteVisitor handles DELETE /api/v1/visitors/{visitorID}.
func (h *Handler) DeleteVisitor(w http.ResponseWriter, r *http.Request) {
	visitorID := chi.URLParam(r, "visitorID")

	h.sessions.Remove(visitorID)
	if err := h.store.Delete(r.Context(), visitorID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Visitor deleted")
	w.WriteHeader(http.StatusNoContent)
}

// PostEvent handles POST /api/v1/visitors/{visitorID}/events.
// The event is routed to the visitor's behavior aggregator and the
// resulting snapshot is returned.
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if err := req.checkFields(); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), nil)
		return
	}

	agg := h.sessions.Get(chi.URLParam(r, "visitorID"))
	ctx := r.Context()

	var (
		vc  visitor.Context
		err error
	)
	switch req.Type {
	case EventVisitStart:
		vc, err = agg.OnVisitStart(ctx, req.Location.toLocation())
	case EventPageEnter:
		vc, err = agg.OnPageEnter(ctx, req.Page)
	case EventPageLeave:
		vc, err = agg.OnPageLeave(ctx, req.Page)
	case EventScroll:
		vc, err = agg.OnScroll(ctx, *req.Depth)
	case EventClick:
		vc, err = agg.OnClick(ctx, req.Target)
	case EventSearch:
		vc, err = agg.OnSearch(ctx, req.Query)
	}
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusAccepted, models.EventAccepted{Type: req.Type, Context: vc})
}
