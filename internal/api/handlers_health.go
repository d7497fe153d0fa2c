// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package api

import (
	"net/http"

	"github.com/tomtom215/resonance/internal/models"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": h.clock.Now().Sub(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 503 while the catalog is empty or any repository breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	contents, stores := h.catalog.Len()

	status := models.HealthStatus{
		Status:         models.StatusReady,
		Version:        h.version,
		Uptime:         h.clock.Now().Sub(h.startTime).Seconds(),
		ActiveVisitors: h.sessions.Len(),
		ContentItems:   contents,
		Stores:         stores,
		Breakers:       make(map[string]string, len(h.breakers)),
	}

	ready := contents > 0
	for name, b := range h.breakers {
		state := b.State()
		status.Breakers[name] = state
		if state == "open" {
			ready = false
		}
	}

	code := http.StatusOK
	if !ready {
		status.Status = models.StatusNotReady
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, r, code, &models.APIResponse{
		Status: status.Status,
		Data:   status,
	})
}
