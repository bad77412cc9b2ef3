// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/go-chi/chi/v5"
)

// getStats answers GET /api/stats/{module}?from&to&filter for the caller.
func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	q := r.URL.Query()
	query, err := service.ParseStatsQuery(chi.URLParam(r, "module"), q.Get("from"), q.Get("to"), q.Get("filter"))
	if err != nil {
		respondError(w, r, err, "invalid stats query")
		return
	}

	stats, err := h.services.StatsService.GetStats(r.Context(), userID, query)
	if err != nil {
		respondError(w, r, err, "error getting stats")
		return
	}
	utils.WriteJSON(w, stats, http.StatusOK)
}
