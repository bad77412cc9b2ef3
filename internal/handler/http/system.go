// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// maxLogsLimit caps the ?limit of GET /api/system/logs.
const maxLogsLimit = 500

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SystemService.Health(r.Context()), http.StatusOK)
}

func (h *Handler) systemStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.services.SystemService.Status(r.Context())
	if err != nil {
		respondError(w, r, err, "error getting system status")
		return
	}
	utils.WriteJSON(w, status, http.StatusOK)
}

func (h *Handler) setMaintenance(w http.ResponseWriter, r *http.Request) {
	adminID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.MaintenanceRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid maintenance request")
		return
	}
	if req.Maintenance == nil {
		respondError(w, r, validators.NewValidationError("maintenance", "maintenance is required"), "invalid maintenance request")
		return
	}

	resp, err := h.services.SystemService.SetMaintenance(r.Context(), adminID, *req.Maintenance)
	if err != nil {
		respondError(w, r, err, "error setting maintenance mode")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

// systemLogs returns the newest activity log entries. An optional ?limit
// between 1 and maxLogsLimit overrides the default of 100.
func (h *Handler) systemLogs(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 || parsed > maxLogsLimit {
			respondError(w, r, validators.NewValidationError("limit", "limit must be between 1 and %d", maxLogsLimit), "invalid logs limit")
			return
		}
		limit = parsed
	}

	logs, err := h.services.SystemService.Logs(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, "error listing logs")
		return
	}
	utils.WriteJSON(w, logs, http.StatusOK)
}
