// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

func (h *Handler) listModules(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	modules, err := h.services.ModuleService.ListModules(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "error listing modules")
		return
	}
	utils.WriteJSON(w, modules, http.StatusOK)
}

// toggleModule starts or stops a module of the caller.
func (h *Handler) toggleModule(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}
	moduleID, err := pathID(r)
	if err != nil {
		respondError(w, r, err, "invalid module id")
		return
	}

	var req models.ToggleModuleRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid toggle request")
		return
	}
	if req.Enabled == nil {
		respondError(w, r, validators.NewValidationError("enabled", "enabled is required"), "invalid toggle request")
		return
	}

	module, err := h.services.ModuleService.SetEnabled(r.Context(), userID, moduleID, *req.Enabled)
	if err != nil {
		respondError(w, r, err, "error toggling module")
		return
	}
	utils.WriteJSON(w, module, http.StatusOK)
}

func (h *Handler) updateModuleSettings(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}
	moduleID, err := pathID(r)
	if err != nil {
		respondError(w, r, err, "invalid module id")
		return
	}

	var req models.UpdateModuleSettingsRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid settings request")
		return
	}

	module, err := h.services.ModuleService.UpdateSettings(r.Context(), userID, moduleID, req.Settings)
	if err != nil {
		respondError(w, r, err, "error updating module settings")
		return
	}
	utils.WriteJSON(w, module, http.StatusOK)
}
