// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createAPIKey(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.CreateAPIKeyRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid api key request")
		return
	}

	key, err := h.services.APIKeyService.CreateAPIKey(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error creating api key")
		return
	}
	utils.WriteJSON(w, key, http.StatusCreated)
}

func (h *Handler) listAPIKeys(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	keys, err := h.services.APIKeyService.ListAPIKeys(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "error listing api keys")
		return
	}
	utils.WriteJSON(w, keys, http.StatusOK)
}

func (h *Handler) deleteAPIKey(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	if err = h.services.APIKeyService.DeleteAPIKey(r.Context(), userID, chi.URLParam(r, "service")); err != nil {
		respondError(w, r, err, "error deleting api key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
