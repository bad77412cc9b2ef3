// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid register request")
		return
	}

	user, err := h.services.AuthService.Register(ctx, req)
	if err != nil {
		respondError(w, r, err, "error registering user")
		return
	}

	log.Debug().Int64("id", user.ID).Str("username", user.Username).Msg("user registered")
	utils.WriteJSON(w, user.ToResponse(), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid login request")
		return
	}

	resp, err := h.services.AuthService.Login(ctx, req)
	h.metrics.ObserveLogin(err == nil)
	if err != nil {
		respondError(w, r, err, "login failed")
		return
	}

	log.Debug().Int64("id", resp.User.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, resp, http.StatusOK)
}
