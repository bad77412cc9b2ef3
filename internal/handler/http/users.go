// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
)

// Administrative user management. Every route here is mounted behind auth
// and requireAdmin.

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err, "error listing users")
		return
	}
	utils.WriteJSON(w, models.ToResponses(users), http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err, "invalid user id")
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, r, err, "error getting user")
		return
	}
	utils.WriteJSON(w, user.ToResponse(), http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid create user request")
		return
	}

	user, err := h.services.UserService.CreateUser(r.Context(), req)
	if err != nil {
		respondError(w, r, err, "error creating user")
		return
	}
	utils.WriteJSON(w, user.ToResponse(), http.StatusCreated)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err, "invalid user id")
		return
	}

	var req models.UpdateUserRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid update user request")
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), id, req)
	if err != nil {
		respondError(w, r, err, "error updating user")
		return
	}
	utils.WriteJSON(w, user.ToResponse(), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err, "invalid user id")
		return
	}

	if err = h.services.UserService.DeleteUser(r.Context(), id); err != nil {
		respondError(w, r, err, "error deleting user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
