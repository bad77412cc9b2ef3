// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/go-chi/chi/v5"
)

const (
	avatarFormField = "avatar"

	// multipartOverhead is the allowance for boundaries and part headers on
	// top of the avatar bytes.
	multipartOverhead = 64 << 10
)

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	user, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "error getting profile")
		return
	}
	utils.WriteJSON(w, user.ToResponse(), http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.UpdateProfileRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid profile request")
		return
	}

	user, err := h.services.ProfileService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error updating profile")
		return
	}
	utils.WriteJSON(w, user.ToResponse(), http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.ChangePasswordRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid change password request")
		return
	}

	if err = h.services.ProfileService.ChangePassword(r.Context(), userID, req); err != nil {
		respondError(w, r, err, "error changing password")
		return
	}
	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) updateTheme(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.UpdateThemeRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid theme request")
		return
	}

	user, err := h.services.ProfileService.UpdateTheme(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error updating theme")
		return
	}
	utils.WriteJSON(w, models.ThemeResponse{Success: true, Theme: user.Theme}, http.StatusOK)
}

// uploadAvatar accepts a multipart form with the image in the "avatar" field.
func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	data, err := readAvatar(w, r)
	if err != nil {
		respondError(w, r, err, "invalid avatar upload")
		return
	}

	resp, err := h.services.ProfileService.UploadAvatar(r.Context(), userID, data)
	if err != nil {
		respondError(w, r, err, "error uploading avatar")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func readAvatar(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxAvatarSize+multipartOverhead)

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("%w: %w", ErrAvatarTooLarge, err)
		}
		return nil, validators.NewValidationError(avatarFormField, "avatar file is required")
	}
	defer file.Close()

	if header.Size > service.MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading avatar: %w", err)
	}
	if len(data) > service.MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}
	return data, nil
}

// getAvatar streams a stored avatar.
func (h *Handler) getAvatar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "name")
	body, contentType, err := h.services.ProfileService.OpenAvatar(r.Context(), name)
	if err != nil {
		respondError(w, r, err, "error opening avatar")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err = io.Copy(w, body); err != nil {
		log.Err(err).Str("avatar", name).Msg("error streaming avatar")
	}
}
