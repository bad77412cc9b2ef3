// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
)

// Instagram and YouTube routes. They sit behind requirePermission for their
// resource and answer with placeholder payloads.

func (h *Handler) instagramAccount(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.InstagramAccountRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid instagram account request")
		return
	}

	resp, err := h.services.InstagramService.ConnectAccount(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error connecting instagram account")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) instagramStats(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	resp, err := h.services.InstagramService.Stats(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "error getting instagram stats")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) instagramPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	resp, err := h.services.InstagramService.Posts(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "error getting instagram posts")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) instagramGenerate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.GenerateContentRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid generate request")
		return
	}

	resp, err := h.services.InstagramService.GenerateContent(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error generating content")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) instagramProxy(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.ProxyRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid proxy request")
		return
	}

	resp, err := h.services.InstagramService.UpdateProxy(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error updating proxy")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) youtubeDownload(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	var req models.DownloadRequest
	if err = decodeJSON(w, r, &req); err != nil {
		respondError(w, r, err, "invalid download request")
		return
	}

	resp, err := h.services.YouTubeService.Download(r.Context(), userID, req)
	if err != nil {
		respondError(w, r, err, "error queueing download")
		return
	}
	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) youtubeHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		respondError(w, r, err, "no identity in context")
		return
	}

	resp, err := h.services.YouTubeService.History(r.Context(), userID)
	if err != nil {
		respondError(w, r, err, "error getting download history")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}
