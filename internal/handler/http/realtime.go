// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/utils"
)

// realtime upgrades GET /api/realtime?token=<jwt> to a WebSocket. Browsers
// cannot set headers on a WebSocket handshake, so the token travels in the
// query; a bearer header is accepted as well.
func (h *Handler) realtime(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.hub == nil {
		respondError(w, r, ErrRealtimeUnavailable, "realtime hub is not configured")
		return
	}

	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		if header := r.Header.Get("Authorization"); header != "" {
			tokenString, _ = utils.ParseBearerToken(header)
		}
	}
	if tokenString == "" {
		respondError(w, r, ErrEmptyAuthorizationHeader, "realtime handshake without token")
		return
	}

	ctx, err := h.authenticate(r.Context(), tokenString)
	if err != nil {
		respondError(w, r, err, "realtime handshake rejected")
		return
	}
	userID, _ := utils.GetUserIDFromContext(ctx)

	// the upgrader has already answered the handshake on failure
	if err = h.hub.Serve(w, r.WithContext(ctx), userID); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("websocket upgrade failed")
	}
}
