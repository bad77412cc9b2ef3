// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/MKhiriev/imperial-command/internal/policy"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, verifies it
// via [service.AuthService.ParseToken] and stores the resulting
// [models.Identity] in the request context. Any failure ends the request
// with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, r, ErrEmptyAuthorizationHeader, "request without authorization header")
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			respondError(w, r, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err), "malformed authorization header")
			return
		}

		ctx, err := h.authenticate(r.Context(), tokenString)
		if err != nil {
			respondError(w, r, err, "token verification failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate verifies tokenString and returns ctx extended with the
// identity it carries.
func (h *Handler) authenticate(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := h.services.AuthService.ParseToken(ctx, tokenString)
	if err != nil {
		return ctx, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return utils.WithIdentity(ctx, token.Identity()), nil
}

// requireRole admits only callers whose stored role is one of roles. The
// token role is replaced by the stored one, so a demotion takes effect
// before the token expires. It must be mounted behind auth.
func (h *Handler) requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := utils.GetIdentityFromContext(r.Context())
			if !ok {
				respondError(w, r, ErrInvalidToken, "role guard reached without identity")
				return
			}

			user, err := h.loadCaller(r.Context(), identity.UserID)
			if err != nil {
				respondError(w, r, err, "error loading user for role check")
				return
			}

			if !slices.Contains(roles, user.Role) {
				respondError(w, r, ErrForbidden, "role is not allowed")
				return
			}
			identity.Role = user.Role
			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(r.Context(), identity)))
		})
	}
}

// requireAdmin is requireRole for ADMIN and ADMIRAL.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return h.requireRole(models.RoleAdmin, models.RoleAdmiral)(next)
}

// requirePermission loads the caller and applies [policy.CanAccess] for
// resource, so permission changes take effect without a new token.
func (h *Handler) requirePermission(resource policy.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				respondError(w, r, ErrInvalidToken, "permission guard reached without identity")
				return
			}

			user, err := h.loadCaller(r.Context(), userID)
			if err != nil {
				respondError(w, r, err, "error loading user for permission check")
				return
			}

			if !policy.CanAccess(policy.SubjectOf(user.ToResponse()), resource) {
				respondError(w, r, ErrForbidden, "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// loadCaller fetches the authenticated user. A deleted account is reported
// as an invalid token.
func (h *Handler) loadCaller(ctx context.Context, userID int64) (models.User, error) {
	user, err := h.services.ProfileService.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return user, err
}
