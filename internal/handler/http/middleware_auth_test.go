// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/policy"
	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- Helpers ----

func newHandlerWithServices(svcs *service.Services) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: svcs,
	}
}

// okHandler records that it was reached and the identity it saw.
type okHandler struct {
	called   bool
	identity models.Identity
}

func (o *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o.called = true
	o.identity, _ = utils.GetIdentityFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func runMiddleware(mw func(http.Handler) http.Handler, r *http.Request) (*httptest.ResponseRecorder, *okHandler) {
	next := &okHandler{}
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, r)
	return rec, next
}

func requestWithIdentity(identity *models.Identity) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	if identity != nil {
		r = r.WithContext(utils.WithIdentity(r.Context(), *identity))
	}
	return r
}

// ---- auth ----

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
		wantUserID int64
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
			wantError:  "no token provided",
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid authorization header",
		},
		{
			name:       "bearer without token",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid authorization header",
		},
		{
			name:       "rejected token",
			header:     "Bearer forged",
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid token",
		},
		{
			name:       "valid token",
			header:     "Bearer " + adminToken,
			wantStatus: http.StatusOK,
			wantUserID: testAdmin.ID,
		},
		{
			name:       "scheme is case insensitive",
			header:     "bearer " + userToken,
			wantStatus: http.StatusOK,
			wantUserID: testUser.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithServices(&service.Services{AuthService: tokenAuth()})
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			rec, next := runMiddleware(h.auth, r)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.False(t, next.called)
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
				return
			}
			assert.True(t, next.called)
			assert.Equal(t, tt.wantUserID, next.identity.UserID)
		})
	}
}

func TestAuth_CarriesRoleFromToken(t *testing.T) {
	h := newHandlerWithServices(&service.Services{AuthService: tokenAuth()})
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.Header.Set("Authorization", "Bearer "+admiralToken)

	_, next := runMiddleware(h.auth, r)

	require.True(t, next.called)
	assert.Equal(t, models.RoleAdmiral, next.identity.Role)
}

// ---- requireRole ----

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		identity   *models.Identity
		wantStatus int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"user", &models.Identity{UserID: 1, Role: models.RoleUser}, http.StatusForbidden},
		{"admin", &models.Identity{UserID: 2, Role: models.RoleAdmin}, http.StatusOK},
		{"admiral", &models.Identity{UserID: 3, Role: models.RoleAdmiral}, http.StatusOK},
		{"unknown role", &models.Identity{UserID: 4, Role: models.Role("SITH")}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := profileOf()
			if tt.identity != nil {
				profile = profileOf(models.User{ID: tt.identity.UserID, Role: tt.identity.Role})
			}
			h := newHandlerWithServices(&service.Services{ProfileService: profile})

			rec, next := runMiddleware(h.requireAdmin, requestWithIdentity(tt.identity))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, next.called)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, "forbidden", errorMessage(t, rec))
			}
		})
	}
}

func TestRequireRole_SingleRole(t *testing.T) {
	h := newHandlerWithServices(&service.Services{ProfileService: profileOf(testAdmin, testAdmiral)})
	mw := h.requireRole(models.RoleAdmiral)

	rec, _ := runMiddleware(mw, requestWithIdentity(&models.Identity{UserID: 2, Role: models.RoleAdmin}))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, next := runMiddleware(mw, requestWithIdentity(&models.Identity{UserID: 3, Role: models.RoleAdmiral}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
}

// TestRequireAdmin_UsesStoredRole verifies that role changes apply to tokens
// issued before them.
func TestRequireAdmin_UsesStoredRole(t *testing.T) {
	demoted := testAdmin
	demoted.Role = models.RoleUser
	promoted := testUser
	promoted.Role = models.RoleAdmiral

	tests := []struct {
		name       string
		stored     []models.User
		identity   models.Identity
		wantStatus int
		wantRole   models.Role
	}{
		{"demoted admin", []models.User{demoted}, models.Identity{UserID: testAdmin.ID, Role: models.RoleAdmin}, http.StatusForbidden, ""},
		{"promoted user", []models.User{promoted}, models.Identity{UserID: testUser.ID, Role: models.RoleUser}, http.StatusOK, models.RoleAdmiral},
		{"deleted admin", nil, models.Identity{UserID: testAdmin.ID, Role: models.RoleAdmin}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithServices(&service.Services{ProfileService: profileOf(tt.stored...)})

			rec, next := runMiddleware(h.requireAdmin, requestWithIdentity(&tt.identity))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, next.called)
			if next.called {
				assert.Equal(t, tt.wantRole, next.identity.Role)
			}
		})
	}
}

func TestAdminRoutes_DemotedTokenIsRejected(t *testing.T) {
	demoted := testAdmin
	demoted.Role = models.RoleUser
	h := newTestHandler(&service.Services{ProfileService: profileOf(demoted), SystemService: systemMock()})

	rec := serve(t, h, http.MethodGet, "/api/system/status", adminToken, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorMessage(t, rec))
}

// ---- requirePermission ----

func TestRequirePermission(t *testing.T) {
	withInstagram := testUser
	withInstagram.Permissions = models.Permissions{Instagram: true}

	tests := []struct {
		name       string
		user       models.User
		resource   policy.Resource
		wantStatus int
	}{
		{"user without flag", testUser, policy.ResourceInstagram, http.StatusForbidden},
		{"user with flag", withInstagram, policy.ResourceInstagram, http.StatusOK},
		{"flag does not leak to other features", withInstagram, policy.ResourceYouTube, http.StatusForbidden},
		{"admin bypasses flags", testAdmin, policy.ResourceStatistics, http.StatusOK},
		{"admiral bypasses flags", testAdmiral, policy.ResourceYouTube, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithServices(&service.Services{ProfileService: profileOf(tt.user)})
			identity := &models.Identity{UserID: tt.user.ID, Role: tt.user.Role}

			rec, next := runMiddleware(h.requirePermission(tt.resource), requestWithIdentity(identity))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, next.called)
		})
	}
}

// TestRequirePermission_UsesStoredFlags verifies that the guard trusts the
// database rather than the token: a USER token whose account was promoted
// passes without logging in again.
func TestRequirePermission_UsesStoredFlags(t *testing.T) {
	promoted := testUser
	promoted.Role = models.RoleAdmin
	h := newHandlerWithServices(&service.Services{ProfileService: profileOf(promoted)})

	rec, next := runMiddleware(
		h.requirePermission(policy.ResourceStatistics),
		requestWithIdentity(&models.Identity{UserID: testUser.ID, Role: models.RoleUser}),
	)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
}

func TestRequirePermission_Errors(t *testing.T) {
	tests := []struct {
		name       string
		identity   *models.Identity
		profileErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "no identity",
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid token",
		},
		{
			name:       "deleted account",
			identity:   &models.Identity{UserID: 99, Role: models.RoleUser},
			profileErr: store.ErrNoUserWasFound,
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid token",
		},
		{
			name:       "database failure",
			identity:   &models.Identity{UserID: 1, Role: models.RoleUser},
			profileErr: errors.Join(store.ErrExecutingQuery, errors.New("connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &mockProfileService{
				getFn: func(context.Context, int64) (models.User, error) {
					return models.User{}, tt.profileErr
				},
			}
			h := newHandlerWithServices(&service.Services{ProfileService: profile})

			rec, next := runMiddleware(h.requirePermission(policy.ResourceInstagram), requestWithIdentity(tt.identity))

			assert.False(t, next.called)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, errorMessage(t, rec))
		})
	}
}

// ---- routed ----

func TestAdminRoutes_RoleMatrix(t *testing.T) {
	users := &mockUserService{
		listFn: func(context.Context) ([]models.User, error) {
			return []models.User{testUser, testAdmin, testAdmiral}, nil
		},
	}

	tests := []struct {
		token      string
		wantStatus int
	}{
		{userToken, http.StatusForbidden},
		{adminToken, http.StatusOK},
		{admiralToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			h := newTestHandler(&service.Services{UserService: users})
			rec := serve(t, h, http.MethodGet, "/api/users", tt.token, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
