// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAdapter builds an httpServerAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientConfig{ServerURL: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:4000", want: "http://localhost:4000"},
		{name: "trailing slash trimmed", raw: "https://command.empire/", want: "https://command.empire"},
		{name: "scheme added", raw: "localhost:4000", want: "http://localhost:4000"},
		{name: "surrounding spaces", raw: "  localhost:4000 ", want: "http://localhost:4000"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_InvalidURL(t *testing.T) {
	a, err := NewHTTPServerAdapter(config.ClientConfig{}, logger.Nop())
	assert.Nil(t, a)
	assert.Error(t, err)
}

func TestSetToken_TrimsAndClears(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:4000")

	a.SetToken("  abc  ")
	assert.Equal(t, "abc", a.Token())

	a.SetToken("")
	assert.Empty(t, a.Token())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	want := models.AuthResponse{
		Token: "signed.jwt.token",
		User:  models.UserResponse{ID: 1, Username: "admin", Role: models.RoleAdmin},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin", req.Username)
		assert.Equal(t, "admin123", req.Password)

		writeJSON(w, http.StatusOK, want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})

	require.NoError(t, err)
	assert.Equal(t, want.User.Username, got.User.Username)
	assert.Equal(t, models.RoleAdmin, got.User.Role)
	assert.Equal(t, "signed.jwt.token", a.Token())
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		wantErr error
	}{
		{name: "invalid credentials", status: http.StatusUnauthorized, message: "invalid credentials", wantErr: ErrUnauthorized},
		{name: "validation", status: http.StatusBadRequest, message: "username is required", wantErr: ErrBadRequest},
		{name: "rate limited", status: http.StatusTooManyRequests, message: "too many requests", wantErr: ErrTooManyRequests},
		{name: "server failure", status: http.StatusInternalServerError, message: "internal server error", wantErr: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeError(w, tt.status, tt.message)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.Login(context.Background(), models.LoginRequest{Username: "x", Password: "y"})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.message)
			assert.Empty(t, a.Token())
		})
	}
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{User: models.UserResponse{ID: 1}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "x", Password: "y"})
	assert.Error(t, err)
}

// ── authenticated reads ──────────────────────────────────────────────────────

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/me", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.UserResponse{ID: 7, Name: "Luke Skywalker", Rank: models.RankVIP})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tkn")

	got, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, models.RankVIP, got.Rank)
}

func TestMe_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusUnauthorized, "invalid token")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("expired")

	_, err := a.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Version: "1.2.3"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "1.2.3", got.Version)
}

func TestSystemStatus_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/system/status", r.URL.Path)
		writeError(w, http.StatusForbidden, "forbidden")
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).SystemStatus(context.Background())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListModules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/modules", r.URL.Path)
		writeJSON(w, http.StatusOK, []models.Module{
			{ID: 1, Name: models.ModuleInstagram},
			{ID: 2, Name: models.ModuleYouTube, Enabled: true},
		})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListModules(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].Enabled)
}

func TestToggleModule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/modules/3/start-stop", r.URL.Path)

		var req models.ToggleModuleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Enabled)
		assert.True(t, *req.Enabled)

		writeJSON(w, http.StatusOK, models.Module{ID: 3, Name: models.ModuleStatistics, Enabled: true})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ToggleModule(context.Background(), 3, true)
	require.NoError(t, err)
	assert.True(t, got.Enabled)
}

func TestToggleModule_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "module not found")
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).ToggleModule(context.Background(), 99, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	tests := []struct {
		name     string
		module   string
		wantPath string
	}{
		{name: "explicit module", module: "youtube", wantPath: "/api/stats/youtube"},
		{name: "empty means all", module: "", wantPath: "/api/stats/all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				writeJSON(w, http.StatusOK, models.StatsResponse{
					Stats: []models.ActionCount{{Action: "download", Count: 4}},
					Total: 4,
				})
			}))
			defer srv.Close()

			got, err := newTestAdapter(t, srv.URL).Stats(context.Background(), tt.module)
			require.NoError(t, err)
			assert.Equal(t, int64(4), got.Total)
		})
	}
}

func TestListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users", r.URL.Path)
		writeJSON(w, http.StatusOK, []models.UserResponse{{ID: 1, Username: "admin"}, {ID: 2, Username: "testuser"}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteUser(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/users/2", r.URL.Path)
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, http.StatusNotFound, "user not found")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.DeleteUser(context.Background(), 2))
	assert.ErrorIs(t, a.DeleteUser(context.Background(), 2), ErrNotFound)
}

// ── error mapping ────────────────────────────────────────────────────────────

func TestMapHTTPError_PlainBodyAndUnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418: short and stout")
	for _, sentinel := range []error{ErrBadRequest, ErrUnauthorized, ErrNotFound} {
		assert.False(t, errors.Is(err, sentinel))
	}
}

func TestMapHTTPError_EmptyBodyUsesStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Health(context.Background())
	assert.ErrorIs(t, err, ErrBadGateway)
	assert.Contains(t, err.Error(), "Bad Gateway")
}
