// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userModules(userID int64) []models.Module {
	out := make([]models.Module, 0, len(models.DefaultModules))
	for i, name := range models.DefaultModules {
		out = append(out, models.Module{ID: int64(i + 1), UserID: userID, Name: name, Settings: models.EmptySettings})
	}
	return out
}

func TestListModules_OnlyCallerModules(t *testing.T) {
	modules := &mockModuleService{
		listFn: func(_ context.Context, userID int64) ([]models.Module, error) {
			return userModules(userID), nil
		},
	}
	h := newTestHandler(&service.Services{ModuleService: modules})

	rec := serve(t, h, http.MethodGet, "/api/modules", userToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Module](t, rec)
	require.Len(t, list, 3)
	for _, m := range list {
		assert.Equal(t, testUser.ID, m.UserID)
	}
}

func TestToggleModule(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{"start", "/api/modules/1/start-stop", `{"enabled":true}`, nil, http.StatusOK, ""},
		{"stop", "/api/modules/1/start-stop", `{"enabled":false}`, nil, http.StatusOK, ""},
		{"missing flag", "/api/modules/1/start-stop", `{}`, nil, http.StatusBadRequest, "enabled is required"},
		{"bad id", "/api/modules/x/start-stop", `{"enabled":true}`, nil, http.StatusBadRequest, "id must be a positive integer"},
		{"foreign module", "/api/modules/99/start-stop", `{"enabled":true}`, store.ErrModuleNotFound, http.StatusNotFound, "module was not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modules := &mockModuleService{
				setEnabledFn: func(_ context.Context, userID, moduleID int64, enabled bool) (models.Module, error) {
					if tt.serviceErr != nil {
						return models.Module{}, tt.serviceErr
					}
					return models.Module{ID: moduleID, UserID: userID, Name: models.ModuleInstagram, Enabled: enabled}, nil
				},
			}
			h := newTestHandler(&service.Services{ModuleService: modules})

			rec := serve(t, h, http.MethodPut, tt.path, userToken, tt.body)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
				return
			}
			assert.Equal(t, tt.name == "start", decode[models.Module](t, rec).Enabled)
		})
	}
}

func TestUpdateModuleSettings(t *testing.T) {
	var gotSettings json.RawMessage
	modules := &mockModuleService{
		settingsFn: func(_ context.Context, userID, moduleID int64, settings json.RawMessage) (models.Module, error) {
			gotSettings = settings
			if string(settings) == `{"bogus":1}` {
				return models.Module{}, validators.NewValidationError("bogus", "settings: unknown key %q", "bogus")
			}
			return models.Module{ID: moduleID, UserID: userID, Name: models.ModuleYouTube, Settings: settings}, nil
		},
	}
	h := newTestHandler(&service.Services{ModuleService: modules})

	rec := serve(t, h, http.MethodPatch, "/api/modules/2/settings", userToken, `{"settings":{"quality":"720p"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"quality":"720p"}`, string(gotSettings))
	assert.JSONEq(t, `{"quality":"720p"}`, string(decode[models.Module](t, rec).Settings))

	rec = serve(t, h, http.MethodPatch, "/api/modules/2/settings", userToken, `{"settings":{"bogus":1}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `settings: unknown key "bogus"`, errorMessage(t, rec))
}
