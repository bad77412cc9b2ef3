// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	withHash := testUser
	withHash.Password = "$2a$10$secret-hash"
	users := &mockUserService{
		listFn: func(context.Context) ([]models.User, error) {
			return []models.User{withHash, testAdmin}, nil
		},
	}
	h := newTestHandler(&service.Services{UserService: users})

	rec := serve(t, h, http.MethodGet, "/api/users", adminToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.UserResponse](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, "luke", list[0].Username)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.NotContains(t, rec.Body.String(), `"password"`)
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantError  string
	}{
		{"found", "/api/users/1", http.StatusOK, ""},
		{"missing", "/api/users/404", http.StatusNotFound, "no user was found"},
		{"non numeric id", "/api/users/abc", http.StatusBadRequest, "id must be a positive integer"},
		{"zero id", "/api/users/0", http.StatusBadRequest, "id must be a positive integer"},
	}

	users := &mockUserService{
		getFn: func(_ context.Context, id int64) (models.User, error) {
			if id == testUser.ID {
				return testUser, nil
			}
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{UserService: users})

			rec := serve(t, h, http.MethodGet, tt.path, admiralToken, nil)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
				return
			}
			assert.Equal(t, testUser.ID, decode[models.UserResponse](t, rec).ID)
		})
	}
}

func TestCreateUser_BothPaths(t *testing.T) {
	var got []models.CreateUserRequest
	users := &mockUserService{
		createFn: func(_ context.Context, req models.CreateUserRequest) (models.User, error) {
			got = append(got, req)
			return models.User{ID: 10, Username: req.Username, Role: req.Role, Rank: req.Rank}, nil
		},
	}
	h := newTestHandler(&service.Services{UserService: users})
	body := models.CreateUserRequest{
		Username: "piett", Email: "piett@empire.gov", Password: "secret1", Name: "Firmus Piett",
		Role: models.RoleAdmiral, Rank: models.RankVIP,
	}

	for _, path := range []string{"/api/users", "/api/users/create"} {
		rec := serve(t, h, http.MethodPost, path, adminToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, path)
		assert.Equal(t, models.RoleAdmiral, decode[models.UserResponse](t, rec).Role)
	}
	require.Len(t, got, 2)
	assert.Equal(t, body, got[1])
}

func TestCreateUser_Conflict(t *testing.T) {
	users := &mockUserService{
		createFn: func(context.Context, models.CreateUserRequest) (models.User, error) {
			return models.User{}, store.ErrUsernameTaken
		},
	}
	h := newTestHandler(&service.Services{UserService: users})

	rec := serve(t, h, http.MethodPost, "/api/users", adminToken, models.CreateUserRequest{Username: "vader"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "username already taken", errorMessage(t, rec))
}

func TestUpdateUser(t *testing.T) {
	var gotID int64
	var gotReq models.UpdateUserRequest
	users := &mockUserService{
		updateFn: func(_ context.Context, id int64, req models.UpdateUserRequest) (models.User, error) {
			gotID, gotReq = id, req
			u := testUser
			u.Rank = *req.Rank
			return u, nil
		},
	}
	h := newTestHandler(&service.Services{UserService: users})

	rec := serve(t, h, http.MethodPut, "/api/users/1", adminToken, `{"rank":"ELITE"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), gotID)
	require.NotNil(t, gotReq.Rank)
	assert.Nil(t, gotReq.Role, "absent fields stay nil")
	assert.Equal(t, models.RankElite, decode[models.UserResponse](t, rec).Rank)
}

func TestUpdateUser_ValidationError(t *testing.T) {
	users := &mockUserService{
		updateFn: func(context.Context, int64, models.UpdateUserRequest) (models.User, error) {
			return models.User{}, validators.NewValidationError("role", "role must be one of [USER ADMIN ADMIRAL]")
		},
	}
	h := newTestHandler(&service.Services{UserService: users})

	rec := serve(t, h, http.MethodPut, "/api/users/1", adminToken, `{"role":"SITH"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "role must be one of [USER ADMIN ADMIRAL]", errorMessage(t, rec))
}

// TestDeleteUser_Twice verifies that a second delete of the same id is 404.
func TestDeleteUser_Twice(t *testing.T) {
	deleted := map[int64]bool{}
	users := &mockUserService{
		deleteFn: func(_ context.Context, id int64) error {
			if deleted[id] {
				return store.ErrNoUserWasFound
			}
			deleted[id] = true
			return nil
		},
	}
	h := newTestHandler(&service.Services{UserService: users})

	rec := serve(t, h, http.MethodDelete, "/api/users/5", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(t, h, http.MethodDelete, "/api/users/5", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
