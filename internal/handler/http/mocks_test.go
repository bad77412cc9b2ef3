// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/metrics"
	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/require"
)

// Hand-written service mocks. Each method field can be overridden per test
// case; an unset field panics, which flags an unexpected call.

type mockAuthService struct {
	registerFn    func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockUserService struct {
	listFn   func(ctx context.Context) ([]models.User, error)
	getFn    func(ctx context.Context, id int64) (models.User, error)
	createFn func(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	updateFn func(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listFn(ctx)
}

func (m *mockUserService) GetUser(ctx context.Context, id int64) (models.User, error) {
	return m.getFn(ctx, id)
}

func (m *mockUserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	return m.createFn(ctx, req)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

type mockProfileService struct {
	getFn            func(ctx context.Context, userID int64) (models.User, error)
	updateFn         func(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)
	changePasswordFn func(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	themeFn          func(ctx context.Context, userID int64, req models.UpdateThemeRequest) (models.User, error)
	uploadAvatarFn   func(ctx context.Context, userID int64, data []byte) (models.AvatarResponse, error)
	openAvatarFn     func(ctx context.Context, name string) (io.ReadCloser, string, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return m.getFn(ctx, userID)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	return m.updateFn(ctx, userID, req)
}

func (m *mockProfileService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, userID, req)
}

func (m *mockProfileService) UpdateTheme(ctx context.Context, userID int64, req models.UpdateThemeRequest) (models.User, error) {
	return m.themeFn(ctx, userID, req)
}

func (m *mockProfileService) UploadAvatar(ctx context.Context, userID int64, data []byte) (models.AvatarResponse, error) {
	return m.uploadAvatarFn(ctx, userID, data)
}

func (m *mockProfileService) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return m.openAvatarFn(ctx, name)
}

type mockModuleService struct {
	listFn       func(ctx context.Context, userID int64) ([]models.Module, error)
	setEnabledFn func(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error)
	settingsFn   func(ctx context.Context, userID, moduleID int64, settings json.RawMessage) (models.Module, error)
}

func (m *mockModuleService) ListModules(ctx context.Context, userID int64) ([]models.Module, error) {
	return m.listFn(ctx, userID)
}

func (m *mockModuleService) SetEnabled(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error) {
	return m.setEnabledFn(ctx, userID, moduleID, enabled)
}

func (m *mockModuleService) UpdateSettings(ctx context.Context, userID, moduleID int64, settings json.RawMessage) (models.Module, error) {
	return m.settingsFn(ctx, userID, moduleID, settings)
}

type mockAPIKeyService struct {
	createFn func(ctx context.Context, userID int64, req models.CreateAPIKeyRequest) (models.APIKey, error)
	listFn   func(ctx context.Context, userID int64) ([]models.APIKey, error)
	deleteFn func(ctx context.Context, userID int64, service string) error
	hasFn    func(ctx context.Context, userID int64, service string) (bool, error)
}

func (m *mockAPIKeyService) CreateAPIKey(ctx context.Context, userID int64, req models.CreateAPIKeyRequest) (models.APIKey, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockAPIKeyService) ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error) {
	return m.listFn(ctx, userID)
}

func (m *mockAPIKeyService) DeleteAPIKey(ctx context.Context, userID int64, service string) error {
	return m.deleteFn(ctx, userID, service)
}

func (m *mockAPIKeyService) HasAPIKey(ctx context.Context, userID int64, service string) (bool, error) {
	return m.hasFn(ctx, userID, service)
}

type mockStatsService struct {
	getStatsFn func(ctx context.Context, userID int64, query models.StatsQuery) (models.StatsResponse, error)
}

func (m *mockStatsService) GetStats(ctx context.Context, userID int64, query models.StatsQuery) (models.StatsResponse, error) {
	return m.getStatsFn(ctx, userID, query)
}

type mockSystemService struct {
	healthFn      func(ctx context.Context) models.HealthResponse
	statusFn      func(ctx context.Context) (models.SystemStatus, error)
	maintenanceFn func(ctx context.Context, adminID int64, enabled bool) (models.MaintenanceResponse, error)
	logsFn        func(ctx context.Context, limit uint64) ([]models.ActivityLog, error)
}

func (m *mockSystemService) Health(ctx context.Context) models.HealthResponse {
	return m.healthFn(ctx)
}

func (m *mockSystemService) Status(ctx context.Context) (models.SystemStatus, error) {
	return m.statusFn(ctx)
}

func (m *mockSystemService) SetMaintenance(ctx context.Context, adminID int64, enabled bool) (models.MaintenanceResponse, error) {
	return m.maintenanceFn(ctx, adminID, enabled)
}

func (m *mockSystemService) Logs(ctx context.Context, limit uint64) ([]models.ActivityLog, error) {
	return m.logsFn(ctx, limit)
}

type mockInstagramService struct {
	connectFn  func(ctx context.Context, userID int64, req models.InstagramAccountRequest) (models.InstagramAccountResponse, error)
	statsFn    func(ctx context.Context, userID int64) (models.InstagramStats, error)
	postsFn    func(ctx context.Context, userID int64) (models.InstagramPostsResponse, error)
	generateFn func(ctx context.Context, userID int64, req models.GenerateContentRequest) (models.GenerateContentResponse, error)
	proxyFn    func(ctx context.Context, userID int64, req models.ProxyRequest) (models.ProxyResponse, error)
}

func (m *mockInstagramService) ConnectAccount(ctx context.Context, userID int64, req models.InstagramAccountRequest) (models.InstagramAccountResponse, error) {
	return m.connectFn(ctx, userID, req)
}

func (m *mockInstagramService) Stats(ctx context.Context, userID int64) (models.InstagramStats, error) {
	return m.statsFn(ctx, userID)
}

func (m *mockInstagramService) Posts(ctx context.Context, userID int64) (models.InstagramPostsResponse, error) {
	return m.postsFn(ctx, userID)
}

func (m *mockInstagramService) GenerateContent(ctx context.Context, userID int64, req models.GenerateContentRequest) (models.GenerateContentResponse, error) {
	return m.generateFn(ctx, userID, req)
}

func (m *mockInstagramService) UpdateProxy(ctx context.Context, userID int64, req models.ProxyRequest) (models.ProxyResponse, error) {
	return m.proxyFn(ctx, userID, req)
}

type mockYouTubeService struct {
	downloadFn func(ctx context.Context, userID int64, req models.DownloadRequest) (models.DownloadResponse, error)
	historyFn  func(ctx context.Context, userID int64) (models.DownloadHistoryResponse, error)
}

func (m *mockYouTubeService) Download(ctx context.Context, userID int64, req models.DownloadRequest) (models.DownloadResponse, error) {
	return m.downloadFn(ctx, userID, req)
}

func (m *mockYouTubeService) History(ctx context.Context, userID int64) (models.DownloadHistoryResponse, error) {
	return m.historyFn(ctx, userID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// Bearer tokens understood by tokenAuth.
const (
	userToken    = "user-token"
	adminToken   = "admin-token"
	admiralToken = "admiral-token"
)

// Fixture users matching the tokens above.
var (
	testUser    = models.User{ID: 1, Username: "luke", Email: "luke@rebels.org", Name: "Luke Skywalker", Role: models.RoleUser, Rank: models.RankNone}
	testAdmin   = models.User{ID: 2, Username: "admin", Email: "admin@empire.gov", Name: "Admin", Role: models.RoleAdmin, Rank: models.RankNone}
	testAdmiral = models.User{ID: 3, Username: "thrawn", Email: "thrawn@empire.gov", Name: "Thrawn", Role: models.RoleAdmiral, Rank: models.RankElite}
)

// tokenAuth maps the fixture tokens to identities and rejects anything else.
func tokenAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			var u models.User
			switch tokenString {
			case userToken:
				u = testUser
			case adminToken:
				u = testAdmin
			case admiralToken:
				u = testAdmiral
			default:
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{Claims: models.Claims{Role: u.Role}, UserID: u.ID}, nil
		},
	}
}

// profileOf returns a profile mock whose GetProfile serves the given users.
func profileOf(users ...models.User) *mockProfileService {
	return &mockProfileService{
		getFn: func(_ context.Context, userID int64) (models.User, error) {
			for _, u := range users {
				if u.ID == userID {
					return u, nil
				}
			}
			return models.User{}, store.ErrNoUserWasFound
		},
	}
}

// newTestHandler builds a Handler over svcs with a nop logger, a private
// metrics registry and no rate limit. A nil AuthService defaults to tokenAuth
// and a nil ProfileService serves the fixture users.
func newTestHandler(svcs *service.Services) *Handler {
	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = tokenAuth()
	}
	if svcs.ProfileService == nil {
		svcs.ProfileService = profileOf(testUser, testAdmin, testAdmiral)
	}
	return NewHandler(svcs, nil, metrics.NewMetrics(nil), config.Server{CORSOrigins: []string{"http://localhost:3000"}}, logger.Nop())
}

// serve runs one request through the full router.
func serve(t *testing.T, h *Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorded body into a fresh T.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

// errorMessage returns the "error" field of a JSON error body.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[models.ErrorResponse](t, rec).Error
}
