// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/MKhiriev/imperial-command/models"
)

// AuthService handles credentials and tokens.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService is the administrative user CRUD.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProfileService lets a user manage their own account.
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)
	ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	UpdateTheme(ctx context.Context, userID int64, req models.UpdateThemeRequest) (models.User, error)
	UploadAvatar(ctx context.Context, userID int64, data []byte) (models.AvatarResponse, error)
	OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// ModuleService manages the feature modules of a user.
type ModuleService interface {
	ListModules(ctx context.Context, userID int64) ([]models.Module, error)
	SetEnabled(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error)
	UpdateSettings(ctx context.Context, userID, moduleID int64, settings json.RawMessage) (models.Module, error)
}

// ModuleServiceWrapper defines middleware composition for ModuleService.
// Implementations wrap an existing ModuleService to add behavior such as
// validation.
type ModuleServiceWrapper interface {
	Wrap(ModuleService) ModuleService
}

// APIKeyService manages third-party API keys.
type APIKeyService interface {
	CreateAPIKey(ctx context.Context, userID int64, req models.CreateAPIKeyRequest) (models.APIKey, error)
	ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error)
	DeleteAPIKey(ctx context.Context, userID int64, service string) error
	HasAPIKey(ctx context.Context, userID int64, service string) (bool, error)
}

// StatsService aggregates the activity log of a user.
type StatsService interface {
	GetStats(ctx context.Context, userID int64, query models.StatsQuery) (models.StatsResponse, error)
}

// SystemService reports health and manages global flags.
type SystemService interface {
	Health(ctx context.Context) models.HealthResponse
	Status(ctx context.Context) (models.SystemStatus, error)
	SetMaintenance(ctx context.Context, adminID int64, enabled bool) (models.MaintenanceResponse, error)
	Logs(ctx context.Context, limit uint64) ([]models.ActivityLog, error)
}

// InstagramService is the placeholder instagram automation backend.
type InstagramService interface {
	ConnectAccount(ctx context.Context, userID int64, req models.InstagramAccountRequest) (models.InstagramAccountResponse, error)
	Stats(ctx context.Context, userID int64) (models.InstagramStats, error)
	Posts(ctx context.Context, userID int64) (models.InstagramPostsResponse, error)
	GenerateContent(ctx context.Context, userID int64, req models.GenerateContentRequest) (models.GenerateContentResponse, error)
	UpdateProxy(ctx context.Context, userID int64, req models.ProxyRequest) (models.ProxyResponse, error)
}

// YouTubeService is the placeholder youtube download backend.
type YouTubeService interface {
	Download(ctx context.Context, userID int64, req models.DownloadRequest) (models.DownloadResponse, error)
	History(ctx context.Context, userID int64) (models.DownloadHistoryResponse, error)
}

// Notifier pushes realtime events to connected clients.
type Notifier interface {
	Broadcast(event models.Event)
	SendToUser(userID int64, event models.Event)
}
