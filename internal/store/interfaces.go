// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/imperial-command/models"
)

// UserRepository persists accounts. CreateUser also creates the default
// module rows of the new account in the same transaction.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	DeleteUser(ctx context.Context, id int64) error
}

// ModuleRepository persists per-user modules. Every mutation is scoped by
// owner: a module of another user behaves as absent.
type ModuleRepository interface {
	ListModules(ctx context.Context, userID int64) ([]models.Module, error)
	GetModule(ctx context.Context, userID, moduleID int64) (models.Module, error)
	SetEnabled(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error)
	UpdateSettings(ctx context.Context, userID, moduleID int64, settings []byte) (models.Module, error)
}

// APIKeyRepository persists hashed third-party API keys.
type APIKeyRepository interface {
	CreateAPIKey(ctx context.Context, key models.APIKey) (models.APIKey, error)
	ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error)
	HasAPIKey(ctx context.Context, userID int64, service string) (bool, error)
	DeleteAPIKey(ctx context.Context, userID int64, service string) error
}

// SystemRepository persists global flags such as maintenance mode.
type SystemRepository interface {
	GetSetting(ctx context.Context, name string) (models.SystemSetting, error)
	SetSetting(ctx context.Context, setting models.SystemSetting) (models.SystemSetting, error)
}

// ActivityLogRepository persists and aggregates the activity log.
type ActivityLogRepository interface {
	CreateLog(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error)
	ListLogs(ctx context.Context, filter models.ActivityFilter, limit uint64) ([]models.ActivityLog, error)
	CountByAction(ctx context.Context, filter models.ActivityFilter) ([]models.ActionCount, error)
}

// AvatarStorage keeps uploaded profile images outside the database.
type AvatarStorage interface {
	SaveAvatar(ctx context.Context, name, contentType string, data []byte) error
	OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error)
	DeleteAvatar(ctx context.Context, name string) error
}
