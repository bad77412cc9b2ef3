// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newPostgresStorages(t *testing.T) *Storages {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("imperial"),
		postgres.WithUsername("imperial"),
		postgres.WithPassword("imperial"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := NewConnect(ctx, config.DB{Driver: config.DriverPostgres, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	s, err := NewStorages(ctx, db, config.Avatars{Backend: config.AvatarBackendFile, Dir: t.TempDir()}, logger.Nop())
	require.NoError(t, err)
	return s
}

func TestPostgres_Repositories(t *testing.T) {
	ctx := context.Background()
	s := newPostgresStorages(t)

	luke, err := s.UserRepository.CreateUser(ctx, newUser("luke", "luke@rebellion.org"))
	require.NoError(t, err)

	_, err = s.UserRepository.CreateUser(ctx, newUser("luke", "x@rebellion.org"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
	_, err = s.UserRepository.CreateUser(ctx, newUser("x", "luke@rebellion.org"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	modules, err := s.ModuleRepository.ListModules(ctx, luke.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)

	updated, err := s.ModuleRepository.UpdateSettings(ctx, luke.ID, modules[1].ID, []byte(`{"quality":"1080p"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"quality":"1080p"}`, string(updated.Settings))

	_, err = s.APIKeyRepository.CreateAPIKey(ctx, models.APIKey{UserID: luke.ID, Service: "youtube", KeyHash: "h", Prefix: "abcd"})
	require.NoError(t, err)
	_, err = s.APIKeyRepository.CreateAPIKey(ctx, models.APIKey{UserID: luke.ID, Service: "youtube", KeyHash: "h", Prefix: "abcd"})
	assert.ErrorIs(t, err, ErrAPIKeyExists)

	uid := luke.ID
	_, err = s.ActivityLogRepository.CreateLog(ctx, models.ActivityLog{UserID: &uid, Module: models.LogModuleYouTube, Action: "download"})
	require.NoError(t, err)

	counts, err := s.ActivityLogRepository.CountByAction(ctx, models.ActivityFilter{UserID: &uid, Action: "DOWN"})
	require.NoError(t, err)
	assert.Equal(t, []models.ActionCount{{Action: "download", Count: 1}}, counts)

	setting, err := s.SystemRepository.SetSetting(ctx, models.SystemSetting{Key: models.SettingMaintenance, Value: true, UpdatedBy: &uid})
	require.NoError(t, err)
	assert.True(t, setting.Value)

	require.NoError(t, s.UserRepository.DeleteUser(ctx, luke.ID))
	assert.ErrorIs(t, s.UserRepository.DeleteUser(ctx, luke.ID), ErrNoUserWasFound)

	logs, err := s.ActivityLogRepository.ListLogs(ctx, models.ActivityFilter{}, 100)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].UserID)

	setting, err = s.SystemRepository.GetSetting(ctx, models.SettingMaintenance)
	require.NoError(t, err)
	assert.Nil(t, setting.UpdatedBy)
}
