// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/mock"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

var errStorage = errors.New("storage error")

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "imperial-test",
	TokenDuration: time.Hour,
	Version:       "1.2.3",
}

// allowActivity accepts any number of activity log writes.
func allowActivity(activity *mock.MockActivityLogRepository) {
	activity.EXPECT().CreateLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
			return entry, nil
		}).AnyTimes()
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

// recordingNotifier keeps every event it is given.
type recordingNotifier struct {
	mu        sync.Mutex
	broadcast []models.Event
	direct    map[int64][]models.Event
}

func (n *recordingNotifier) Broadcast(event models.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcast = append(n.broadcast, event)
}

func (n *recordingNotifier) SendToUser(userID int64, event models.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.direct == nil {
		n.direct = make(map[int64][]models.Event)
	}
	n.direct[userID] = append(n.direct[userID], event)
}

// ── activity recorder ────────────────────────────────────────────────────────

func TestActivityRecorder_WriteFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	activity := mock.NewMockActivityLogRepository(ctrl)
	activity.EXPECT().CreateLog(gomock.Any(), gomock.Any()).Return(models.ActivityLog{}, errStorage)

	assert.NotPanics(t, func() {
		activityRecorder{repository: activity}.info(context.Background(), 1, models.LogModuleAuth, "login", "x")
	})
}

func TestActivityRecorder_AnonymousEntryHasNoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	activity := mock.NewMockActivityLogRepository(ctrl)
	activity.EXPECT().CreateLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
			assert.Nil(t, entry.UserID)
			assert.Equal(t, models.LogLevelWarn, entry.Level)
			return entry, nil
		})

	activityRecorder{repository: activity}.record(context.Background(), 0, models.LogLevelWarn, models.LogModuleSystem, "x", "y")
}

func TestActivityRecorder_NilRepository(t *testing.T) {
	assert.NotPanics(t, func() {
		activityRecorder{}.info(context.Background(), 1, models.LogModuleAuth, "login", "x")
	})
}

// ── aggregate ────────────────────────────────────────────────────────────────

func TestNewServices_RequiresVersion(t *testing.T) {
	cfg := config.StructuredConfig{App: testAppConfig}
	cfg.App.Version = ""

	svcs, err := NewServices(&store.Storages{}, nil, cfg, logger.Nop())
	assert.Nil(t, svcs)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

func TestNewServices_WiresEveryService(t *testing.T) {
	svcs, err := NewServices(&store.Storages{}, nil, config.StructuredConfig{App: testAppConfig}, logger.Nop())
	require.NoError(t, err)

	assert.NotNil(t, svcs.AuthService)
	assert.NotNil(t, svcs.UserService)
	assert.NotNil(t, svcs.ProfileService)
	assert.IsType(t, &moduleValidationService{}, svcs.ModuleService)
	assert.NotNil(t, svcs.APIKeyService)
	assert.NotNil(t, svcs.StatsService)
	assert.NotNil(t, svcs.SystemService)
	assert.NotNil(t, svcs.InstagramService)
	assert.NotNil(t, svcs.YouTubeService)
}
