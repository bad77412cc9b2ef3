// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/mock"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestInstagramService(t *testing.T, ctrl *gomock.Controller) (InstagramService, *mock.MockAPIKeyRepository, *mock.MockModuleRepository) {
	t.Helper()
	keys := mock.NewMockAPIKeyRepository(ctrl)
	modules := mock.NewMockModuleRepository(ctrl)
	activity := mock.NewMockActivityLogRepository(ctrl)
	allowActivity(activity)
	return NewInstagramService(keys, modules, activity, validators.NewRequestValidator(), logger.Nop()), keys, modules
}

func TestInstagramService_ReportsAPIKeyPresence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, keys, _ := newTestInstagramService(t, ctrl)
	ctx := context.Background()

	keys.EXPECT().HasAPIKey(ctx, int64(1), "instagram").Return(true, nil).Times(4)

	account, err := svc.ConnectAccount(ctx, 1, models.InstagramAccountRequest{Username: "@empire"})
	require.NoError(t, err)
	assert.Equal(t, "empire", account.Username)
	assert.True(t, account.APIKey)

	stats, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.True(t, stats.APIKey)

	posts, err := svc.Posts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, posts.Posts, 3)
	assert.True(t, posts.APIKey)

	content, err := svc.GenerateContent(ctx, 1, models.GenerateContentRequest{Prompt: "fleet review"})
	require.NoError(t, err)
	assert.Contains(t, content.Content, "fleet review")
}

func TestInstagramService_KeyLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, keys, _ := newTestInstagramService(t, ctrl)

	keys.EXPECT().HasAPIKey(gomock.Any(), int64(1), "instagram").Return(false, errStorage)

	_, err := svc.Stats(context.Background(), 1)
	assert.ErrorIs(t, err, errStorage)
}

func TestInstagramService_UpdateProxy_MergesIntoModuleSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, keys, modules := newTestInstagramService(t, ctrl)

	modules.EXPECT().ListModules(gomock.Any(), int64(1)).Return([]models.Module{
		{ID: 10, Name: models.ModuleYouTube, Settings: models.EmptySettings},
		{ID: 11, Name: models.ModuleInstagram, Settings: json.RawMessage(`{"postingInterval":15}`)},
	}, nil)
	modules.EXPECT().UpdateSettings(gomock.Any(), int64(1), int64(11), gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ int64, settings []byte) (models.Module, error) {
			assert.JSONEq(t, `{"postingInterval":15,"proxy":"http://proxy.empire.gov:8080"}`, string(settings))
			return models.Module{ID: 11}, nil
		},
	)
	keys.EXPECT().HasAPIKey(gomock.Any(), int64(1), "instagram").Return(false, nil)

	resp, err := svc.UpdateProxy(context.Background(), 1, models.ProxyRequest{Proxy: "http://proxy.empire.gov:8080"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.APIKey)
}

func TestInstagramService_UpdateProxy_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _, modules := newTestInstagramService(t, ctrl)

	_, err := svc.UpdateProxy(context.Background(), 1, models.ProxyRequest{Proxy: "not a url"})
	assert.ErrorIs(t, err, validators.ErrValidation)

	modules.EXPECT().ListModules(gomock.Any(), int64(1)).Return([]models.Module{}, nil)
	_, err = svc.UpdateProxy(context.Background(), 1, models.ProxyRequest{})
	assert.ErrorIs(t, err, store.ErrModuleNotFound)
}

func TestYouTubeService_DownloadAndHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	keys := mock.NewMockAPIKeyRepository(ctrl)
	activity := mock.NewMockActivityLogRepository(ctrl)
	svc := NewYouTubeService(keys, activity, validators.NewRequestValidator(), logger.Nop())
	ctx := context.Background()

	keys.EXPECT().HasAPIKey(ctx, int64(1), "youtube").Return(true, nil).Times(2)
	activity.EXPECT().CreateLog(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
			assert.Equal(t, models.LogModuleYouTube, entry.Module)
			assert.Equal(t, "download", entry.Action)
			assert.Equal(t, "https://youtube.com/watch?v=ds1", entry.Message)
			return entry, nil
		},
	)
	activity.EXPECT().ListLogs(ctx, gomock.Any(), uint64(50)).DoAndReturn(
		func(_ context.Context, f models.ActivityFilter, _ uint64) ([]models.ActivityLog, error) {
			require.NotNil(t, f.UserID)
			assert.Equal(t, models.LogModuleYouTube, f.Module)
			return []models.ActivityLog{{ID: 1, Action: "download"}}, nil
		},
	)

	dl, err := svc.Download(ctx, 1, models.DownloadRequest{URL: "https://youtube.com/watch?v=ds1", Quality: "1080p", Format: "mp4"})
	require.NoError(t, err)
	assert.Equal(t, DownloadStatusQueued, dl.Status)
	assert.NotEmpty(t, dl.ID)
	assert.True(t, dl.APIKey)

	history, err := svc.History(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, history.Downloads, 1)
}

func TestYouTubeService_Download_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := NewYouTubeService(mock.NewMockAPIKeyRepository(ctrl), mock.NewMockActivityLogRepository(ctrl),
		validators.NewRequestValidator(), logger.Nop())

	_, err := svc.Download(context.Background(), 1, models.DownloadRequest{URL: "https://youtube.com/x", Quality: "8k"})
	assert.ErrorIs(t, err, validators.ErrValidation)
}
