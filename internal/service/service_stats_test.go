// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/mock"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var statsNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStatsService(t *testing.T, ctrl *gomock.Controller) (*statsService, *mock.MockActivityLogRepository) {
	t.Helper()
	activity := mock.NewMockActivityLogRepository(ctrl)
	allowActivity(activity)
	svc := NewStatsService(activity, logger.Nop()).(*statsService)
	svc.now = func() time.Time { return statsNow }
	return svc, activity
}

func TestStatsService_GetStats_DefaultsToLastSevenDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, activity := newTestStatsService(t, ctrl)

	activity.EXPECT().CountByAction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f models.ActivityFilter) ([]models.ActionCount, error) {
			require.NotNil(t, f.UserID)
			assert.Equal(t, int64(1), *f.UserID)
			assert.Equal(t, "youtube", f.Module)
			assert.Equal(t, statsNow, f.To)
			assert.Equal(t, statsNow.Add(-7*24*time.Hour), f.From)
			return []models.ActionCount{{Action: "download", Count: 3}, {Action: "history", Count: 2}}, nil
		},
	)

	resp, err := svc.GetStats(context.Background(), 1, models.StatsQuery{Module: "youtube"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Len(t, resp.Stats, 2)
	assert.Equal(t, "youtube", resp.Module)
}

func TestStatsService_GetStats_AllSpansModules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, activity := newTestStatsService(t, ctrl)

	activity.EXPECT().CountByAction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f models.ActivityFilter) ([]models.ActionCount, error) {
			assert.Empty(t, f.Module)
			assert.Equal(t, "log", f.Action)
			return []models.ActionCount{}, nil
		},
	)

	resp, err := svc.GetStats(context.Background(), 1, models.StatsQuery{Module: "all", Filter: "log"})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Stats)
}

func TestStatsService_GetStats_Rejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, _ := newTestStatsService(t, ctrl)

	_, err := svc.GetStats(context.Background(), 1, models.StatsQuery{Module: "twitter"})
	assert.ErrorIs(t, err, ErrUnknownStatsModule)

	_, err = svc.GetStats(context.Background(), 1, models.StatsQuery{
		Module: "all",
		From:   statsNow,
		To:     statsNow.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidStatsRange)
}

func TestParseStatsQuery(t *testing.T) {
	tests := []struct {
		name     string
		module   string
		from     string
		to       string
		wantErr  error
		wantFrom time.Time
		wantTo   time.Time
	}{
		{name: "no bounds", module: "all"},
		{
			name: "rfc3339", module: "Instagram",
			from: "2026-03-01T10:00:00Z", to: "2026-03-02T10:00:00+02:00",
			wantFrom: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "dates cover whole days", module: "statistics",
			from: "2026-03-01", to: "2026-03-01",
			wantFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 3, 1, 23, 59, 59, 999999999, time.UTC),
		},
		{name: "malformed from", module: "all", from: "yesterday", wantErr: validators.ErrValidation},
		{name: "malformed to", module: "all", to: "03/01/2026", wantErr: validators.ErrValidation},
		{name: "reversed", module: "all", from: "2026-03-02", to: "2026-03-01", wantErr: ErrInvalidStatsRange},
		{name: "unknown module", module: "tiktok", wantErr: ErrUnknownStatsModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseStatsQuery(tt.module, tt.from, tt.to, " download ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "download", q.Filter)
			assert.True(t, tt.wantFrom.Equal(q.From), "from: %v", q.From)
			assert.True(t, tt.wantTo.Equal(q.To), "to: %v", q.To)
		})
	}
}
