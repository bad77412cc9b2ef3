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

func newTestModuleService(t *testing.T, ctrl *gomock.Controller) (ModuleService, *mock.MockModuleRepository, *recordingNotifier) {
	t.Helper()
	modules := mock.NewMockModuleRepository(ctrl)
	activity := mock.NewMockActivityLogRepository(ctrl)
	allowActivity(activity)
	notifier := &recordingNotifier{}

	inner := NewModuleService(modules, activity, notifier, logger.Nop())
	settings := validators.NewSettingsValidator(validators.NewRequestValidator())
	return NewModuleServiceValidationWrapper(modules, settings, logger.Nop()).Wrap(inner), modules, notifier
}

func TestModuleService_SetEnabled_NotifiesOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, modules, notifier := newTestModuleService(t, ctrl)

	module := models.Module{ID: 4, UserID: 1, Name: models.ModuleYouTube, Enabled: true}
	modules.EXPECT().SetEnabled(gomock.Any(), int64(1), int64(4), true).Return(module, nil)

	got, err := svc.SetEnabled(context.Background(), 1, 4, true)
	require.NoError(t, err)
	assert.True(t, got.Enabled)

	require.Len(t, notifier.direct[1], 1)
	assert.Equal(t, models.EventModule, notifier.direct[1][0].Type)
	assert.Empty(t, notifier.broadcast)
}

func TestModuleService_SetEnabled_ForeignModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, modules, notifier := newTestModuleService(t, ctrl)

	modules.EXPECT().SetEnabled(gomock.Any(), int64(1), int64(99), false).Return(models.Module{}, store.ErrModuleNotFound)

	_, err := svc.SetEnabled(context.Background(), 1, 99, false)
	assert.ErrorIs(t, err, store.ErrModuleNotFound)
	assert.Empty(t, notifier.direct)
}

func TestModuleService_UpdateSettings_NormalizedBeforePersisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, modules, _ := newTestModuleService(t, ctrl)

	modules.EXPECT().GetModule(gomock.Any(), int64(1), int64(2)).
		Return(models.Module{ID: 2, UserID: 1, Name: models.ModuleInstagram}, nil)
	modules.EXPECT().UpdateSettings(gomock.Any(), int64(1), int64(2), gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ int64, settings []byte) (models.Module, error) {
			assert.JSONEq(t, `{"postingInterval":30,"hashtags":["empire"]}`, string(settings))
			return models.Module{ID: 2, Name: models.ModuleInstagram, Settings: settings}, nil
		},
	)

	got, err := svc.UpdateSettings(context.Background(), 1, 2,
		json.RawMessage(`{"postingInterval": 30, "hashtags": ["empire"]}`))
	require.NoError(t, err)
	assert.Equal(t, models.ModuleInstagram, got.Name)
}

func TestModuleService_UpdateSettings_SchemaViolation(t *testing.T) {
	tests := []struct {
		name     string
		module   models.ModuleName
		settings string
	}{
		{name: "out of range", module: models.ModuleInstagram, settings: `{"postingInterval": 0}`},
		{name: "unknown key", module: models.ModuleYouTube, settings: `{"resolution": "8k"}`},
		{name: "wrong type", module: models.ModuleStatistics, settings: `{"refreshInterval": "often"}`},
		{name: "not an object", module: models.ModuleYouTube, settings: `[1,2]`},
		{name: "bad enum", module: models.ModuleYouTube, settings: `{"format": "avi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc, modules, _ := newTestModuleService(t, ctrl)

			modules.EXPECT().GetModule(gomock.Any(), int64(1), int64(2)).Return(models.Module{ID: 2, Name: tt.module}, nil)

			_, err := svc.UpdateSettings(context.Background(), 1, 2, json.RawMessage(tt.settings))
			assert.ErrorIs(t, err, validators.ErrValidation)
		})
	}
}

func TestModuleService_UpdateSettings_ForeignModuleIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, modules, _ := newTestModuleService(t, ctrl)

	modules.EXPECT().GetModule(gomock.Any(), int64(1), int64(77)).Return(models.Module{}, store.ErrModuleNotFound)

	_, err := svc.UpdateSettings(context.Background(), 1, 77, json.RawMessage(`{"postingInterval": 0}`))
	assert.ErrorIs(t, err, store.ErrModuleNotFound)
}

func TestModuleService_ListModules(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc, modules, _ := newTestModuleService(t, ctrl)

	modules.EXPECT().ListModules(gomock.Any(), int64(1)).Return([]models.Module{{ID: 1}, {ID: 2}, {ID: 3}}, nil)
	modules.EXPECT().ListModules(gomock.Any(), int64(2)).Return(nil, errStorage)

	list, err := svc.ListModules(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	_, err = svc.ListModules(context.Background(), 2)
	assert.ErrorIs(t, err, errStorage)
}
