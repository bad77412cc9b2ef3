// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/models"
)

// moduleService manages the modules owned by a user. Every repository call
// carries the owner, so a module of another user behaves as absent.
type moduleService struct {
	moduleRepository store.ModuleRepository
	activity         activityRecorder
	notifier         Notifier
	logger           *logger.Logger
}

func NewModuleService(moduleRepository store.ModuleRepository, activityRepository store.ActivityLogRepository,
	notifier Notifier, logger *logger.Logger) ModuleService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &moduleService{
		moduleRepository: moduleRepository,
		activity:         activityRecorder{repository: activityRepository},
		notifier:         notifier,
		logger:           logger,
	}
}

func (s *moduleService) ListModules(ctx context.Context, userID int64) ([]models.Module, error) {
	modules, err := s.moduleRepository.ListModules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing modules: %w", err)
	}
	return modules, nil
}

// SetEnabled starts or stops a module and notifies the owner's realtime
// connections.
func (s *moduleService) SetEnabled(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error) {
	module, err := s.moduleRepository.SetEnabled(ctx, userID, moduleID, enabled)
	if err != nil {
		return models.Module{}, err
	}

	action := "stop"
	if enabled {
		action = "start"
	}
	s.activity.info(ctx, userID, models.LogModuleModules, action, fmt.Sprintf("module %s: %s", module.Name, action))
	s.notifier.SendToUser(userID, models.Event{Type: models.EventModule, Data: module})

	return module, nil
}

// UpdateSettings persists settings as given. Schema checks happen in the
// validation wrapper.
func (s *moduleService) UpdateSettings(ctx context.Context, userID, moduleID int64, settings json.RawMessage) (models.Module, error) {
	module, err := s.moduleRepository.UpdateSettings(ctx, userID, moduleID, settings)
	if err != nil {
		return models.Module{}, err
	}

	s.activity.info(ctx, userID, models.LogModuleModules, "settings", fmt.Sprintf("module %s settings updated", module.Name))
	return module, nil
}
