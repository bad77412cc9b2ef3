// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// ModuleSettingsValidator checks a settings document against the schema of
// the named module and returns its normalized form.
type ModuleSettingsValidator interface {
	Normalize(ctx context.Context, name models.ModuleName, raw json.RawMessage) (json.RawMessage, error)
}

// moduleValidationService is a validation decorator for ModuleService.
// Settings are resolved against the schema of the module they target before
// the inner service persists them.
type moduleValidationService struct {
	inner            ModuleService
	moduleRepository store.ModuleRepository
	settings         ModuleSettingsValidator
	logger           *logger.Logger
}

type moduleValidationWrapper struct {
	moduleRepository store.ModuleRepository
	settings         ModuleSettingsValidator
	logger           *logger.Logger
}

// NewModuleServiceValidationWrapper returns a ModuleServiceWrapper that adds
// settings validation to any ModuleService.
func NewModuleServiceValidationWrapper(moduleRepository store.ModuleRepository, settings ModuleSettingsValidator,
	logger *logger.Logger) ModuleServiceWrapper {
	return &moduleValidationWrapper{
		moduleRepository: moduleRepository,
		settings:         settings,
		logger:           logger,
	}
}

func (w *moduleValidationWrapper) Wrap(inner ModuleService) ModuleService {
	return &moduleValidationService{
		inner:            inner,
		moduleRepository: w.moduleRepository,
		settings:         w.settings,
		logger:           w.logger,
	}
}

func (v *moduleValidationService) ListModules(ctx context.Context, userID int64) ([]models.Module, error) {
	return v.inner.ListModules(ctx, userID)
}

func (v *moduleValidationService) SetEnabled(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error) {
	return v.inner.SetEnabled(ctx, userID, moduleID, enabled)
}

// UpdateSettings looks the module up for its name, normalizes settings with
// that module's schema and hands the result to the inner service. A module
// not owned by userID fails with store.ErrModuleNotFound before validation.
func (v *moduleValidationService) UpdateSettings(ctx context.Context, userID, moduleID int64, settings json.RawMessage) (models.Module, error) {
	module, err := v.moduleRepository.GetModule(ctx, userID, moduleID)
	if err != nil {
		return models.Module{}, err
	}

	normalized, err := v.settings.Normalize(ctx, module.Name, settings)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("module", string(module.Name)).Msg("module settings rejected")
		return models.Module{}, err
	}

	return v.inner.UpdateSettings(ctx, userID, moduleID, normalized)
}

var _ ModuleSettingsValidator = (*validators.SettingsValidator)(nil)
