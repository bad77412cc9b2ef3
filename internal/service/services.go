// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/validators"
)

// Services groups every service the HTTP layer depends on.
type Services struct {
	AuthService      AuthService
	UserService      UserService
	ProfileService   ProfileService
	ModuleService    ModuleService
	APIKeyService    APIKeyService
	StatsService     StatsService
	SystemService    SystemService
	InstagramService InstagramService
	YouTubeService   YouTubeService
}

// NewServices wires the services to storages. Module settings pass through
// the validation wrapper before they reach the store. notifier may be nil.
func NewServices(storages *store.Storages, notifier Notifier, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	requests := validators.NewRequestValidator()
	settings := validators.NewSettingsValidator(requests)

	systemService, err := NewSystemService(storages.UserRepository, storages.SystemRepository,
		storages.ActivityLogRepository, notifier, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	moduleService := NewModuleServiceValidationWrapper(storages.ModuleRepository, settings, logger).
		Wrap(NewModuleService(storages.ModuleRepository, storages.ActivityLogRepository, notifier, logger))

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, storages.ActivityLogRepository, requests, cfg.App, logger),
		UserService:      NewUserService(storages.UserRepository, storages.ActivityLogRepository, requests, logger),
		ProfileService:   NewProfileService(storages.UserRepository, storages.AvatarStorage, storages.ActivityLogRepository, requests, logger),
		ModuleService:    moduleService,
		APIKeyService:    NewAPIKeyService(storages.APIKeyRepository, storages.ActivityLogRepository, requests, logger),
		StatsService:     NewStatsService(storages.ActivityLogRepository, logger),
		SystemService:    systemService,
		InstagramService: NewInstagramService(storages.APIKeyRepository, storages.ModuleRepository, storages.ActivityLogRepository, requests, logger),
		YouTubeService:   NewYouTubeService(storages.APIKeyRepository, storages.ActivityLogRepository, requests, logger),
	}, nil
}
