// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// apiKeyService stores third-party API keys as bcrypt hashes. Only a short
// prefix of the plain key is kept for display.
type apiKeyService struct {
	apiKeyRepository store.APIKeyRepository
	activity         activityRecorder
	validator        validators.Validator
	logger           *logger.Logger
}

func NewAPIKeyService(apiKeyRepository store.APIKeyRepository, activityRepository store.ActivityLogRepository,
	validator validators.Validator, logger *logger.Logger) APIKeyService {
	return &apiKeyService{
		apiKeyRepository: apiKeyRepository,
		activity:         activityRecorder{repository: activityRepository},
		validator:        validator,
		logger:           logger,
	}
}

// CreateAPIKey stores the key for req.Service. The service name is
// case-insensitive. A second key for the same service fails with
// store.ErrAPIKeyExists.
func (s *apiKeyService) CreateAPIKey(ctx context.Context, userID int64, req models.CreateAPIKeyRequest) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	req.Service = normalizeService(req.Service)
	req.Key = strings.TrimSpace(req.Key)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.APIKey{}, err
	}

	hash, err := utils.HashPassword(req.Key)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyService.CreateAPIKey").Msg("error hashing api key")
		return models.APIKey{}, err
	}

	key, err := s.apiKeyRepository.CreateAPIKey(ctx, models.APIKey{
		UserID:  userID,
		Service: req.Service,
		KeyHash: hash,
		Prefix:  utils.APIKeyPrefix(req.Key, models.APIKeyPrefixLen),
	})
	if err != nil {
		return models.APIKey{}, fmt.Errorf("api key creation ended with error: %w", err)
	}

	s.activity.info(ctx, userID, models.LogModuleAPIKeys, "create", "api key added for "+key.Service)
	return key, nil
}

func (s *apiKeyService) ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error) {
	keys, err := s.apiKeyRepository.ListAPIKeys(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing api keys: %w", err)
	}
	return keys, nil
}

func (s *apiKeyService) DeleteAPIKey(ctx context.Context, userID int64, service string) error {
	service = normalizeService(service)
	if err := s.apiKeyRepository.DeleteAPIKey(ctx, userID, service); err != nil {
		return err
	}

	s.activity.info(ctx, userID, models.LogModuleAPIKeys, "delete", "api key removed for "+service)
	return nil
}

func (s *apiKeyService) HasAPIKey(ctx context.Context, userID int64, service string) (bool, error) {
	return s.apiKeyRepository.HasAPIKey(ctx, userID, normalizeService(service))
}

func normalizeService(service string) string {
	return strings.ToLower(strings.TrimSpace(service))
}
