// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// instagramService answers the instagram endpoints with placeholder data.
// No request leaves the process; every response reports whether the caller
// has stored an instagram API key.
type instagramService struct {
	apiKeyRepository store.APIKeyRepository
	moduleRepository store.ModuleRepository
	activity         activityRecorder
	validator        validators.Validator
	now              func() time.Time
	logger           *logger.Logger
}

func NewInstagramService(apiKeyRepository store.APIKeyRepository, moduleRepository store.ModuleRepository,
	activityRepository store.ActivityLogRepository, validator validators.Validator, logger *logger.Logger) InstagramService {
	return &instagramService{
		apiKeyRepository: apiKeyRepository,
		moduleRepository: moduleRepository,
		activity:         activityRecorder{repository: activityRepository},
		validator:        validator,
		now:              time.Now,
		logger:           logger,
	}
}

func (s *instagramService) ConnectAccount(ctx context.Context, userID int64, req models.InstagramAccountRequest) (models.InstagramAccountResponse, error) {
	req.Username = strings.TrimPrefix(strings.TrimSpace(req.Username), "@")
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.InstagramAccountResponse{}, err
	}

	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.InstagramAccountResponse{}, err
	}

	s.activity.info(ctx, userID, models.LogModuleInstagram, "account", "connected account @"+req.Username)
	return models.InstagramAccountResponse{Success: true, Username: req.Username, APIKey: hasKey}, nil
}

func (s *instagramService) Stats(ctx context.Context, userID int64) (models.InstagramStats, error) {
	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.InstagramStats{}, err
	}

	s.activity.info(ctx, userID, models.LogModuleInstagram, "stats", "account statistics requested")
	return models.InstagramStats{APIKey: hasKey}, nil
}

func (s *instagramService) Posts(ctx context.Context, userID int64) (models.InstagramPostsResponse, error) {
	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.InstagramPostsResponse{}, err
	}

	now := s.now().UTC()
	posts := make([]models.InstagramPost, 0, 3)
	for i := 1; i <= 3; i++ {
		posts = append(posts, models.InstagramPost{
			ID:        utils.NewID(),
			Caption:   fmt.Sprintf("Imperial post #%d", i),
			CreatedAt: now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}

	s.activity.info(ctx, userID, models.LogModuleInstagram, "posts", "posts requested")
	return models.InstagramPostsResponse{Posts: posts, APIKey: hasKey}, nil
}

func (s *instagramService) GenerateContent(ctx context.Context, userID int64, req models.GenerateContentRequest) (models.GenerateContentResponse, error) {
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.GenerateContentResponse{}, err
	}

	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.GenerateContentResponse{}, err
	}

	s.activity.info(ctx, userID, models.LogModuleInstagram, "generate", "content generated")
	return models.GenerateContentResponse{
		Content: "Generated content for: " + req.Prompt,
		APIKey:  hasKey,
	}, nil
}

// UpdateProxy stores the proxy in the settings of the caller's instagram
// module. An empty proxy removes it.
func (s *instagramService) UpdateProxy(ctx context.Context, userID int64, req models.ProxyRequest) (models.ProxyResponse, error) {
	log := logger.FromContext(ctx)

	req.Proxy = strings.TrimSpace(req.Proxy)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ProxyResponse{}, err
	}

	module, err := s.instagramModule(ctx, userID)
	if err != nil {
		return models.ProxyResponse{}, err
	}

	settings := map[string]any{}
	if len(module.Settings) > 0 {
		if err = json.Unmarshal(module.Settings, &settings); err != nil {
			log.Err(err).Int64("module_id", module.ID).Msg("stored instagram settings are not an object")
			return models.ProxyResponse{}, fmt.Errorf("error decoding module settings: %w", err)
		}
	}
	if req.Proxy == "" {
		delete(settings, "proxy")
	} else {
		settings["proxy"] = req.Proxy
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return models.ProxyResponse{}, fmt.Errorf("error encoding module settings: %w", err)
	}
	if _, err = s.moduleRepository.UpdateSettings(ctx, userID, module.ID, raw); err != nil {
		return models.ProxyResponse{}, err
	}

	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.ProxyResponse{}, err
	}

	s.activity.info(ctx, userID, models.LogModuleInstagram, "proxy", "proxy updated")
	return models.ProxyResponse{Success: true, Proxy: req.Proxy, APIKey: hasKey}, nil
}

func (s *instagramService) instagramModule(ctx context.Context, userID int64) (models.Module, error) {
	modules, err := s.moduleRepository.ListModules(ctx, userID)
	if err != nil {
		return models.Module{}, fmt.Errorf("error listing modules: %w", err)
	}
	for _, m := range modules {
		if m.Name == models.ModuleInstagram {
			return m, nil
		}
	}
	return models.Module{}, store.ErrModuleNotFound
}

func (s *instagramService) hasKey(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.apiKeyRepository.HasAPIKey(ctx, userID, string(models.ModuleInstagram))
	if err != nil {
		return false, fmt.Errorf("error checking instagram api key: %w", err)
	}
	return ok, nil
}
