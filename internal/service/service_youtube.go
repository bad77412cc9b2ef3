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

const (
	// DownloadStatusQueued is the status of every accepted download.
	DownloadStatusQueued = "queued"

	// downloadAction is the activity log action of accepted downloads.
	downloadAction = "download"

	historyLimit = 50
)

// youtubeService accepts download requests without fetching anything. The
// activity log doubles as the download history.
type youtubeService struct {
	apiKeyRepository      store.APIKeyRepository
	activityLogRepository store.ActivityLogRepository
	activity              activityRecorder
	validator             validators.Validator
	logger                *logger.Logger
}

func NewYouTubeService(apiKeyRepository store.APIKeyRepository, activityLogRepository store.ActivityLogRepository,
	validator validators.Validator, logger *logger.Logger) YouTubeService {
	return &youtubeService{
		apiKeyRepository:      apiKeyRepository,
		activityLogRepository: activityLogRepository,
		activity:              activityRecorder{repository: activityLogRepository},
		validator:             validator,
		logger:                logger,
	}
}

func (s *youtubeService) Download(ctx context.Context, userID int64, req models.DownloadRequest) (models.DownloadResponse, error) {
	req.URL = strings.TrimSpace(req.URL)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.DownloadResponse{}, err
	}

	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.DownloadResponse{}, err
	}

	s.activity.info(ctx, userID, models.LogModuleYouTube, downloadAction, req.URL)
	return models.DownloadResponse{
		ID:      utils.NewID(),
		URL:     req.URL,
		Status:  DownloadStatusQueued,
		Quality: req.Quality,
		Format:  req.Format,
		APIKey:  hasKey,
	}, nil
}

// History returns the caller's latest accepted downloads, newest first.
func (s *youtubeService) History(ctx context.Context, userID int64) (models.DownloadHistoryResponse, error) {
	hasKey, err := s.hasKey(ctx, userID)
	if err != nil {
		return models.DownloadHistoryResponse{}, err
	}

	entries, err := s.activityLogRepository.ListLogs(ctx, models.ActivityFilter{
		UserID: &userID,
		Module: models.LogModuleYouTube,
		Action: downloadAction,
	}, historyLimit)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*youtubeService.History").Msg("error listing downloads")
		return models.DownloadHistoryResponse{}, fmt.Errorf("error listing downloads: %w", err)
	}

	return models.DownloadHistoryResponse{Downloads: entries, APIKey: hasKey}, nil
}

func (s *youtubeService) hasKey(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.apiKeyRepository.HasAPIKey(ctx, userID, string(models.ModuleYouTube))
	if err != nil {
		return false, fmt.Errorf("error checking youtube api key: %w", err)
	}
	return ok, nil
}
