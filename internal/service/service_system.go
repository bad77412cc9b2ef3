// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/models"
)

const (
	// StatusOK is reported by health and status while the process serves.
	StatusOK = "ok"

	// DefaultLogsLimit is the number of entries returned by Logs when the
	// caller does not ask for a specific count.
	DefaultLogsLimit = 100
)

// systemService reports process health and owns the maintenance flag.
// The flag lives in the database so every replica reads the same value.
type systemService struct {
	userRepository        store.UserRepository
	systemRepository      store.SystemRepository
	activityLogRepository store.ActivityLogRepository
	activity              activityRecorder
	notifier              Notifier

	// version is the application version reported by health and status.
	version string

	// startedAt is the construction time, the origin of the reported uptime.
	startedAt time.Time

	now    func() time.Time
	logger *logger.Logger
}

// NewSystemService constructs a SystemService. It fails with
// ErrVersionIsNotSpecified when cfg carries no version.
func NewSystemService(userRepository store.UserRepository, systemRepository store.SystemRepository,
	activityLogRepository store.ActivityLogRepository, notifier Notifier, cfg config.App, logger *logger.Logger) (SystemService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	return &systemService{
		userRepository:        userRepository,
		systemRepository:      systemRepository,
		activityLogRepository: activityLogRepository,
		activity:              activityRecorder{repository: activityLogRepository},
		notifier:              notifier,
		version:               cfg.Version,
		startedAt:             time.Now(),
		now:                   time.Now,
		logger:                logger,
	}, nil
}

func (s *systemService) Health(ctx context.Context) models.HealthResponse {
	return models.HealthResponse{
		Status:    StatusOK,
		Timestamp: s.now().UTC(),
		Version:   s.version,
	}
}

// Status reports the maintenance flag, the user count and the uptime.
// A flag that was never written reads as false.
func (s *systemService) Status(ctx context.Context) (models.SystemStatus, error) {
	maintenance, err := s.maintenance(ctx)
	if err != nil {
		return models.SystemStatus{}, err
	}

	users, err := s.userRepository.CountUsers(ctx)
	if err != nil {
		return models.SystemStatus{}, fmt.Errorf("error counting users: %w", err)
	}

	now := s.now()
	return models.SystemStatus{
		Status:      StatusOK,
		Maintenance: maintenance,
		Users:       users,
		Uptime:      now.Sub(s.startedAt).Round(time.Second).String(),
		Version:     s.version,
		Timestamp:   now.UTC(),
	}, nil
}

// SetMaintenance persists the flag and broadcasts it to every realtime client.
func (s *systemService) SetMaintenance(ctx context.Context, adminID int64, enabled bool) (models.MaintenanceResponse, error) {
	setting := models.SystemSetting{Key: models.SettingMaintenance, Value: enabled}
	if adminID > 0 {
		setting.UpdatedBy = &adminID
	}

	stored, err := s.systemRepository.SetSetting(ctx, setting)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*systemService.SetMaintenance").Msg("error storing maintenance flag")
		return models.MaintenanceResponse{}, fmt.Errorf("error storing maintenance flag: %w", err)
	}

	s.activity.record(ctx, adminID, models.LogLevelWarn, models.LogModuleSystem, "maintenance",
		fmt.Sprintf("maintenance mode set to %t", stored.Value))
	s.notifier.Broadcast(models.Event{
		Type: models.EventMaintenance,
		Data: map[string]bool{"maintenance": stored.Value},
	})

	return models.MaintenanceResponse{Success: true, Maintenance: stored.Value}, nil
}

// Logs returns the newest activity log entries of every user. A zero limit
// means DefaultLogsLimit.
func (s *systemService) Logs(ctx context.Context, limit uint64) ([]models.ActivityLog, error) {
	if limit == 0 {
		limit = DefaultLogsLimit
	}

	logs, err := s.activityLogRepository.ListLogs(ctx, models.ActivityFilter{}, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing activity logs: %w", err)
	}
	return logs, nil
}

func (s *systemService) maintenance(ctx context.Context) (bool, error) {
	setting, err := s.systemRepository.GetSetting(ctx, models.SettingMaintenance)
	if errors.Is(err, store.ErrSettingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error reading maintenance flag: %w", err)
	}
	return setting.Value, nil
}
