// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/models"
)

// activityRecorder writes audit entries to the activity log. A failed write
// is logged and never fails the operation that triggered it.
type activityRecorder struct {
	repository store.ActivityLogRepository
}

func (a activityRecorder) record(ctx context.Context, userID int64, level models.LogLevel, module, action, message string) {
	if a.repository == nil {
		return
	}

	entry := models.ActivityLog{
		Level:   level,
		Module:  module,
		Action:  action,
		Message: message,
	}
	if userID > 0 {
		entry.UserID = &userID
	}

	if _, err := a.repository.CreateLog(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "activityRecorder.record").
			Str("module", module).
			Str("action", action).
			Msg("error writing activity log entry")
	}
}

func (a activityRecorder) info(ctx context.Context, userID int64, module, action, message string) {
	a.record(ctx, userID, models.LogLevelInfo, module, action, message)
}

// nopNotifier drops every event. Used when no realtime hub is configured.
type nopNotifier struct{}

func (nopNotifier) Broadcast(models.Event)           {}
func (nopNotifier) SendToUser(int64, models.Event) {}
