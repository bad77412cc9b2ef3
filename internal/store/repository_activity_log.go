// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
)

type activityLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewActivityLogRepository constructs an [ActivityLogRepository] backed by db.
func NewActivityLogRepository(db *DB, logger *logger.Logger) ActivityLogRepository {
	logger.Debug().Msg("creating activity log repository")
	return &activityLogRepository{
		db:     db,
		logger: logger,
	}
}

// CreateLog appends an entry and returns it with its id and timestamp.
func (r *activityLogRepository) CreateLog(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	if entry.Level == "" {
		entry.Level = models.LogLevelInfo
	}

	query, args, err := buildInsertActivityLogQuery(r.db.builder, entry, time.Now().UTC())
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanActivityLog(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*activityLogRepository.CreateLog").Msg("error inserting activity log")
		return models.ActivityLog{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return created, nil
}

// ListLogs returns entries matching filter, newest first, at most limit
// entries when limit is positive.
func (r *activityLogRepository) ListLogs(ctx context.Context, filter models.ActivityFilter, limit uint64) ([]models.ActivityLog, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListActivityLogsQuery(r.db.builder, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.ListLogs").Msg("error executing list logs query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.ActivityLog, 0)
	for rows.Next() {
		entry, err := scanActivityLog(rows)
		if err != nil {
			log.Err(err).Str("func", "*activityLogRepository.ListLogs").Msg("error scanning activity log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return entries, nil
}

// CountByAction groups the entries matching filter by action, most frequent
// first.
func (r *activityLogRepository) CountByAction(ctx context.Context, filter models.ActivityFilter) ([]models.ActionCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountByActionQuery(r.db.builder, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*activityLogRepository.CountByAction").Msg("error executing count query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	counts := make([]models.ActionCount, 0)
	for rows.Next() {
		var c models.ActionCount
		if err = rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return counts, nil
}

func scanActivityLog(row rowScanner) (models.ActivityLog, error) {
	var (
		entry  models.ActivityLog
		userID sql.NullInt64
		level  string
	)
	if err := row.Scan(&entry.ID, &userID, &level, &entry.Module, &entry.Action, &entry.Message, &entry.CreatedAt); err != nil {
		return models.ActivityLog{}, err
	}
	entry.Level = models.LogLevel(level)
	if userID.Valid {
		id := userID.Int64
		entry.UserID = &id
	}
	return entry, nil
}
