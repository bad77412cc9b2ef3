// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
)

type systemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSystemRepository constructs a [SystemRepository] backed by db.
func NewSystemRepository(db *DB, logger *logger.Logger) SystemRepository {
	logger.Debug().Msg("creating system repository")
	return &systemRepository{
		db:     db,
		logger: logger,
	}
}

// GetSetting returns the named setting or [ErrSettingNotFound].
func (r *systemRepository) GetSetting(ctx context.Context, name string) (models.SystemSetting, error) {
	query, args, err := buildGetSettingQuery(r.db.builder, name)
	if err != nil {
		return models.SystemSetting{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	setting, err := scanSetting(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SystemSetting{}, ErrSettingNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*systemRepository.GetSetting").Msg("error selecting setting")
		return models.SystemSetting{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return setting, nil
}

// SetSetting inserts or replaces a setting row and returns the stored value.
func (r *systemRepository) SetSetting(ctx context.Context, setting models.SystemSetting) (models.SystemSetting, error) {
	query, args, err := buildUpsertSettingQuery(r.db.builder, setting, time.Now().UTC())
	if err != nil {
		return models.SystemSetting{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	stored, err := scanSetting(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*systemRepository.SetSetting").Msg("error upserting setting")
		return models.SystemSetting{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return stored, nil
}

func scanSetting(row rowScanner) (models.SystemSetting, error) {
	var (
		setting   models.SystemSetting
		updatedBy sql.NullInt64
	)
	if err := row.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt, &updatedBy); err != nil {
		return models.SystemSetting{}, err
	}
	if updatedBy.Valid {
		id := updatedBy.Int64
		setting.UpdatedBy = &id
	}
	return setting, nil
}
