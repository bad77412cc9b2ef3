// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
)

// moduleRepository is the SQL implementation of [ModuleRepository] over the
// "modules" table.
type moduleRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewModuleRepository constructs a [ModuleRepository] backed by db.
func NewModuleRepository(db *DB, logger *logger.Logger) ModuleRepository {
	logger.Debug().Msg("creating module repository")
	return &moduleRepository{
		db:     db,
		logger: logger,
	}
}

// ListModules returns the modules owned by userID ordered by id.
func (r *moduleRepository) ListModules(ctx context.Context, userID int64) ([]models.Module, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListModulesQuery(r.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.ListModules").Msg("error executing list modules query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	modules := make([]models.Module, 0, len(models.DefaultModules))
	for rows.Next() {
		module, err := scanModule(rows)
		if err != nil {
			log.Err(err).Str("func", "*moduleRepository.ListModules").Msg("error scanning module row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		modules = append(modules, module)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return modules, nil
}

// GetModule returns a single module owned by userID or [ErrModuleNotFound].
func (r *moduleRepository) GetModule(ctx context.Context, userID, moduleID int64) (models.Module, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetModuleQuery(r.db.builder, userID, moduleID)
	if err != nil {
		return models.Module{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	module, err := scanModule(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Module{}, ErrModuleNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*moduleRepository.GetModule").Msg("error selecting module")
		return models.Module{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return module, nil
}

// SetEnabled switches a module on or off.
func (r *moduleRepository) SetEnabled(ctx context.Context, userID, moduleID int64, enabled bool) (models.Module, error) {
	return r.update(ctx, "*moduleRepository.SetEnabled", userID, moduleID, map[string]any{"enabled": enabled})
}

// UpdateSettings replaces the settings document of a module. settings must
// already be a validated JSON object.
func (r *moduleRepository) UpdateSettings(ctx context.Context, userID, moduleID int64, settings []byte) (models.Module, error) {
	return r.update(ctx, "*moduleRepository.UpdateSettings", userID, moduleID, map[string]any{"settings": string(settings)})
}

func (r *moduleRepository) update(ctx context.Context, fn string, userID, moduleID int64, set map[string]any) (models.Module, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateModuleQuery(r.db.builder, userID, moduleID, set, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error building update module query")
		return models.Module{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	module, err := scanModule(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Module{}, ErrModuleNotFound
	}
	if err != nil {
		log.Err(err).Str("func", fn).Msg("error updating module")
		return models.Module{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return module, nil
}

func scanModule(row rowScanner) (models.Module, error) {
	var (
		module   models.Module
		name     string
		settings string
	)

	if err := row.Scan(&module.ID, &module.UserID, &name, &module.Enabled, &settings, &module.CreatedAt, &module.UpdatedAt); err != nil {
		return models.Module{}, err
	}

	module.Name = models.ModuleName(name)
	module.Settings = json.RawMessage(settings)
	if len(module.Settings) == 0 {
		module.Settings = models.EmptySettings
	}
	return module, nil
}
