// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
)

// Storages aggregates every repository and blob store used by the services.
type Storages struct {
	UserRepository        UserRepository
	ModuleRepository      ModuleRepository
	APIKeyRepository      APIKeyRepository
	SystemRepository      SystemRepository
	ActivityLogRepository ActivityLogRepository
	AvatarStorage         AvatarStorage
}

// NewStorages builds the SQL repositories over db and the avatar backend
// selected in cfg.
func NewStorages(ctx context.Context, db *DB, cfg config.Avatars, log *logger.Logger) (*Storages, error) {
	avatars, err := NewAvatarStorage(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("error creating avatar storage: %w", err)
	}

	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		ModuleRepository:      NewModuleRepository(db, log),
		APIKeyRepository:      NewAPIKeyRepository(db, log),
		SystemRepository:      NewSystemRepository(db, log),
		ActivityLogRepository: NewActivityLogRepository(db, log),
		AvatarStorage:         avatars,
	}, nil
}

// NewAvatarStorage returns the file or S3 avatar backend.
func NewAvatarStorage(ctx context.Context, cfg config.Avatars, log *logger.Logger) (AvatarStorage, error) {
	switch cfg.Backend {
	case config.AvatarBackendS3:
		return NewS3AvatarStorage(ctx, cfg.S3, log)
	case config.AvatarBackendFile, "":
		return NewFileAvatarStorage(cfg.Dir, log)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidAvatarConfigs, cfg.Backend)
	}
}
