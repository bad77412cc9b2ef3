// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/models"
)

type apiKeyRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAPIKeyRepository constructs an [APIKeyRepository] backed by db.
func NewAPIKeyRepository(db *DB, logger *logger.Logger) APIKeyRepository {
	logger.Debug().Msg("creating api key repository")
	return &apiKeyRepository{
		db:     db,
		logger: logger,
	}
}

// CreateAPIKey stores an already hashed key. A second key for the same
// (user, service) pair yields [ErrAPIKeyExists]; an unknown owner yields
// [ErrNoUserWasFound].
func (r *apiKeyRepository) CreateAPIKey(ctx context.Context, key models.APIKey) (models.APIKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAPIKeyQuery(r.db.builder, key, time.Now().UTC())
	if err != nil {
		return models.APIKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanAPIKey(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.CreateAPIKey").Msg("error inserting api key")
		if _, ok := uniqueViolation(err); ok {
			return models.APIKey{}, ErrAPIKeyExists
		}
		if foreignKeyViolation(err) {
			return models.APIKey{}, ErrNoUserWasFound
		}
		return models.APIKey{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return created, nil
}

// ListAPIKeys returns the keys owned by userID ordered by service.
func (r *apiKeyRepository) ListAPIKeys(ctx context.Context, userID int64) ([]models.APIKey, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAPIKeysQuery(r.db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*apiKeyRepository.ListAPIKeys").Msg("error executing list api keys query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]models.APIKey, 0)
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		keys = append(keys, key)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return keys, nil
}

// HasAPIKey reports whether userID stored a key for service.
func (r *apiKeyRepository) HasAPIKey(ctx context.Context, userID int64, service string) (bool, error) {
	query, args, err := buildCountAPIKeysQuery(r.db.builder, userID, service)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*apiKeyRepository.HasAPIKey").Msg("error counting api keys")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count > 0, nil
}

// DeleteAPIKey removes the key of userID for service or returns
// [ErrAPIKeyNotFound].
func (r *apiKeyRepository) DeleteAPIKey(ctx context.Context, userID int64, service string) error {
	query, args, err := buildDeleteAPIKeyQuery(r.db.builder, userID, service)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*apiKeyRepository.DeleteAPIKey").Msg("error deleting api key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return expectAffected(res, ErrAPIKeyNotFound)
}

func scanAPIKey(row rowScanner) (models.APIKey, error) {
	var key models.APIKey
	if err := row.Scan(&key.ID, &key.UserID, &key.Service, &key.KeyHash, &key.Prefix, &key.CreatedAt); err != nil {
		return models.APIKey{}, err
	}
	return key, nil
}
