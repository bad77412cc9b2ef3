// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// DefaultStatsRange is the window used when a query gives no start.
const DefaultStatsRange = 7 * 24 * time.Hour

const dateLayout = "2006-01-02"

// statsService counts the caller's activity log entries per action.
type statsService struct {
	activityLogRepository store.ActivityLogRepository
	activity              activityRecorder
	now                   func() time.Time
	logger                *logger.Logger
}

func NewStatsService(activityLogRepository store.ActivityLogRepository, logger *logger.Logger) StatsService {
	return &statsService{
		activityLogRepository: activityLogRepository,
		activity:              activityRecorder{repository: activityLogRepository},
		now:                   time.Now,
		logger:                logger,
	}
}

// GetStats aggregates the entries of userID matching query. Zero bounds are
// filled in: To with the current time, From with To minus DefaultStatsRange.
// Module "all" spans every module.
func (s *statsService) GetStats(ctx context.Context, userID int64, query models.StatsQuery) (models.StatsResponse, error) {
	if !validStatsModule(query.Module) {
		return models.StatsResponse{}, ErrUnknownStatsModule
	}
	if query.To.IsZero() {
		query.To = s.now().UTC()
	}
	if query.From.IsZero() {
		query.From = query.To.Add(-DefaultStatsRange)
	}
	if query.From.After(query.To) {
		return models.StatsResponse{}, ErrInvalidStatsRange
	}

	filter := models.ActivityFilter{
		UserID: &userID,
		Action: query.Filter,
		From:   query.From,
		To:     query.To,
	}
	if query.Module != models.StatsModuleAll {
		filter.Module = query.Module
	}

	counts, err := s.activityLogRepository.CountByAction(ctx, filter)
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("error counting activity: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}

	s.activity.info(ctx, userID, models.LogModuleStats, "view", "statistics viewed for "+query.Module)
	return models.StatsResponse{StatsQuery: query, Stats: counts, Total: total}, nil
}

// ParseStatsQuery builds a StatsQuery from raw request values. Bounds accept
// RFC 3339 or a plain date; a plain date as upper bound covers the whole day.
func ParseStatsQuery(module, from, to, filter string) (models.StatsQuery, error) {
	query := models.StatsQuery{
		Module: strings.ToLower(strings.TrimSpace(module)),
		Filter: strings.TrimSpace(filter),
	}
	if !validStatsModule(query.Module) {
		return models.StatsQuery{}, ErrUnknownStatsModule
	}

	var err error
	if query.From, err = parseStatsTime("from", from, false); err != nil {
		return models.StatsQuery{}, err
	}
	if query.To, err = parseStatsTime("to", to, true); err != nil {
		return models.StatsQuery{}, err
	}
	if !query.From.IsZero() && !query.To.IsZero() && query.From.After(query.To) {
		return models.StatsQuery{}, ErrInvalidStatsRange
	}
	return query, nil
}

func parseStatsTime(field, value string, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, validators.NewValidationError(field, "%s must be an RFC 3339 timestamp or a YYYY-MM-DD date", field)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func validStatsModule(module string) bool {
	return module == models.StatsModuleAll || models.ModuleName(module).Valid()
}
