// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/metrics"
	"github.com/MKhiriev/imperial-command/internal/ratelimit"
	"github.com/MKhiriev/imperial-command/internal/realtime"
	"github.com/MKhiriev/imperial-command/internal/service"
)

// Handler owns the HTTP routes of the command center and the state their
// middleware shares: metrics, the per-IP rate limiter and the realtime hub.
type Handler struct {
	services *service.Services
	hub      *realtime.Hub
	metrics  *metrics.Metrics
	limiter  *ratelimit.Limiter
	cfg      config.Server

	logger *logger.Logger
}

// NewHandler builds a Handler. A nil metrics value gets a private registry;
// a non-positive rate limit disables limiting; a nil hub makes the realtime
// route answer 503.
func NewHandler(services *service.Services, hub *realtime.Hub, m *metrics.Metrics, cfg config.Server, logger *logger.Logger) *Handler {
	if m == nil {
		m = metrics.NewMetrics(nil)
	}

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window > 0 {
		limiter = ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window, ratelimit.DefaultSize)
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		metrics:  m,
		limiter:  limiter,
		cfg:      cfg,
		logger:   logger,
	}
}
