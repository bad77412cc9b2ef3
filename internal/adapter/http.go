// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates cfg.ServerURL and configures
// the underlying resty client with the resolved base URL and request timeout.
//
// Returns an error if cfg.ServerURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// /api/login and stores the returned token.
func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&auth).
		Post("/api/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Err(err).Str("username", req.Username).Msg("login rejected")
		return models.AuthResponse{}, err
	}
	if auth.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("login response carries no token")
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Me implements [ServerAdapter].
func (h *httpServerAdapter) Me(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse
	if err := h.get(ctx, "/api/user/me", &user); err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	return user, nil
}

// Health implements [ServerAdapter].
func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse
	if err := h.get(ctx, "/api/health", &health); err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	return health, nil
}

// SystemStatus implements [ServerAdapter].
func (h *httpServerAdapter) SystemStatus(ctx context.Context) (models.SystemStatus, error) {
	var status models.SystemStatus
	if err := h.get(ctx, "/api/system/status", &status); err != nil {
		return models.SystemStatus{}, fmt.Errorf("system status request: %w", err)
	}
	return status, nil
}

// ListModules implements [ServerAdapter].
func (h *httpServerAdapter) ListModules(ctx context.Context) ([]models.Module, error) {
	var modules []models.Module
	if err := h.get(ctx, "/api/modules", &modules); err != nil {
		return nil, fmt.Errorf("list modules request: %w", err)
	}
	return modules, nil
}

// ToggleModule implements [ServerAdapter].
func (h *httpServerAdapter) ToggleModule(ctx context.Context, id int64, enabled bool) (models.Module, error) {
	var module models.Module

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.ToggleModuleRequest{Enabled: &enabled}).
		SetResult(&module).
		Put("/api/modules/" + strconv.FormatInt(id, 10) + "/start-stop")
	if err != nil {
		return models.Module{}, fmt.Errorf("toggle module request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Module{}, err
	}
	return module, nil
}

// Stats implements [ServerAdapter].
func (h *httpServerAdapter) Stats(ctx context.Context, module string) (models.StatsResponse, error) {
	if module == "" {
		module = models.StatsModuleAll
	}

	var stats models.StatsResponse
	if err := h.get(ctx, "/api/stats/"+url.PathEscape(module), &stats); err != nil {
		return models.StatsResponse{}, fmt.Errorf("stats request: %w", err)
	}
	return stats, nil
}

// ListUsers implements [ServerAdapter].
func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	var users []models.UserResponse
	if err := h.get(ctx, "/api/users", &users); err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	return users, nil
}

// DeleteUser implements [ServerAdapter].
func (h *httpServerAdapter) DeleteUser(ctx context.Context, id int64) error {
	resp, err := h.authedRequest(ctx).Delete("/api/users/" + strconv.FormatInt(id, 10))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}
	return mapHTTPError(resp)
}

// get issues an authenticated GET and decodes a 2xx body into result.
func (h *httpServerAdapter) get(ctx context.Context, path string, result any) error {
	resp, err := h.authedRequest(ctx).SetResult(result).Get(path)
	if err != nil {
		return err
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
