// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer the console client uses to
// talk to the imperial-command API.
//
// The primary abstraction is [ServerAdapter], which decouples the UI from the
// underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrForbidden] for 403, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/imperial-command/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// imperial-command server. Implementations are responsible for
// serialisation, authentication header management, and mapping
// transport-level errors to the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. An empty token clears it.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if none is set.
	Token() string

	// Login authenticates with username and password. On success the
	// returned token is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Me returns the account behind the current token.
	Me(ctx context.Context) (models.UserResponse, error)

	// Health reports server liveness. It needs no token.
	Health(ctx context.Context) (models.HealthResponse, error)

	// SystemStatus returns the operational status. Admins only.
	SystemStatus(ctx context.Context) (models.SystemStatus, error)

	// ListModules returns the modules of the current user.
	ListModules(ctx context.Context) ([]models.Module, error)

	// ToggleModule switches a module of the current user on or off.
	ToggleModule(ctx context.Context, id int64, enabled bool) (models.Module, error)

	// Stats returns the activity counts of module ("all" for every module).
	Stats(ctx context.Context, module string) (models.StatsResponse, error)

	// ListUsers returns every account. Admins only.
	ListUsers(ctx context.Context) ([]models.UserResponse, error)

	// DeleteUser removes the account with the given id. Admins only.
	DeleteUser(ctx context.Context, id int64) error
}
