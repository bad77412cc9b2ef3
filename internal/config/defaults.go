// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	AvatarBackendFile = "file"
	AvatarBackendS3   = "s3"
)

// Defaults applied by [StructuredConfig.applyDefaults].
const (
	DefaultHTTPAddress      = "localhost:4000"
	DefaultTokenIssuer      = "imperial-command"
	DefaultTokenDuration    = 24 * time.Hour
	DefaultRequestTimeout   = 30 * time.Second
	DefaultRateLimitRequest = 100
	DefaultRateLimitWindow  = 15 * time.Minute
	DefaultVersion          = "dev"
	DefaultLogLevel         = "debug"
	DefaultAvatarDir        = "uploads/avatars"
	DefaultSQLiteDSN        = "file:imperial.db?_foreign_keys=on"
	DefaultCORSOrigin       = "http://localhost:3000"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}

	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DriverPostgres
		if cfg.Storage.DB.DSN == "" {
			cfg.Storage.DB.Driver = DriverSQLite
		}
	}
	if cfg.Storage.DB.Driver == DriverSQLite && cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultSQLiteDSN
	}
	if cfg.Storage.Avatars.Backend == "" {
		cfg.Storage.Avatars.Backend = AvatarBackendFile
	}
	if cfg.Storage.Avatars.Backend == AvatarBackendFile && cfg.Storage.Avatars.Dir == "" {
		cfg.Storage.Avatars.Dir = DefaultAvatarDir
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{DefaultCORSOrigin}
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = DefaultRateLimitRequest
	}
	if cfg.Server.RateLimit.Window == 0 {
		cfg.Server.RateLimit.Window = DefaultRateLimitWindow
	}
}
