// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return ErrUnknownDBDriver
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.Avatars.Backend {
	case AvatarBackendFile:
		if cfg.Storage.Avatars.Dir == "" {
			return ErrInvalidAvatarConfigs
		}
	case AvatarBackendS3:
		if cfg.Storage.Avatars.S3.Bucket == "" || cfg.Storage.Avatars.S3.Region == "" {
			return ErrInvalidAvatarConfigs
		}
	default:
		return ErrInvalidAvatarConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.RateLimit.Requests <= 0 || cfg.Server.RateLimit.Window <= 0 {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerURL == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.SessionFile == "" {
		return ErrInvalidSessionConfigs
	}

	return nil
}
