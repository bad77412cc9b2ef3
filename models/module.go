// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// ModuleName identifies one of the feature modules a user can configure.
type ModuleName string

const (
	ModuleInstagram  ModuleName = "instagram"
	ModuleYouTube    ModuleName = "youtube"
	ModuleStatistics ModuleName = "statistics"
)

// DefaultModules lists the modules created for every new account.
var DefaultModules = []ModuleName{ModuleInstagram, ModuleYouTube, ModuleStatistics}

// Valid reports whether m is a known module name.
func (m ModuleName) Valid() bool {
	switch m {
	case ModuleInstagram, ModuleYouTube, ModuleStatistics:
		return true
	}
	return false
}

// EmptySettings is the settings document stored for a freshly created module.
var EmptySettings = json.RawMessage(`{}`)

// Module is a per-user feature module: an on/off switch plus a settings
// document whose shape depends on Name.
type Module struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Name      ModuleName      `json:"name"`
	Enabled   bool            `json:"enabled"`
	Settings  json.RawMessage `json:"settings"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Module model.
func (m Module) TableName() string {
	return "modules"
}

// InstagramSettings is the settings schema of the instagram module.
// All keys are optional.
type InstagramSettings struct {
	PostingInterval *int     `json:"postingInterval,omitempty" validate:"omitempty,min=1,max=1440"`
	Hashtags        []string `json:"hashtags,omitempty" validate:"omitempty,max=30,dive,required,max=100"`
	AutoLike        *bool    `json:"autoLike,omitempty"`
	Proxy           *string  `json:"proxy,omitempty" validate:"omitempty,url"`
}

// YouTubeSettings is the settings schema of the youtube module.
type YouTubeSettings struct {
	Quality   *string `json:"quality,omitempty" validate:"omitempty,oneof=144p 240p 360p 480p 720p 1080p 1440p 2160p"`
	Format    *string `json:"format,omitempty" validate:"omitempty,oneof=mp4 webm mp3 m4a"`
	OutputDir *string `json:"outputDir,omitempty" validate:"omitempty,max=255"`
}

// StatisticsSettings is the settings schema of the statistics module.
type StatisticsSettings struct {
	RefreshInterval *int    `json:"refreshInterval,omitempty" validate:"omitempty,min=5,max=3600"`
	DefaultRange    *string `json:"defaultRange,omitempty" validate:"omitempty,oneof=24h 7d 30d 90d"`
}

// ToggleModuleRequest is the body of PUT /api/modules/{id}/start-stop.
type ToggleModuleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// UpdateModuleSettingsRequest is the body of PATCH /api/modules/{id}/settings.
type UpdateModuleSettingsRequest struct {
	Settings json.RawMessage `json:"settings" validate:"required"`
}
