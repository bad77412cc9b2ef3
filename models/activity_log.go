// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LogLevel is the severity of an activity log entry.
type LogLevel string

const (
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Activity log modules.
const (
	LogModuleAuth      = "auth"
	LogModuleUsers     = "users"
	LogModuleModules   = "modules"
	LogModuleAPIKeys   = "apikeys"
	LogModuleProfile   = "profile"
	LogModuleSystem    = "system"
	LogModuleInstagram = "instagram"
	LogModuleYouTube   = "youtube"
	LogModuleStats     = "statistics"
)

// ActivityLog is a persisted record of a significant user or system action.
// UserID is nil for system entries and for entries whose user was deleted.
type ActivityLog struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	Level     LogLevel  `json:"level"`
	Module    string    `json:"module"`
	Action    string    `json:"action"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the ActivityLog model.
func (l ActivityLog) TableName() string {
	return "activity_logs"
}

// ActivityFilter narrows an activity log query.
type ActivityFilter struct {
	UserID *int64
	Module string
	Action string
	From   time.Time
	To     time.Time
}

// ActionCount is the number of entries recorded for a single action.
type ActionCount struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}
