// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SettingMaintenance is the system_settings key of the maintenance flag.
const SettingMaintenance = "maintenance"

// SystemSetting is a single row of the system_settings table.
type SystemSetting struct {
	Key       string    `json:"key"`
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *int64    `json:"updatedBy,omitempty"`
}

// SystemStatus is returned by GET /api/system/status.
type SystemStatus struct {
	Status      string    `json:"status"`
	Maintenance bool      `json:"maintenance"`
	Users       int64     `json:"users"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// MaintenanceRequest is the body of PATCH /api/system/maintenance.
type MaintenanceRequest struct {
	Maintenance *bool `json:"maintenance" validate:"required"`
}

// MaintenanceResponse acknowledges a maintenance flag change.
type MaintenanceResponse struct {
	Success     bool `json:"success"`
	Maintenance bool `json:"maintenance"`
}
