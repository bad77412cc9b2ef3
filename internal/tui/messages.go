// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/imperial-command/internal/session"
	"github.com/MKhiriev/imperial-command/models"
)

type loginDoneMsg struct {
	session session.Session
	err     error
}

type sessionRestoredMsg struct {
	user models.UserResponse
	err  error
}

type dashboardLoadedMsg struct {
	health  models.HealthResponse
	modules []models.Module
	err     error
}

type modulesLoadedMsg struct {
	modules []models.Module
	err     error
}

type moduleToggledMsg struct {
	module models.Module
	err    error
}

type statsLoadedMsg struct {
	stats models.StatsResponse
	err   error
}

type usersLoadedMsg struct {
	users []models.UserResponse
	err   error
}

type userDeletedMsg struct {
	id  int64
	err error
}

type systemLoadedMsg struct {
	status models.SystemStatus
	err    error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
