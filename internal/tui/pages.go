// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/imperial-command/models"
)

type dashboardModel struct {
	health  models.HealthResponse
	modules []models.Module
	loading bool
	loaded  bool
}

func (m dashboardModel) View(user models.UserResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Welcome back, %s.\n\n", valueOrDash(user.Name))

	switch {
	case m.loading:
		b.WriteString("Contacting command center...\n")
	case !m.loaded:
		b.WriteString("No data. Press r to refresh.\n")
	default:
		fmt.Fprintf(&b, "Server:      %s\n", valueOrDash(m.health.Status))
		fmt.Fprintf(&b, "Version:     %s\n", valueOrDash(m.health.Version))
		fmt.Fprintf(&b, "Checked at:  %s\n", formatTime(&m.health.Timestamp))
		fmt.Fprintf(&b, "Modules:     %d of %d active\n", countEnabled(m.modules), len(m.modules))
	}
	fmt.Fprintf(&b, "Last login:  %s", formatTime(user.LastLogin))

	return renderPage("DASHBOARD", b.String(), "r: refresh")
}

func countEnabled(modules []models.Module) int {
	n := 0
	for _, mod := range modules {
		if mod.Enabled {
			n++
		}
	}
	return n
}

type modulesModel struct {
	items   []models.Module
	cursor  listCursor
	loading bool
}

func (m modulesModel) current() (models.Module, bool) {
	if len(m.items) == 0 || m.cursor.idx < 0 || m.cursor.idx >= len(m.items) {
		return models.Module{}, false
	}
	return m.items[m.cursor.idx], true
}

// find returns the module with the given name.
func (m modulesModel) find(name models.ModuleName) (models.Module, bool) {
	for _, mod := range m.items {
		if mod.Name == name {
			return mod, true
		}
	}
	return models.Module{}, false
}

func (m *modulesModel) replace(updated models.Module) {
	for i := range m.items {
		if m.items[i].ID == updated.ID {
			m.items[i] = updated
			return
		}
	}
}

func (m modulesModel) View() string {
	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString("Loading modules...")
	case len(m.items) == 0:
		b.WriteString("No modules")
	default:
		for i, mod := range m.items {
			fmt.Fprintf(&b, "%s[%-3s] %s\n", cursor(i == m.cursor.idx), onOff(mod.Enabled), mod.Name)
		}
	}
	return renderPage("MODULES", strings.TrimRight(b.String(), "\n"), "↑/↓: select │ space: start/stop │ r: refresh")
}

// featureView renders the instagram and youtube pages from the module list.
func featureView(name models.ModuleName, modules modulesModel) string {
	title := strings.ToUpper(string(name))
	if modules.loading {
		return renderPage(title, "Loading module...", "")
	}

	mod, ok := modules.find(name)
	if !ok {
		return renderPage(title, "Module is not provisioned for this account", "r: refresh")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status:    %s\n", onOff(mod.Enabled))
	fmt.Fprintf(&b, "Settings:  %s\n", fitText(string(mod.Settings), 60))
	fmt.Fprintf(&b, "Updated:   %s", formatTime(&mod.UpdatedAt))
	return renderPage(title, b.String(), "space: start/stop │ r: refresh")
}

var statsModules = []string{
	models.StatsModuleAll,
	string(models.ModuleInstagram),
	string(models.ModuleYouTube),
	string(models.ModuleStatistics),
}

type statsModel struct {
	moduleIdx int
	stats     models.StatsResponse
	loading   bool
	loaded    bool
}

func (m statsModel) module() string {
	return statsModules[m.moduleIdx]
}

func (m *statsModel) next() {
	m.moduleIdx = (m.moduleIdx + 1) % len(statsModules)
}

func (m *statsModel) prev() {
	m.moduleIdx = (m.moduleIdx - 1 + len(statsModules)) % len(statsModules)
}

func (m statsModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Module: < %s >\n\n", m.module())

	switch {
	case m.loading:
		b.WriteString("Loading statistics...")
	case !m.loaded:
		b.WriteString("No data")
	case len(m.stats.Stats) == 0:
		b.WriteString("No activity recorded")
	default:
		for _, c := range m.stats.Stats {
			fmt.Fprintf(&b, "%-28s %6d\n", fitText(c.Action, 28), c.Count)
		}
		fmt.Fprintf(&b, "%-28s %6d", "total", m.stats.Total)
	}
	return renderPage("STATISTICS", strings.TrimRight(b.String(), "\n"), "←/→: module │ r: refresh")
}

type adminModel struct {
	users   []models.UserResponse
	cursor  listCursor
	loading bool
}

func (m adminModel) current() (models.UserResponse, bool) {
	if len(m.users) == 0 || m.cursor.idx < 0 || m.cursor.idx >= len(m.users) {
		return models.UserResponse{}, false
	}
	return m.users[m.cursor.idx], true
}

func (m adminModel) View() string {
	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString("Loading personnel...")
	case len(m.users) == 0:
		b.WriteString("No users")
	default:
		for i, u := range m.users {
			fmt.Fprintf(&b, "%s%-4d %-16s %-8s %-6s %s\n",
				cursor(i == m.cursor.idx), u.ID, fitText(u.Username, 16), u.Role, u.Rank, fitText(u.Name, 24))
		}
	}
	return renderPage("ADMIN │ USERS", strings.TrimRight(b.String(), "\n"), "↑/↓: select │ d: delete │ r: refresh")
}

type systemModel struct {
	status  models.SystemStatus
	loading bool
	loaded  bool
}

func (m systemModel) View() string {
	if m.loading {
		return renderPage("SYSTEM", "Loading status...", "")
	}
	if !m.loaded {
		return renderPage("SYSTEM", "No data", "r: refresh")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Status:       %s\n", m.status.Status)
	fmt.Fprintf(&b, "Maintenance:  %s\n", onOff(m.status.Maintenance))
	fmt.Fprintf(&b, "Users:        %d\n", m.status.Users)
	fmt.Fprintf(&b, "Uptime:       %s\n", m.status.Uptime)
	fmt.Fprintf(&b, "Version:      %s", m.status.Version)
	return renderPage("SYSTEM", b.String(), "r: refresh")
}

func settingsView(user models.UserResponse, sessionPath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:         %s\n", valueOrDash(user.Name))
	fmt.Fprintf(&b, "Username:     %s\n", user.Username)
	fmt.Fprintf(&b, "Email:        %s\n", valueOrDash(user.Email))
	fmt.Fprintf(&b, "Role:         %s\n", user.Role)
	fmt.Fprintf(&b, "Rank:         %s\n", user.Rank)
	fmt.Fprintf(&b, "Language:     %s\n", valueOrDash(user.Language))
	fmt.Fprintf(&b, "Theme:        %s\n", valueOrDash(user.Theme))
	fmt.Fprintf(&b, "Permissions:  instagram %s, youtube %s, statistics %s\n",
		onOff(user.Permissions.Instagram), onOff(user.Permissions.YouTube), onOff(user.Permissions.Statistics))
	fmt.Fprintf(&b, "Session file: %s", sessionPath)
	return renderPage("SETTINGS", b.String(), "c: copy token")
}
