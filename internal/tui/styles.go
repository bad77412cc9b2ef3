// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

var (
	imperialRed  = lipgloss.Color("#C0392B")
	imperialGrey = lipgloss.Color("#7F8C8D")

	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(imperialRed)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(imperialRed)
	rankStyle   = lipgloss.NewStyle().Foreground(imperialGrey)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(imperialGrey).
			PaddingRight(2).
			Width(20)
	sidebarActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(imperialRed)
	contentStyle       = lipgloss.NewStyle().PaddingLeft(2)
)
