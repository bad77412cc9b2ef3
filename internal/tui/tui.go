// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal shell of the command center: the login
// screen, the header with the signed-in user, the permission-filtered sidebar
// and one page per resource.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/imperial-command/internal/adapter"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/session"
	"github.com/MKhiriev/imperial-command/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	api       adapter.ServerAdapter
	sessions  *session.Holder
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(api adapter.ServerAdapter, sessions *session.Holder, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if api == nil || sessions == nil {
		return nil, errors.New("tui needs a server adapter and a session holder")
	}
	return &TUI{api: api, sessions: sessions, buildInfo: buildInfo, logger: logger}, nil
}

// Run shows the shell until the user quits. A saved session is restored and
// validated first; without one the login screen opens.
func (t *TUI) Run(ctx context.Context) error {
	model := t.initialModel(ctx)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	result, ok := finalModel.(appModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.err != nil && !errors.Is(result.err, ErrUserQuit) {
		return result.err
	}
	return nil
}

func (t *TUI) initialModel(ctx context.Context) appModel {
	model := newAppModel(ctx, t.api, t.sessions, t.logger, t.buildInfo)

	saved, err := t.sessions.Load()
	switch {
	case err == nil:
		t.logger.Debug().Str("username", saved.User.Username).Msg("restoring saved session")
		return model.withSession(saved)
	case errors.Is(err, session.ErrNoSession):
		return model
	default:
		t.logger.Warn().Err(err).Msg("discarding unreadable session")
		if clearErr := t.sessions.Clear(); clearErr != nil {
			t.logger.Warn().Err(clearErr).Msg("error clearing session")
		}
		return model
	}
}
