// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"

	"github.com/MKhiriev/imperial-command/internal/logger"
)

// Shell is the interactive front end driven by App.
type Shell interface {
	Run(ctx context.Context) error
}

type App struct {
	ui     Shell
	logger *logger.Logger
}

func NewApp(ui Shell, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errors.New("client app needs a shell")
	}
	return &App{ui: ui, logger: logger}, nil
}

// Run blocks until the shell exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("client started")
	defer a.logger.Info().Msg("client stopped")

	if err := a.ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Err(err).Msg("shell exited with error")
		return err
	}
	return nil
}
