// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/imperial-command/internal/adapter"
	"github.com/MKhiriev/imperial-command/internal/client"
	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/session"
	"github.com/MKhiriev/imperial-command/internal/tui"
	"github.com/MKhiriev/imperial-command/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the shell, so the client logs to a file.
	log := logger.NewClientLogger("imperial-client", cfg.LogLevel, cfg.LogFile)
	log.Debug().
		Str("server", cfg.ServerURL).
		Dur("timeout", cfg.RequestTimeout).
		Str("session_file", cfg.SessionFile).
		Msg("received configs")

	api, err := adapter.NewHTTPServerAdapter(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ui, err := tui.New(api, session.NewHolder(cfg.SessionFile), buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}
}
