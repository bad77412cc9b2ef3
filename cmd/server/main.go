// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/handler"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/metrics"
	"github.com/MKhiriev/imperial-command/internal/realtime"
	"github.com/MKhiriev/imperial-command/internal/server"
	"github.com/MKhiriev/imperial-command/internal/service"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/workers"
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

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}
	if buildInfo.HasVersion() && cfg.App.Version == config.DefaultVersion {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log := logger.NewLogger("imperial-server", cfg.App.LogLevel)
	log.Debug().
		Str("address", cfg.Server.HTTPAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("avatars", cfg.Storage.Avatars.Backend).
		Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	storages, err := store.NewStorages(ctx, db, cfg.Storage.Avatars, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	m := metrics.NewMetrics(nil)
	hub := realtime.NewHub(cfg.Server.CORSOrigins, m.RealtimeConnections, log)
	background := workers.NewWorkers(log, hub)
	background.Start(ctx)

	services, err := service.NewServices(storages, hub, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, hub, m, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	cancel()
	background.Wait()
}
