// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command seed creates the default accounts of a fresh installation.
// Existing accounts are left untouched, so running it twice is harmless.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/models"
)

type account struct {
	user     models.User
	password string
}

var defaultAccounts = []account{
	{
		user: models.User{
			Username: "admin",
			Email:    "admin@example.com",
			Name:     "Admiral Skywalker",
			Language: "de",
			Role:     models.RoleAdmin,
			Rank:     models.RankElite,
		},
		password: "admin123",
	},
	{
		user: models.User{
			Username: "testuser",
			Email:    "user@example.com",
			Name:     "Luke Skywalker",
			Language: "en",
			Role:     models.RoleUser,
			Rank:     models.RankVIP,
		},
		password: "user123",
	},
	{
		user: models.User{
			Username: "commander",
			Email:    "commander@example.com",
			Name:     "Commander Vader",
			Language: "de",
			Role:     models.RoleAdmiral,
			Rank:     models.RankElite,
		},
		password: "commander123",
	},
}

func main() {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("imperial-seed", cfg.App.LogLevel)
	ctx := context.Background()

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

	created, err := seed(ctx, storages.UserRepository, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error seeding database")
	}
	log.Info().Int("created", created).Int("total", len(defaultAccounts)).Msg("database seeded")
}

// seed inserts every default account whose username is still free and
// returns how many were created.
func seed(ctx context.Context, users store.UserRepository, log *logger.Logger) (int, error) {
	created := 0
	for _, acc := range defaultAccounts {
		_, err := users.FindUserByUsername(ctx, acc.user.Username)
		if err == nil {
			log.Info().Str("username", acc.user.Username).Msg("account already exists, skipping")
			continue
		}
		if !errors.Is(err, store.ErrNoUserWasFound) {
			return created, fmt.Errorf("looking up %q: %w", acc.user.Username, err)
		}

		user := acc.user
		if user.Password, err = utils.HashPassword(acc.password); err != nil {
			return created, fmt.Errorf("hashing password of %q: %w", user.Username, err)
		}
		if user.Role.IsAdmin() {
			user.Permissions = models.Permissions{Instagram: true, YouTube: true, Statistics: true}
		}
		user.ApplyDefaults()

		if _, err = users.CreateUser(ctx, user); err != nil {
			return created, fmt.Errorf("creating %q: %w", user.Username, err)
		}
		created++
		log.Info().
			Str("username", user.Username).
			Str("role", string(user.Role)).
			Msg("account created")
	}
	return created, nil
}
