// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the JWT token
// lifecycle. Passwords are stored as bcrypt hashes.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// activity records successful logins and registrations.
	activity activityRecorder

	// validator checks request payloads before anything is read or written.
	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// now is the clock used for last login stamps.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given repositories
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, activityRepository store.ActivityLogRepository,
	validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		activity:       activityRecorder{repository: activityRepository},
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new USER account with rank NONE and the default modules.
//
// Returns the persisted user or:
//   - a validation error (matches validators.ErrValidation) for a bad payload.
//   - store.ErrUsernameTaken / store.ErrEmailTaken when the username or email
//     is already used. Uniqueness is checked before anything is written; the
//     database constraint still catches a concurrent duplicate.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	if err := checkUnique(ctx, a.userRepository, req.Username, req.Email, 0); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.User{}, err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     models.RoleUser,
		Rank:     models.RankNone,
	}
	user.ApplyDefaults()

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.activity.info(ctx, registered.ID, models.LogModuleAuth, "register", "user "+registered.Username+" registered")
	return registered, nil
}

// Login authenticates a user by username and password and issues a token.
//
// An unknown username and a wrong password both yield ErrInvalidCredentials.
// For an unknown username a comparison against a dummy hash still runs so the
// response time does not reveal whether the account exists.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	log := logger.FromContext(ctx)

	req.Username = strings.TrimSpace(req.Username)
	if err := a.validator.Validate(ctx, req); err != nil {
		return models.AuthResponse{}, err
	}

	user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		utils.DummyCheckPassword(req.Password)
		log.Info().Str("username", req.Username).Msg("login attempt for unknown user")
		return models.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by username failed")
		return models.AuthResponse{}, fmt.Errorf("user search by username failed: %w", err)
	}

	ok, err := utils.CheckPassword(user.Password, req.Password)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("error comparing password hash")
		return models.AuthResponse{}, err
	}
	if !ok {
		log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("wrong password")
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("error creating token")
		return models.AuthResponse{}, err
	}

	loginAt := a.now().UTC()
	if err = a.userRepository.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("error updating last login")
		return models.AuthResponse{}, fmt.Errorf("error updating last login: %w", err)
	}
	user.LastLogin = &loginAt

	a.activity.info(ctx, user.ID, models.LogModuleAuth, "login", "user "+user.Username+" logged in")
	return models.AuthResponse{Token: token.String(), User: user.ToResponse()}, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim and the user's role, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
