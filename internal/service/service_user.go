// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

// userService implements the administrative user CRUD.
type userService struct {
	userRepository store.UserRepository
	activity       activityRecorder
	validator      validators.Validator
	logger         *logger.Logger
}

// NewUserService returns the UserService backed by the given repositories.
func NewUserService(userRepository store.UserRepository, activityRepository store.ActivityLogRepository,
	validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		activity:       activityRecorder{repository: activityRepository},
		validator:      validator,
		logger:         logger,
	}
}

// ListUsers returns every account.
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return users, nil
}

// GetUser returns the user with id or store.ErrNoUserWasFound.
func (s *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, id)
}

// CreateUser creates an account with an explicit role, rank and permissions.
// Role and rank default to USER and NONE.
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}
	if err := checkUnique(ctx, s.userRepository, req.Username, req.Email, 0); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateUser").Msg("error hashing password")
		return models.User{}, err
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		Role:     req.Role,
		Rank:     req.Rank,
		Image:    req.Image,
		Language: req.Language,
	}
	if req.Permissions != nil {
		user.Permissions = *req.Permissions
	}
	user.ApplyDefaults()

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	s.activity.info(ctx, actorID(ctx), models.LogModuleUsers, "create", "created user "+created.Username)
	return created, nil
}

// UpdateUser applies the non-nil fields of req to the user. Uniqueness of a
// changed username or email is checked against the other rows only.
func (s *userService) UpdateUser(ctx context.Context, id int64, req models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	trimPtr(req.Username)
	trimPtr(req.Email)
	trimPtr(req.Name)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	var username, email string
	if req.Username != nil && *req.Username != user.Username {
		username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		email = *req.Email
	}
	if err = checkUnique(ctx, s.userRepository, username, email, id); err != nil {
		return models.User{}, err
	}

	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.UpdateUser").Msg("error hashing password")
			return models.User{}, err
		}
		user.Password = hash
	}
	setIfPresent(&user.Username, req.Username)
	setIfPresent(&user.Email, req.Email)
	setIfPresent(&user.Name, req.Name)
	setIfPresent(&user.Role, req.Role)
	setIfPresent(&user.Rank, req.Rank)
	setIfPresent(&user.Image, req.Image)
	setIfPresent(&user.Language, req.Language)
	setIfPresent(&user.Theme, req.Theme)
	setIfPresent(&user.Permissions, req.Permissions)

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	s.activity.info(ctx, actorID(ctx), models.LogModuleUsers, "update", "updated user "+updated.Username)
	return updated, nil
}

// DeleteUser removes the user with id and records the deletion in the
// activity log.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.activity.record(ctx, actorID(ctx), models.LogLevelWarn, models.LogModuleUsers, "delete",
		"deleted user "+strconv.FormatInt(id, 10))
	return nil
}

// checkUnique fails with store.ErrUsernameTaken or store.ErrEmailTaken when
// another user than selfID already holds username or email. Empty values
// are not checked.
func checkUnique(ctx context.Context, repository store.UserRepository, username, email string, selfID int64) error {
	if username != "" {
		found, err := repository.FindUserByUsername(ctx, username)
		switch {
		case err == nil && found.ID != selfID:
			return store.ErrUsernameTaken
		case err != nil && !errors.Is(err, store.ErrNoUserWasFound):
			return fmt.Errorf("error checking username: %w", err)
		}
	}

	if email != "" {
		found, err := repository.FindUserByEmail(ctx, email)
		switch {
		case err == nil && found.ID != selfID:
			return store.ErrEmailTaken
		case err != nil && !errors.Is(err, store.ErrNoUserWasFound):
			return fmt.Errorf("error checking email: %w", err)
		}
	}

	return nil
}

// actorID returns the authenticated caller from ctx, zero when absent.
func actorID(ctx context.Context) int64 {
	id, _ := utils.GetUserIDFromContext(ctx)
	return id
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
