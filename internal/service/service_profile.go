// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/store"
	"github.com/MKhiriev/imperial-command/internal/utils"
	"github.com/MKhiriev/imperial-command/internal/validators"
	"github.com/MKhiriev/imperial-command/models"
)

const (
	// MaxAvatarSize is the largest accepted avatar upload in bytes.
	MaxAvatarSize = 2 << 20

	// AvatarURLPrefix is the route avatars are served from.
	AvatarURLPrefix = "/api/avatars/"
)

// avatarExtensions maps the accepted sniffed content types to file suffixes.
var avatarExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// profileService lets the authenticated user manage their own account.
type profileService struct {
	userRepository store.UserRepository
	avatarStorage  store.AvatarStorage
	activity       activityRecorder
	validator      validators.Validator
	logger         *logger.Logger
}

func NewProfileService(userRepository store.UserRepository, avatarStorage store.AvatarStorage,
	activityRepository store.ActivityLogRepository, validator validators.Validator, logger *logger.Logger) ProfileService {
	return &profileService{
		userRepository: userRepository,
		avatarStorage:  avatarStorage,
		activity:       activityRecorder{repository: activityRepository},
		validator:      validator,
		logger:         logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, userID)
}

// UpdateProfile applies name, email, image and language. A changed email must
// not belong to another user.
func (s *profileService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	trimPtr(req.Name)
	trimPtr(req.Email)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err = checkUnique(ctx, s.userRepository, "", *req.Email, userID); err != nil {
			return models.User{}, err
		}
	}

	setIfPresent(&user.Name, req.Name)
	setIfPresent(&user.Email, req.Email)
	setIfPresent(&user.Image, req.Image)
	setIfPresent(&user.Language, req.Language)

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	s.activity.info(ctx, userID, models.LogModuleProfile, "update", "profile updated")
	return updated, nil
}

// ChangePassword replaces the password after verifying the current one.
// A mismatch yields ErrWrongOldPassword.
func (s *profileService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := utils.CheckPassword(user.Password, req.OldPassword)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("error comparing password hash")
		return err
	}
	if !ok {
		return ErrWrongOldPassword
	}

	if user.Password, err = utils.HashPassword(req.NewPassword); err != nil {
		log.Err(err).Str("func", "*profileService.ChangePassword").Msg("error hashing password")
		return err
	}
	if _, err = s.userRepository.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("password update ended with error: %w", err)
	}

	s.activity.info(ctx, userID, models.LogModuleProfile, "password", "password changed")
	return nil
}

func (s *profileService) UpdateTheme(ctx context.Context, userID int64, req models.UpdateThemeRequest) (models.User, error) {
	req.Theme = strings.TrimSpace(req.Theme)
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	user.Theme = req.Theme

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("theme update ended with error: %w", err)
	}
	return updated, nil
}

// UploadAvatar stores data under a fresh random name and points the user's
// image at it. The content type is sniffed from the bytes, never taken from
// the client. A previously uploaded avatar is removed afterwards.
func (s *profileService) UploadAvatar(ctx context.Context, userID int64, data []byte) (models.AvatarResponse, error) {
	log := logger.FromContext(ctx)

	if len(data) == 0 || len(data) > MaxAvatarSize {
		return models.AvatarResponse{}, ErrInvalidAvatar
	}
	contentType := http.DetectContentType(data)
	ext, ok := avatarExtensions[contentType]
	if !ok {
		log.Info().Str("content_type", contentType).Msg("rejected avatar upload")
		return models.AvatarResponse{}, ErrInvalidAvatar
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.AvatarResponse{}, err
	}

	name := utils.NewID() + ext
	if err = s.avatarStorage.SaveAvatar(ctx, name, contentType, data); err != nil {
		log.Err(err).Str("func", "*profileService.UploadAvatar").Msg("error saving avatar")
		return models.AvatarResponse{}, fmt.Errorf("error saving avatar: %w", err)
	}

	previous := user.Image
	user.Image = AvatarURLPrefix + name
	if _, err = s.userRepository.UpdateUser(ctx, user); err != nil {
		_ = s.avatarStorage.DeleteAvatar(ctx, name)
		return models.AvatarResponse{}, fmt.Errorf("error updating user image: %w", err)
	}

	if old, found := strings.CutPrefix(previous, AvatarURLPrefix); found {
		if err = s.avatarStorage.DeleteAvatar(ctx, old); err != nil {
			log.Warn().Err(err).Str("avatar", old).Msg("error removing previous avatar")
		}
	}

	s.activity.info(ctx, userID, models.LogModuleProfile, "avatar", "avatar uploaded")
	return models.AvatarResponse{Success: true, Filename: name, Image: user.Image}, nil
}

func (s *profileService) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	return s.avatarStorage.OpenAvatar(ctx, name)
}
