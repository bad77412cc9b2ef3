// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/imperial-command/internal/logger"
)

// fileAvatarStorage keeps avatars as plain files in a single directory.
type fileAvatarStorage struct {
	dir    string
	logger *logger.Logger
}

// NewFileAvatarStorage creates dir if needed and returns a file-backed
// [AvatarStorage].
func NewFileAvatarStorage(dir string, log *logger.Logger) (AvatarStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty avatar directory", ErrInvalidAvatarName)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating avatar directory: %w", err)
	}

	log.Debug().Str("dir", dir).Msg("creating file avatar storage")
	return &fileAvatarStorage{dir: dir, logger: log}, nil
}

func (s *fileAvatarStorage) SaveAvatar(ctx context.Context, name, _ string, data []byte) error {
	if err := checkAvatarName(name); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o640); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileAvatarStorage.SaveAvatar").Msg("error writing avatar")
		return fmt.Errorf("error writing avatar: %w", err)
	}
	return nil
}

// OpenAvatar returns the file and a content type guessed from its extension.
func (s *fileAvatarStorage) OpenAvatar(_ context.Context, name string) (io.ReadCloser, string, error) {
	if err := checkAvatarName(name); err != nil {
		return nil, "", err
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", ErrAvatarNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("error opening avatar: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

func (s *fileAvatarStorage) DeleteAvatar(_ context.Context, name string) error {
	if err := checkAvatarName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrAvatarNotFound
	}
	return err
}

// checkAvatarName accepts only bare file names.
func checkAvatarName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidAvatarName
	}
	return nil
}
