// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHolder(t *testing.T) *Holder {
	t.Helper()
	return NewHolder(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func sampleSession() Session {
	return Session{
		Token: "signed.jwt.token",
		User: models.UserResponse{
			ID:       1,
			Username: "admin",
			Name:     "Admiral Skywalker",
			Role:     models.RoleAdmin,
			Rank:     models.RankElite,
		},
	}
}

func TestLoad_NoFile(t *testing.T) {
	h := newTestHolder(t)

	_, err := h.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	_, ok := h.Current()
	assert.False(t, ok)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	h := newTestHolder(t)
	require.NoError(t, h.Save(sampleSession()))

	current, ok := h.Current()
	require.True(t, ok)
	assert.Equal(t, "signed.jwt.token", current.Token)
	assert.False(t, current.SavedAt.IsZero())

	fresh := NewHolder(h.Path())
	loaded, err := fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", loaded.Token)
	assert.Equal(t, models.RoleAdmin, loaded.User.Role)
	assert.Equal(t, "Admiral Skywalker", loaded.User.Name)
}

func TestSave_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	h := newTestHolder(t)
	require.NoError(t, h.Save(sampleSession()))

	info, err := os.Stat(h.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(h.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSave_RejectsEmptyToken(t *testing.T) {
	h := newTestHolder(t)

	err := h.Save(Session{Token: "  "})
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, statErr := os.Stat(h.Path())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLoad_InvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "garbage"},
		{name: "empty token", content: `{"token":"","user":{"id":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := NewHolder(path).Load()
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestClear(t *testing.T) {
	h := newTestHolder(t)
	require.NoError(t, h.Save(sampleSession()))

	require.NoError(t, h.Clear())
	_, ok := h.Current()
	assert.False(t, ok)

	_, err := os.Stat(h.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, h.Clear(), "clearing twice is fine")
}

func TestUpdateUser(t *testing.T) {
	h := newTestHolder(t)
	assert.NoError(t, h.UpdateUser(models.UserResponse{ID: 9}), "no-op without a session")

	require.NoError(t, h.Save(sampleSession()))
	updated := sampleSession().User
	updated.Permissions.Statistics = true
	require.NoError(t, h.UpdateUser(updated))

	loaded, err := NewHolder(h.Path()).Load()
	require.NoError(t, err)
	assert.True(t, loaded.User.Permissions.Statistics)
	assert.Equal(t, "signed.jwt.token", loaded.Token)
}
