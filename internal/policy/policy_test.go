// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import (
	"testing"

	"github.com/MKhiriev/imperial-command/models"
	"github.com/stretchr/testify/assert"
)

func TestCanAccess(t *testing.T) {
	user := Subject{Role: models.RoleUser}
	userWithYouTube := Subject{Role: models.RoleUser, Permissions: models.Permissions{YouTube: true}}
	admin := Subject{Role: models.RoleAdmin}
	admiral := Subject{Role: models.RoleAdmiral}

	tests := []struct {
		name     string
		subject  Subject
		resource Resource
		want     bool
	}{
		{"user dashboard", user, ResourceDashboard, true},
		{"user modules", user, ResourceModules, true},
		{"user settings", user, ResourceSettings, true},
		{"user admin", user, ResourceAdmin, false},
		{"user system", user, ResourceSystem, false},
		{"user instagram without flag", user, ResourceInstagram, false},
		{"user youtube without flag", user, ResourceYouTube, false},
		{"user statistics without flag", user, ResourceStatistics, false},
		{"user youtube with flag", userWithYouTube, ResourceYouTube, true},
		{"user instagram with youtube flag", userWithYouTube, ResourceInstagram, false},
		{"admin admin", admin, ResourceAdmin, true},
		{"admin instagram without flag", admin, ResourceInstagram, true},
		{"admiral system", admiral, ResourceSystem, true},
		{"admiral unknown", admiral, Resource("deathstar"), false},
		{"user unknown", user, Resource("deathstar"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAccess(tt.subject, tt.resource))
		})
	}
}

func TestResolve_FallsBackToDashboard(t *testing.T) {
	user := Subject{Role: models.RoleUser}

	assert.Equal(t, ResourceDashboard, Resolve(user, ResourceAdmin))
	assert.Equal(t, ResourceSettings, Resolve(user, ResourceSettings))
}

func TestAllowed(t *testing.T) {
	user := Subject{Role: models.RoleUser, Permissions: models.Permissions{Statistics: true}}

	assert.Equal(t,
		[]Resource{ResourceDashboard, ResourceModules, ResourceStatistics, ResourceSettings},
		Allowed(user))
	assert.Equal(t, Resources, Allowed(Subject{Role: models.RoleAdmiral}))
}

func TestSubjectOf(t *testing.T) {
	u := models.UserResponse{Role: models.RoleAdmin, Permissions: models.Permissions{Instagram: true}}

	assert.Equal(t, Subject{Role: models.RoleAdmin, Permissions: models.Permissions{Instagram: true}}, SubjectOf(u))
}
