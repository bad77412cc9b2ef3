// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package policy decides which parts of the command center a user may open.
// The same rules gate server routes and the console navigation.
package policy

import "github.com/MKhiriev/imperial-command/models"

// Resource names a navigable area of the command center.
type Resource string

const (
	ResourceDashboard  Resource = "dashboard"
	ResourceModules    Resource = "modules"
	ResourceSettings   Resource = "settings"
	ResourceInstagram  Resource = "instagram"
	ResourceYouTube    Resource = "youtube"
	ResourceStatistics Resource = "statistics"
	ResourceAdmin      Resource = "admin"
	ResourceSystem     Resource = "system"
)

// DefaultResource is where a user lands when the requested resource is denied.
const DefaultResource = ResourceDashboard

// Resources lists every resource in navigation order.
var Resources = []Resource{
	ResourceDashboard,
	ResourceModules,
	ResourceInstagram,
	ResourceYouTube,
	ResourceStatistics,
	ResourceAdmin,
	ResourceSystem,
	ResourceSettings,
}

// Subject is the minimal view of a user needed for access decisions.
type Subject struct {
	Role        models.Role
	Permissions models.Permissions
}

// SubjectOf builds a Subject from a sanitized user.
func SubjectOf(u models.UserResponse) Subject {
	return Subject{Role: u.Role, Permissions: u.Permissions}
}

// CanAccess reports whether s may open r.
//
// Admins and admirals may open everything. admin and system are reserved for
// them; feature resources require the matching permission flag; dashboard,
// modules and settings are open to every authenticated user. Unknown
// resources are denied.
func CanAccess(s Subject, r Resource) bool {
	if s.Role.IsAdmin() {
		return isKnown(r)
	}

	switch r {
	case ResourceDashboard, ResourceModules, ResourceSettings:
		return true
	case ResourceInstagram:
		return s.Permissions.Instagram
	case ResourceYouTube:
		return s.Permissions.YouTube
	case ResourceStatistics:
		return s.Permissions.Statistics
	default:
		return false
	}
}

// Resolve returns r when s may open it and DefaultResource otherwise.
func Resolve(s Subject, r Resource) Resource {
	if CanAccess(s, r) {
		return r
	}
	return DefaultResource
}

// Allowed returns the resources s may open, in navigation order.
func Allowed(s Subject) []Resource {
	out := make([]Resource, 0, len(Resources))
	for _, r := range Resources {
		if CanAccess(s, r) {
			out = append(out, r)
		}
	}
	return out
}

func isKnown(r Resource) bool {
	for _, known := range Resources {
		if known == r {
			return true
		}
	}
	return false
}
