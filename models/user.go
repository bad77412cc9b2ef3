// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the coarse authorization level of an account.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleAdmiral Role = "ADMIRAL"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleAdmiral:
		return true
	}
	return false
}

// IsAdmin reports whether r grants administrative access.
// ADMIRAL is a superset of ADMIN.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleAdmiral
}

// Rank is a cosmetic tier shown next to the user's name.
type Rank string

const (
	RankNone  Rank = "NONE"
	RankVIP   Rank = "VIP"
	RankElite Rank = "ELITE"
)

// Valid reports whether r is one of the known ranks.
func (r Rank) Valid() bool {
	switch r {
	case RankNone, RankVIP, RankElite:
		return true
	}
	return false
}

const (
	DefaultLanguage = "en"
	DefaultTheme    = "imperial"
)

// Permissions holds the per-feature access flags of a user.
// Admins bypass them; regular users need the matching flag.
type Permissions struct {
	Instagram  bool `json:"instagram"`
	YouTube    bool `json:"youtube"`
	Statistics bool `json:"statistics"`
}

// User represents an account entity used for authentication and authorization.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Password    string      `json:"-"`
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	Rank        Rank        `json:"rank"`
	Image       string      `json:"image,omitempty"`
	Language    string      `json:"language"`
	Theme       string      `json:"theme"`
	Permissions Permissions `json:"permissions"`
	LastLogin   *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ApplyDefaults fills empty role, rank, language and theme with their defaults.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Rank == "" {
		u.Rank = RankNone
	}
	if u.Language == "" {
		u.Language = DefaultLanguage
	}
	if u.Theme == "" {
		u.Theme = DefaultTheme
	}
}

// UserResponse is the sanitized projection of [User] returned to clients.
type UserResponse struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	Rank        Rank        `json:"rank"`
	Image       string      `json:"image,omitempty"`
	Language    string      `json:"language"`
	Theme       string      `json:"theme"`
	Permissions Permissions `json:"permissions"`
	LastLogin   *time.Time  `json:"lastLogin,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ToResponse strips credential material from u.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Rank:        u.Rank,
		Image:       u.Image,
		Language:    u.Language,
		Theme:       u.Theme,
		Permissions: u.Permissions,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToResponses converts a slice of users into their sanitized projections.
func ToResponses(users []User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out
}
