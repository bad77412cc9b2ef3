// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,bcryptmax"`
	Name     string `json:"name" validate:"required,min=2,max=128"`
}

// CreateUserRequest is the body of POST /api/users. Unlike registration an
// administrator may choose role, rank and permissions explicitly.
type CreateUserRequest struct {
	Username    string       `json:"username" validate:"required,min=3,max=64"`
	Email       string       `json:"email" validate:"required,email"`
	Password    string       `json:"password" validate:"required,min=6,bcryptmax"`
	Name        string       `json:"name" validate:"required,min=2,max=128"`
	Role        Role         `json:"role" validate:"omitempty,oneof=USER ADMIN ADMIRAL"`
	Rank        Rank         `json:"rank" validate:"omitempty,oneof=NONE VIP ELITE"`
	Image       string       `json:"image" validate:"omitempty,url"`
	Language    string       `json:"language" validate:"omitempty,min=2,max=8"`
	Permissions *Permissions `json:"permissions"`
}

// UpdateUserRequest is the body of PUT /api/users/{id}.
// Nil fields are left untouched.
type UpdateUserRequest struct {
	Username    *string      `json:"username" validate:"omitempty,min=3,max=64"`
	Email       *string      `json:"email" validate:"omitempty,email"`
	Password    *string      `json:"password" validate:"omitempty,min=6,bcryptmax"`
	Name        *string      `json:"name" validate:"omitempty,min=2,max=128"`
	Role        *Role        `json:"role" validate:"omitempty,oneof=USER ADMIN ADMIRAL"`
	Rank        *Rank        `json:"rank" validate:"omitempty,oneof=NONE VIP ELITE"`
	Image       *string      `json:"image" validate:"omitempty,url"`
	Language    *string      `json:"language" validate:"omitempty,min=2,max=8"`
	Theme       *string      `json:"theme" validate:"omitempty,min=1,max=32"`
	Permissions *Permissions `json:"permissions"`
}

// UpdateProfileRequest is the body of PUT /api/user/profile.
type UpdateProfileRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=128"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Image    *string `json:"image" validate:"omitempty,url"`
	Language *string `json:"language" validate:"omitempty,min=2,max=8"`
}

// ChangePasswordRequest is the body of PUT /api/user/password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,bcryptmax"`
}

// UpdateThemeRequest is the body of PATCH /api/user/theme.
type UpdateThemeRequest struct {
	Theme string `json:"theme" validate:"required,max=32"`
}
