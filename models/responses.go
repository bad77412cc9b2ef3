// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges an operation with no other payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ThemeResponse is returned by PATCH /api/user/theme.
type ThemeResponse struct {
	Success bool   `json:"success"`
	Theme   string `json:"theme"`
}

// AvatarResponse is returned by POST /api/user/avatar.
type AvatarResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Image    string `json:"image"`
}
