// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Requests and placeholder payloads of the instagram and youtube modules.
// The backends are not integrated with the real platforms; every payload
// reports whether the caller has stored an API key for the service.

type InstagramAccountRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

type InstagramAccountResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
	APIKey   bool   `json:"apiKey"`
}

type InstagramStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Posts     int64 `json:"posts"`
	APIKey    bool  `json:"apiKey"`
}

type InstagramPost struct {
	ID        string    `json:"id"`
	Caption   string    `json:"caption"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

type InstagramPostsResponse struct {
	Posts  []InstagramPost `json:"posts"`
	APIKey bool            `json:"apiKey"`
}

type GenerateContentRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}

type GenerateContentResponse struct {
	Content string `json:"content"`
	APIKey  bool   `json:"apiKey"`
}

type ProxyRequest struct {
	Proxy string `json:"proxy" validate:"omitempty,url"`
}

type ProxyResponse struct {
	Success bool   `json:"success"`
	Proxy   string `json:"proxy"`
	APIKey  bool   `json:"apiKey"`
}

type DownloadRequest struct {
	URL     string `json:"url" validate:"required,url"`
	Quality string `json:"quality" validate:"omitempty,oneof=144p 240p 360p 480p 720p 1080p 1440p 2160p"`
	Format  string `json:"format" validate:"omitempty,oneof=mp4 webm mp3 m4a"`
}

type DownloadResponse struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Status  string `json:"status"`
	Quality string `json:"quality,omitempty"`
	Format  string `json:"format,omitempty"`
	APIKey  bool   `json:"apiKey"`
}

type DownloadHistoryResponse struct {
	Downloads []ActivityLog `json:"downloads"`
	APIKey    bool          `json:"apiKey"`
}
