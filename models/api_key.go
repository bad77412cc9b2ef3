// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// APIKeyPrefixLen is the number of leading characters of a raw key kept
// in clear for display.
const APIKeyPrefixLen = 4

// APIKey is a third-party service credential owned by a user.
// Only a bcrypt hash of the raw key is stored.
type APIKey struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Service   string    `json:"service"`
	KeyHash   string    `json:"-"`
	Prefix    string    `json:"prefix"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the APIKey model.
func (k APIKey) TableName() string {
	return "api_keys"
}

// CreateAPIKeyRequest is the body of POST /api/apikeys.
type CreateAPIKeyRequest struct {
	Key     string `json:"key" validate:"required,min=10"`
	Service string `json:"service" validate:"required,min=2,max=64"`
}
