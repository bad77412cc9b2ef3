// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Realtime event types pushed over the websocket channel.
const (
	EventWelcome     = "welcome"
	EventMaintenance = "maintenance"
	EventModule      = "module"
)

// Event is a single message sent to realtime clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}
