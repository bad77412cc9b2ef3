// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/imperial-command/internal/adapter"
)

var ErrUserQuit = errors.New("user quit")

func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Command center unreachable. Check the network or the server"
	}

	switch {
	case errors.Is(err, adapter.ErrForbidden):
		return "Access denied"
	case errors.Is(err, adapter.ErrTooManyRequests):
		return "Too many requests, try again later"
	}

	return err.Error()
}
