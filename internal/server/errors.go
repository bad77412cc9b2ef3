// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created")
	errRunningHTTPServer   = errors.New("error running HTTP server")
	errShuttingDownServer  = errors.New("error shutting down HTTP server")
)
