// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST and realtime transport of the command
// center.
//
// It exposes route wiring, request handlers and middleware. Cross-cutting
// concerns such as request tracing, access logging, metrics, rate limiting,
// CORS, authentication and role or permission guards are handled in this
// package before requests are delegated to the service layer.
package http
