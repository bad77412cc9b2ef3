// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("no token provided")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrInvalidToken is returned when the bearer token does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned by the role and permission guards.
	ErrForbidden = errors.New("forbidden")

	// ErrRouteNotFound is returned for unknown routes and for known routes
	// requested with an unsupported method.
	ErrRouteNotFound = errors.New("route not found")

	// ErrTooManyRequests is returned when a client exceeds its rate limit.
	ErrTooManyRequests = errors.New("too many requests, please try again later")

	// ErrAvatarTooLarge is returned for avatar uploads above the size limit.
	ErrAvatarTooLarge = errors.New("avatar is too large")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrRealtimeUnavailable is returned when the server runs without a
	// realtime hub.
	ErrRealtimeUnavailable = errors.New("realtime channel is unavailable")
)
