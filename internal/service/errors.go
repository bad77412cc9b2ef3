// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Sentinel errors returned by the services. Store and validator sentinels
// pass through wrapped, so callers match those with [errors.Is] as well.
var (
	// ErrInvalidCredentials is returned by Login whether the user is absent
	// or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongOldPassword is returned by ChangePassword when the current
	// password does not match.
	ErrWrongOldPassword = errors.New("old password is incorrect")

	// ErrTokenCreationFailed is returned when a JWT cannot be signed.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is returned by ParseToken for any token that
	// does not verify: bad signature, wrong issuer or algorithm, malformed
	// claims or expiry.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrVersionIsNotSpecified is returned when the system service is built
	// without an application version.
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrInvalidAvatar is returned for uploads that are empty, too large or
	// not one of the accepted image types.
	ErrInvalidAvatar = errors.New("avatar must be a png, jpeg, gif or webp image of at most 2 MiB")

	// ErrInvalidStatsRange is returned when a statistics range ends before
	// it starts.
	ErrInvalidStatsRange = errors.New("from must not be after to")

	// ErrUnknownStatsModule is returned for a statistics module outside
	// instagram, youtube, statistics and all.
	ErrUnknownStatsModule = errors.New("unknown statistics module")
)
