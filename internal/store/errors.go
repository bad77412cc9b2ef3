// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when a lookup, update or delete targets a row
	// that does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrModuleNotFound is returned when a module id does not exist for the
	// given owner.
	ErrModuleNotFound = errors.New("module was not found")

	// ErrAPIKeyNotFound is returned when the caller has no key for a service.
	ErrAPIKeyNotFound = errors.New("api key was not found")

	// ErrSettingNotFound is returned when a system setting row is missing.
	ErrSettingNotFound = errors.New("system setting was not found")

	// ErrAlreadyExists is returned for a unique violation that does not map
	// to a more specific sentinel.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUsernameTaken is returned when another user already holds the username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when another user already holds the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrAPIKeyExists is returned when the user already stored a key for the
	// service.
	ErrAPIKeyExists = errors.New("api key for this service already exists")

	// ErrAvatarNotFound is returned when a stored avatar does not exist.
	ErrAvatarNotFound = errors.New("avatar was not found")

	// ErrInvalidAvatarName is returned for names that are not stored object
	// names (for example path traversal attempts).
	ErrInvalidAvatarName = errors.New("invalid avatar name")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
