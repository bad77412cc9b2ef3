// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// uniqueViolation reports whether err is a unique constraint violation and
// returns a description of the violated constraint: the constraint name for
// PostgreSQL, the "table.column" list for SQLite.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		if liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			// UNIQUE constraint failed: users.username
			msg := liteErr.Error()
			if i := strings.LastIndex(msg, ": "); i >= 0 {
				return msg[i+2:], true
			}
			return msg, true
		}
	}

	return "", false
}

// foreignKeyViolation reports whether err is a foreign key violation.
func foreignKeyViolation(err error) bool {
	if postgresError(err) == pgerrcode.ForeignKeyViolation {
		return true
	}

	var liteErr sqlite3.Error
	return errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// classifyUserConflict maps a unique violation on the users table to the
// matching sentinel. ok is false when err is not a unique violation.
func classifyUserConflict(err error) (sentinel error, ok bool) {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return nil, false
	}

	switch {
	case strings.Contains(constraint, "username"):
		return ErrUsernameTaken, true
	case strings.Contains(constraint, "email"):
		return ErrEmailTaken, true
	default:
		return ErrAlreadyExists, true
	}
}
