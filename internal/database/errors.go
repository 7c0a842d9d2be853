// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq"
)

// Sentinel errors returned (wrapped) by store methods. Callers test them with
// errors.Is.
var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("duplicate")

	// ErrNotProvider means the user has no provider link.
	ErrNotProvider = errors.New("user is not a treat provider")

	// ErrConflict means a concurrent transaction touched the same rows.
	ErrConflict = errors.New("transaction conflict")

	// ErrUnavailable means the database connection is gone.
	ErrUnavailable = errors.New("database unavailable")
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// isUniqueConstraintError reports whether err is a unique or primary key
// violation on either engine.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "primary key constraint")
}

// isForeignKeyError reports whether err is a foreign key violation.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// classify maps driver errors onto the package sentinels. Errors that match
// no sentinel are returned wrapped with op only.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isUniqueConstraintError(err):
		return fmt.Errorf("%s: %w: %v", op, ErrDuplicate, err)
	case isForeignKeyError(err):
		return fmt.Errorf("%s: %w: %v", op, ErrNotFound, err)
	case isTransactionConflict(err):
		return fmt.Errorf("%s: %w: %v", op, ErrConflict, err)
	case isConnectionError(err):
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
