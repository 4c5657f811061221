// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why commit-time classification matters
//
// Uniqueness of usernames, emails, and Discogs usernames is enforced by
// unique indexes, not by pre-check queries. Two concurrent registrations can
// both pass validation; only one INSERT commits, and the loser surfaces here
// as a unique-violation that must be translated into a Conflict — never into
// a raw SQLSTATE leaked to the client.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cratedig/cratedig/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Unique violations are NOT handled here: repositories translate those
// per-constraint via [ConstraintName] so the Conflict message can name the
// offending field.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// ConstraintName extracts the violated constraint name from a unique-violation
// error. Returns an empty string for any other error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}

// Conflict builds a client-safe Conflict error carrying the violated
// constraint's cause for server-side logging.
func Conflict(msg string, cause error) error {
	conflict := apperr.Conflict(msg)
	conflict.Cause = cause
	return conflict
}
