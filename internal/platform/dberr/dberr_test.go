// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/cratedig/internal/platform/apperr"
	"github.com/cratedig/cratedig/internal/platform/dberr"
)

/*
TestWrap_NoRows verifies that pgx.ErrNoRows maps to a named NotFound.
*/
func TestWrap_NoRows(t *testing.T) {
	err := dberr.Wrap(pgx.ErrNoRows, "Account")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Account not found", ae.Message)
}

/*
TestWrap_Unknown verifies that unclassified errors become Internal with the
cause preserved for logging.
*/
func TestWrap_Unknown(t *testing.T) {
	cause := errors.New("connection reset")
	err := dberr.Wrap(cause, "Account")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
	assert.ErrorIs(t, err, cause)
}

/*
TestWrap_Nil verifies the nil passthrough.
*/
func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, dberr.Wrap(nil, "Account"))
}

/*
TestConstraintName verifies unique-violation detection and constraint
extraction against a constructed PgError.
*/
func TestConstraintName(t *testing.T) {
	unique := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "account_username_key",
	}

	assert.True(t, dberr.IsUniqueViolation(unique))
	assert.Equal(t, "account_username_key", dberr.ConstraintName(unique))

	// A different SQLSTATE yields nothing.
	other := &pgconn.PgError{Code: pgerrcode.NotNullViolation, ConstraintName: "whatever"}
	assert.False(t, dberr.IsUniqueViolation(other))
	assert.Empty(t, dberr.ConstraintName(other))

	assert.False(t, dberr.IsUniqueViolation(errors.New("plain")))
}

/*
TestConflict verifies the client-safe Conflict wrapper keeps the database
cause attached.
*/
func TestConflict(t *testing.T) {
	cause := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "account_email_key"}
	err := dberr.Conflict("Email already registered", cause)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Email already registered", ae.Message)
	assert.ErrorIs(t, err, cause)
}
