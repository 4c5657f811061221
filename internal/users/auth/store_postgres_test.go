// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/cratedig/internal/platform/apperr"
	"github.com/cratedig/cratedig/internal/users/auth"
)

/*
TestTranslateUniqueViolation verifies the constraint-to-message mapping that
turns commit-time index violations into user-facing conflicts.
*/
func TestTranslateUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		message    string
	}{
		{"username_index", "account_username_key", auth.MsgUsernameTaken},
		{"email_index", "account_email_key", auth.MsgEmailRegistered},
		{"discogs_index", "account_discogs_username_key", auth.MsgDiscogsAlreadyConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: tt.constraint,
			}

			translated, ok := auth.TranslateUniqueViolation(cause)
			require.True(t, ok)

			ae := apperr.As(translated)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
			assert.Equal(t, tt.message, ae.Message)
			assert.ErrorIs(t, translated, cause)
		})
	}
}

/*
TestTranslateUniqueViolation_Passthrough verifies that non-unique-violation
errors and unknown constraints are returned unchanged.
*/
func TestTranslateUniqueViolation_Passthrough(t *testing.T) {
	plain := errors.New("connection reset")
	translated, ok := auth.TranslateUniqueViolation(plain)
	assert.False(t, ok)
	assert.Equal(t, plain, translated)

	unknownConstraint := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "some_other_index",
	}
	translated, ok = auth.TranslateUniqueViolation(unknownConstraint)
	assert.False(t, ok)
	assert.Equal(t, error(unknownConstraint), translated)
}
