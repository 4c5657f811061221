// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/cratedig/internal/platform/apperr"
	"github.com/cratedig/cratedig/internal/platform/validate"
	"github.com/cratedig/cratedig/internal/users/auth"
)

/*
TestRuleUsername covers the username ladder: required, then format.
*/
func TestRuleUsername(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		wellFormed bool
		message    string
	}{
		{"valid_simple", "digger", true, ""},
		{"valid_with_underscore_hyphen", "crate_digger-77", true, ""},
		{"valid_min_length", "abc", true, ""},
		{"valid_max_length", "a2345678901234567890", true, ""},
		{"empty", "", false, auth.MsgUsernameRequired},
		{"too_short", "ab", false, auth.MsgUsernameFormat},
		{"too_long", "a23456789012345678901", false, auth.MsgUsernameFormat},
		{"illegal_space", "crate digger", false, auth.MsgUsernameFormat},
		{"illegal_symbol", "digger!", false, auth.MsgUsernameFormat},
		{"illegal_unicode", "diggér", false, auth.MsgUsernameFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			ok := auth.RuleUsername(v, tt.username)

			assert.Equal(t, tt.wellFormed, ok)
			if tt.wellFormed {
				assert.False(t, v.HasErrors())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, auth.FieldUsername, ae.Details[0].Field)
			assert.Equal(t, tt.message, ae.Details[0].Message)
		})
	}
}

/*
TestRuleEmail covers the email ladder: required, then format.
*/
func TestRuleEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		wellFormed bool
		message    string
	}{
		{"valid_simple", "dig@example.com", true, ""},
		{"valid_plus_tag", "dig+wantlist@example.co.uk", true, ""},
		{"empty", "", false, auth.MsgEmailRequired},
		{"missing_at", "dig.example.com", false, auth.MsgEmailFormat},
		{"missing_domain", "dig@", false, auth.MsgEmailFormat},
		{"missing_tld", "dig@example", false, auth.MsgEmailFormat},
		{"single_letter_tld", "dig@example.c", false, auth.MsgEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			ok := auth.RuleEmail(v, tt.email)

			assert.Equal(t, tt.wellFormed, ok)
			if tt.wellFormed {
				assert.False(t, v.HasErrors())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, auth.FieldEmail, ae.Details[0].Field)
			assert.Equal(t, tt.message, ae.Details[0].Message)
		})
	}
}

/*
TestRulePassword covers the strength ladder: required, length, then
composition (at least one letter and one digit from the allowed alphabet).
*/
func TestRulePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"valid_letters_digits", "vinyl4life", ""},
		{"valid_with_specials", "vinyl4life!", ""},
		{"valid_exact_min", "abcdefg1", ""},
		{"empty", "", auth.MsgPasswordRequired},
		{"too_short", "abc1", auth.MsgPasswordTooShort},
		{"no_digit", "vinylforever", auth.MsgPasswordFormat},
		{"no_letter", "12345678", auth.MsgPasswordFormat},
		{"illegal_character", "vinyl4life~", auth.MsgPasswordFormat},
		{"illegal_space", "vinyl 4 life", auth.MsgPasswordFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			auth.RulePassword(v, auth.FieldPassword, tt.password, auth.MsgPasswordRequired)

			if tt.message == "" {
				assert.False(t, v.HasErrors())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, auth.FieldPassword, ae.Details[0].Field)
			assert.Equal(t, tt.message, ae.Details[0].Message)
		})
	}
}

/*
TestRulePassword_FieldName verifies that the same ladder serves the password
change flow under its own field name and required message.
*/
func TestRulePassword_FieldName(t *testing.T) {
	v := &validate.Validator{}
	auth.RulePassword(v, auth.FieldNewPassword, "", auth.MsgNewPasswordRequired)

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 1)
	assert.Equal(t, auth.FieldNewPassword, ae.Details[0].Field)
	assert.Equal(t, auth.MsgNewPasswordRequired, ae.Details[0].Message)
}

/*
TestNormalization verifies the case folding applied to identity fields.
*/
func TestNormalization(t *testing.T) {
	assert.Equal(t, "cratedigger", auth.NormalizeUsername("  CrateDigger "))
	assert.Equal(t, "dig@example.com", auth.NormalizeEmail(" Dig@Example.COM "))
}
