// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import (
	"fmt"
	"regexp"

	"github.com/cratedig/cratedig/internal/platform/validate"
)

// # Format Patterns

var (
	// usernamePattern: 3-20 characters from [A-Za-z0-9_-].
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

	// emailPattern is a pragmatic RFC-like shape, not a full RFC 5322 parser.
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Password policy. Go's regexp has no lookahead, so the policy
	// (at least one letter, at least one digit, restricted alphabet) is
	// decomposed into three independent matches with identical semantics.
	passwordAlphabet = regexp.MustCompile(`^[A-Za-z0-9@$!%*#?&]+$`)
	passwordLetter   = regexp.MustCompile(`[A-Za-z]`)
	passwordDigit    = regexp.MustCompile(`[0-9]`)
)

// # User-Facing Messages
//
// These strings are rendered directly in the web UI; treat them as part of
// the API contract.

const (
	MsgUsernameRequired = "Username is required"
	MsgUsernameFormat   = "Username must be 3-20 characters and contain only letters, numbers, underscores, and hyphens"
	MsgUsernameTaken    = "Username already taken"

	MsgEmailRequired   = "Email is required"
	MsgEmailFormat     = "Please provide a valid email address"
	MsgEmailRegistered = "Email already registered"

	MsgPasswordRequired    = "Password is required"
	MsgPasswordFormat      = "Password must contain at least one letter and one number"
	MsgNewPasswordRequired = "New password is required"

	MsgCurrentPasswordIncorrect = "Current password is incorrect"
	MsgInvalidCredentials       = "Invalid credentials"
	MsgRegistrationFailed       = "Registration failed. Please try again."
	MsgLoginFieldsRequired      = "Please provide both username/email and password"

	MsgDiscogsUsernameRequired = "Discogs username is required"
	MsgConsumerKeyRequired     = "Consumer key is required"
	MsgConsumerSecretRequired  = "Consumer secret is required"
	MsgDiscogsAlreadyConnected = "This Discogs username is already connected to another account"
)

// MsgPasswordTooShort is derived so the policy constant stays authoritative.
var MsgPasswordTooShort = fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)

// # Field Rules
//
// Each rule mirrors the per-field check ladder: required, then format. Rules
// never abort the chain — the caller accumulates violations across all fields
// and the resulting list is always ordered username, email, password.

// RuleUsername applies the username format ladder. It reports whether the
// value is well-formed, so the caller knows a uniqueness probe is meaningful.
func RuleUsername(v *validate.Validator, username string) bool {
	if username == "" {
		v.Fail(FieldUsername, MsgUsernameRequired)
		return false
	}
	if !usernamePattern.MatchString(username) {
		v.Fail(FieldUsername, MsgUsernameFormat)
		return false
	}
	return true
}

// RuleEmail applies the email format ladder. It reports whether the value is
// well-formed, so the caller knows a uniqueness probe is meaningful.
func RuleEmail(v *validate.Validator, email string) bool {
	if email == "" {
		v.Fail(FieldEmail, MsgEmailRequired)
		return false
	}
	if !emailPattern.MatchString(email) {
		v.Fail(FieldEmail, MsgEmailFormat)
		return false
	}
	return true
}

// RulePassword applies the password strength ladder under the given field
// name, so the same policy serves registration ("password") and password
// change ("new_password").
func RulePassword(v *validate.Validator, field, password, requiredMsg string) {
	if password == "" {
		v.Fail(field, requiredMsg)
		return
	}
	if len(password) < MinPasswordLength {
		v.Fail(field, MsgPasswordTooShort)
		return
	}
	if !passwordAlphabet.MatchString(password) ||
		!passwordLetter.MatchString(password) ||
		!passwordDigit.MatchString(password) {
		v.Fail(field, MsgPasswordFormat)
	}
}
