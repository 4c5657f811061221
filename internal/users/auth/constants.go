// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxLoginAttempts is the number of consecutive failed logins a caller
	// may accumulate before the lockout engages.
	MaxLoginAttempts = 5

	// LockoutWindow is how long the lockout holds after the last failed
	// attempt. It also bounds the lifetime of the attempt counter itself:
	// once the window passes without a failure, the state is stale and the
	// caller starts fresh.
	LockoutWindow = 15 * time.Minute
)
