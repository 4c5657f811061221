// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import "time"

// # Login Lockout

// LoginAttempts is the explicit lockout state for a single caller: how many
// consecutive logins have failed and when the last failure happened.
//
// The type is a plain value. Every transition takes the prior state plus a
// clock reading and returns the next state; the caller owns storage and
// lifecycle (see [LoginAttemptRepository]). This keeps the policy trivially
// testable with a fixed clock.
type LoginAttempts struct {
	// Count is the number of consecutive failed attempts.
	Count int
	// LastFailure is when the most recent failed attempt happened.
	LastFailure time.Time
}

// Locked reports whether the caller is currently locked out: the failure
// budget is exhausted and the window since the last failure has not elapsed.
//
// A locked caller must be rejected before any store lookup or hash
// comparison happens (fail closed).
func (attempts LoginAttempts) Locked(now time.Time) bool {
	return attempts.Count >= MaxLoginAttempts &&
		now.Sub(attempts.LastFailure) < LockoutWindow
}

// Stale reports whether the recorded state has outlived the lockout window.
// Stale state counts as a clean slate: the lockout lifts on its own, even
// without a successful login in between.
func (attempts LoginAttempts) Stale(now time.Time) bool {
	return attempts.Count > 0 && now.Sub(attempts.LastFailure) >= LockoutWindow
}

// Fail returns the state after one more failed attempt at the given time.
// Stale prior state is discarded first, so an old burst of failures from
// last week doesn't stack with a fresh one.
func (attempts LoginAttempts) Fail(now time.Time) LoginAttempts {
	if attempts.Stale(now) {
		attempts = LoginAttempts{}
	}
	return LoginAttempts{
		Count:       attempts.Count + 1,
		LastFailure: now,
	}
}

// RetryAfter returns how long the caller must wait before the lockout lifts.
// Zero when not locked.
func (attempts LoginAttempts) RetryAfter(now time.Time) time.Duration {
	if !attempts.Locked(now) {
		return 0
	}
	return LockoutWindow - now.Sub(attempts.LastFailure)
}
