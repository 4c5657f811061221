// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookup methods normalize their arguments before querying, so callers may
// pass raw user input; matching is therefore case-insensitive. Every write
// is atomic per call — either fully applied or fully rolled back.
type UserRepository interface {

	/*
		FindByID returns the account with the given surrogate ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given username,
		matched case-insensitively.

		Parameters:
		  - context: context.Context
		  - username: string (raw; normalized internally)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email address,
		matched case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string (raw; normalized internally)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account and assigns its ID and
		timestamps. A concurrent writer that already claimed the username
		or email surfaces as an apperr.Conflict at commit time.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict, or other persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash and
		refreshes the updated-at timestamp.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error
}

// # Lockout Data Access

// LoginAttemptRepository persists the per-caller failed-login state between
// requests. The caller key identifies one session or client IP; state for
// different callers is fully independent.
type LoginAttemptRepository interface {

	/*
		Get returns the recorded attempt state for the caller. A caller
		with no recorded failures yields the zero value, not an error.

		Parameters:
		  - context: context.Context
		  - callerKey: string

		Returns:
		  - LoginAttempts: Current state (possibly zero)
		  - error: Retrieval failures
	*/
	Get(context context.Context, callerKey string) (LoginAttempts, error)

	/*
		Put stores the attempt state for the caller. Implementations bound
		the entry's lifetime to the lockout window so abandoned state
		expires on its own.

		Parameters:
		  - context: context.Context
		  - callerKey: string
		  - attempts: LoginAttempts

		Returns:
		  - error: Persistence failures
	*/
	Put(context context.Context, callerKey string, attempts LoginAttempts) error

	/*
		Clear removes the attempt state for the caller.

		Parameters:
		  - context: context.Context
		  - callerKey: string

		Returns:
		  - error: Persistence failures
	*/
	Clear(context context.Context, callerKey string) error
}
