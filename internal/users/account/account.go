// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

/*
Package account handles user profile management and Discogs integration settings.

It provides functionalities for users to view and update their identity data
and to connect or disconnect their personal Discogs API credentials.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    the identity validation rules, so profile edits obey exactly the same
    format and uniqueness policy as registration.
  - Security: Discogs consumer credentials are write-only through this API;
    they are stored but never serialized back to the client.
*/
package account

import (
	"context"

	"github.com/cratedig/cratedig/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
//
// Lookup methods normalize their arguments before querying, matching the
// auth store's case-insensitive semantics.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by its surrogate ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by username,
		matched case-insensitively.

		Parameters:
		  - context: context.Context
		  - username: string (raw; normalized internally)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		FindByEmail retrieves a user record by email address,
		matched case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string (raw; normalized internally)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*auth.User, error)

	/*
		UpdateIdentity replaces the username and email of an existing
		account. A concurrent writer that already claimed either value
		surfaces as an apperr.Conflict at commit time.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - username: string (normalized)
		  - email: string (normalized)

		Returns:
		  - error: apperr.Conflict or storage failures
	*/
	UpdateIdentity(context context.Context, userID int64, username, email string) error

	/*
		UpdateDiscogs stores a complete Discogs credential set for the
		account. The Discogs username is unique platform-wide; a clash
		surfaces as an apperr.Conflict.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - discogsUsername: string
		  - consumerKey: string
		  - consumerSecret: string

		Returns:
		  - error: apperr.Conflict or storage failures
	*/
	UpdateDiscogs(context context.Context, userID int64, discogsUsername, consumerKey, consumerSecret string) error

	/*
		ClearDiscogs removes the account's Discogs credential set.
		Idempotent: clearing an unconnected account succeeds.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Execution failures
	*/
	ClearDiscogs(context context.Context, userID int64) error
}
