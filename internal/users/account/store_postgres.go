// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cratedig/cratedig/internal/platform/dberr"
	"github.com/cratedig/cratedig/internal/users/auth"
)

// # Account Repository

// accountColumns mirrors the auth store's SELECT list so both packages
// hydrate [auth.User] identically.
const accountColumns = `
	id, username, email, passwordhash,
	COALESCE(discogsusername, ''),
	COALESCE(discogsconsumerkey, ''),
	COALESCE(discogsconsumersecret, ''),
	createdat, updatedat`

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// scanAccount hydrates a single account row from any pgx row source.
func scanAccount(row interface{ Scan(...any) error }) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DiscogsUsername,
		&user.DiscogsConsumerKey,
		&user.DiscogsConsumerSecret,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
FindByID retrieves a user record by its surrogate ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*auth.User, error) {
	query := `SELECT ` + accountColumns + ` FROM users.account WHERE id = $1`

	user, err := scanAccount(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by username, case-insensitively.

Parameters:
  - context: context.Context
  - username: string (raw)

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := `SELECT ` + accountColumns + ` FROM users.account WHERE username = $1`

	user, err := scanAccount(repository.pool.QueryRow(context, query, auth.NormalizeUsername(username)))
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by email address, case-insensitively.

Parameters:
  - context: context.Context
  - email: string (raw)

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + accountColumns + ` FROM users.account WHERE email = $1`

	user, err := scanAccount(repository.pool.QueryRow(context, query, auth.NormalizeEmail(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return user, nil
}

/*
UpdateIdentity replaces the username and email of an existing account.

Description: Both columns carry unique indexes on their normalized values; a
violation at commit time is translated into the matching domain Conflict.

Parameters:
  - context: context.Context
  - userID: int64
  - username: string (normalized)
  - email: string (normalized)

Returns:
  - error: apperr.Conflict on a claimed identity, or execution errors
*/
func (repository *PostgresAccountRepository) UpdateIdentity(context context.Context, userID int64, username, email string) error {
	const query = `
		UPDATE users.account
		SET username = $2, email = $3, updatedat = now()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, username, email)
	if err != nil {
		if translated, ok := auth.TranslateUniqueViolation(err); ok {
			return translated
		}
		return fmt.Errorf("postgres_account_repo_update_identity_failed: %w", err)
	}

	return nil
}

/*
UpdateDiscogs stores a complete Discogs credential set for the account.

Description: Empty strings are stored as NULL so the all-or-nothing check
constraint on the three columns stays meaningful. A clash on the unique
Discogs username index is translated into the matching domain Conflict.

Parameters:
  - context: context.Context
  - userID: int64
  - discogsUsername: string
  - consumerKey: string
  - consumerSecret: string

Returns:
  - error: apperr.Conflict or execution errors
*/
func (repository *PostgresAccountRepository) UpdateDiscogs(context context.Context, userID int64, discogsUsername, consumerKey, consumerSecret string) error {
	const query = `
		UPDATE users.account
		SET discogsusername = NULLIF($2, ''),
		    discogsconsumerkey = NULLIF($3, ''),
		    discogsconsumersecret = NULLIF($4, ''),
		    updatedat = now()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, discogsUsername, consumerKey, consumerSecret)
	if err != nil {
		if translated, ok := auth.TranslateUniqueViolation(err); ok {
			return translated
		}
		return fmt.Errorf("postgres_account_repo_update_discogs_failed: %w", err)
	}

	return nil
}

/*
ClearDiscogs removes the account's Discogs credential set.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) ClearDiscogs(context context.Context, userID int64) error {
	const query = `
		UPDATE users.account
		SET discogsusername = NULL,
		    discogsconsumerkey = NULL,
		    discogsconsumersecret = NULL,
		    updatedat = now()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_clear_discogs_failed: %w", err)
	}

	return nil
}
