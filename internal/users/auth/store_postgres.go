// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cratedig/cratedig/internal/platform/dberr"
)

// # Unique Constraint Translation

// Unique index names from data/migrations. A violation detected at commit
// time is translated into a client-safe Conflict naming the offending field;
// the raw SQLSTATE stays server-side.
const (
	constraintUsername        = "account_username_key"
	constraintEmail           = "account_email_key"
	constraintDiscogsUsername = "account_discogs_username_key"
)

// TranslateUniqueViolation maps a PostgreSQL unique violation on the
// users.account table to the matching domain Conflict. Non-unique-violation
// errors are returned unchanged for the caller to wrap.
func TranslateUniqueViolation(err error) (error, bool) {
	switch dberr.ConstraintName(err) {
	case constraintUsername:
		return dberr.Conflict(MsgUsernameTaken, err), true
	case constraintEmail:
		return dberr.Conflict(MsgEmailRegistered, err), true
	case constraintDiscogsUsername:
		return dberr.Conflict(MsgDiscogsAlreadyConnected, err), true
	}
	return err, false
}

// # User Repository

// userColumns is the canonical SELECT list for hydrating a [User].
// Absent Discogs credentials are NULL in storage and empty strings in Go.
const userColumns = `
	id, username, email, passwordhash,
	COALESCE(discogsusername, ''),
	COALESCE(discogsconsumerkey, ''),
	COALESCE(discogsconsumersecret, ''),
	createdat, updatedat`

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// scanUser hydrates a single account row from any pgx row source.
func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	user := &User{}
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
Create persists a new user record into the users.account table.

Description: The surrogate ID and both timestamps are assigned by the
database and written back into the entity. A unique-index violation on the
normalized username or email columns surfaces as apperr.Conflict — this is
the authoritative uniqueness check; the validation-time probe is only a
courtesy.

Parameters:
  - context: context.Context
  - user: *User (Username/Email already normalized)

Returns:
  - error: apperr.Conflict on a claimed identity, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (username, email, passwordhash)
		VALUES ($1, $2, $3)
		RETURNING id, createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		user.Username,
		user.Email,
		user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if translated, ok := TranslateUniqueViolation(err); ok {
			return translated
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by its surrogate ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by username, case-insensitively.

Description: The argument is normalized (lower-cased, trimmed) before the
lookup; the column stores normalized values, so a plain equality match is a
case-insensitive one with no per-query case-folding cost.

Parameters:
  - context: context.Context
  - username: string (raw)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, NormalizeUsername(username)))
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
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`

	user, err := scanUser(repository.pool.QueryRow(context, query, NormalizeEmail(email)))
	if err != nil {
		return nil, dberr.Wrap(err, "Account")
	}

	return user, nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Description: The updated-at timestamp is refreshed in the same statement so
the mutation is atomic.

Parameters:
  - context: context.Context
  - userID: int64
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = now()
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}
