// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cratedig/cratedig/internal/platform/validate"
	"github.com/cratedig/cratedig/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles and Discogs settings.
//
// Identity edits reuse the auth package's rule ladder, so a profile update
// can never produce an account that registration would have rejected.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID int64) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the editable identity fields.
type UpdateProfileInput struct {
	Username string
	Email    string
}

/*
UpdateProfile replaces the account's username and email.

Description: Applies the same format rules as registration and probes
uniqueness for any value that actually changed. The account's own current
values are exempt, so resubmitting an unchanged form is not a conflict.
Violations accumulate across both fields before anything is written.

Parameters:
  - context: context.Context
  - userID: int64
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation error list, Conflict (lost uniqueness race), or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateProfileInput) (*auth.User, error) {

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	v := &validate.Validator{}

	// A value equal to the account's own (after normalization) is exempt
	// from the uniqueness probe: the row that would match is this one.
	if auth.RuleUsername(v, username) && auth.NormalizeUsername(username) != user.Username {
		if _, err := service.accountRepository.FindByUsername(context, username); err == nil {
			v.Fail(auth.FieldUsername, auth.MsgUsernameTaken)
		}
	}

	if auth.RuleEmail(v, email) && auth.NormalizeEmail(email) != user.Email {
		if _, err := service.accountRepository.FindByEmail(context, email); err == nil {
			v.Fail(auth.FieldEmail, auth.MsgEmailRegistered)
		}
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	user.Username = auth.NormalizeUsername(username)
	user.Email = auth.NormalizeEmail(email)

	if err := service.accountRepository.UpdateIdentity(context, userID, user.Username, user.Email); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.Int64("user_id", userID))

	return user, nil
}

// # Discogs Integration

// DiscogsInput defines the credential set required to connect a Discogs account.
type DiscogsInput struct {
	DiscogsUsername string
	ConsumerKey     string
	ConsumerSecret  string
}

/*
LinkDiscogs connects the account to Discogs with a complete credential set.

Description: All three fields are required together; missing fields report in
order (username, key, secret) in one accumulated response. The Discogs
username is unique across the platform, which surfaces at commit time as a
Conflict when another account already claimed it. Relinking an already
connected account overwrites the stored credentials.

Parameters:
  - context: context.Context
  - userID: int64
  - input: DiscogsInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation error list, Conflict, or storage failures
*/
func (service *Service) LinkDiscogs(context context.Context, userID int64, input DiscogsInput) (*auth.User, error) {

	discogsUsername := strings.TrimSpace(input.DiscogsUsername)
	consumerKey := strings.TrimSpace(input.ConsumerKey)
	consumerSecret := strings.TrimSpace(input.ConsumerSecret)

	v := &validate.Validator{}
	v.Custom(auth.FieldDiscogsUsername, discogsUsername == "", auth.MsgDiscogsUsernameRequired)
	v.Custom(auth.FieldConsumerKey, consumerKey == "", auth.MsgConsumerKeyRequired)
	v.Custom(auth.FieldConsumerSecret, consumerSecret == "", auth.MsgConsumerSecretRequired)

	if err := v.Err(); err != nil {
		return nil, err
	}

	err := service.accountRepository.UpdateDiscogs(context, userID, discogsUsername, consumerKey, consumerSecret)
	if err != nil {
		return nil, fmt.Errorf("account_service_link_discogs_failed: %w", err)
	}

	service.logger.Info("user_discogs_linked",
		slog.Int64("user_id", userID),
		slog.String("discogs_username", discogsUsername),
	)

	return service.GetProfile(context, userID)
}

/*
UnlinkDiscogs removes the account's Discogs credentials.

Description: Idempotent. Unlinking an account that was never connected is
not an error.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *auth.User: The updated user profile
  - error: Execution failures
*/
func (service *Service) UnlinkDiscogs(context context.Context, userID int64) (*auth.User, error) {

	if err := service.accountRepository.ClearDiscogs(context, userID); err != nil {
		return nil, fmt.Errorf("account_service_unlink_discogs_failed: %w", err)
	}

	service.logger.Info("user_discogs_unlinked", slog.Int64("user_id", userID))

	return service.GetProfile(context, userID)
}
