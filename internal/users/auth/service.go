// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

/*
Package auth implements the core account and authentication use cases.

It orchestrates validation rules, the account store, the credential hasher,
and the login lockout into the register / login / change-password flows.

Architecture:

  - Service: Orchestrates business logic (Register, Login, ChangePassword).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Lockout).
  - Security: Bcrypt password hashing and RSA-signed JWTs.

Every mutating operation validates first — the complete error list is
accumulated and returned without touching the store — then persists, and
translates commit-time conflicts and unexpected storage failures into
client-safe messages.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cratedig/cratedig/internal/platform/apperr"
	"github.com/cratedig/cratedig/internal/platform/sec"
	"github.com/cratedig/cratedig/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID int64, username string, timeToLive time.Duration) (string, error)
}

// Service implements account authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, lockout,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	attemptRepository LoginAttemptRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	attemptRepo LoginAttemptRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		attemptRepository: attemptRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the raw data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Accumulates every violated rule (username, then email, then
password — including uniqueness probes) and returns the full list without
touching the store. On success the account is persisted with normalized
identity fields and a session token is issued, mirroring the web flow where
registration logs the user in.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *LoginSession: Created account plus access token
  - error: Validation error list, Conflict (lost uniqueness race), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*LoginSession, error) {

	if err := service.validateRegistration(context, input); err != nil {
		return nil, err
	}

	// Prevent storing plain-text passwords.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Identity fields are stored normalized; the unique indexes on the
	// normalized columns are what make uniqueness case-insensitive.
	user := &User{
		Username:     NormalizeUsername(input.Username),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hashedPassword,
	}

	// Persist. The validation-time uniqueness probes are racy by nature;
	// a concurrent registration that won the race surfaces here as a
	// Conflict, which we collapse to a retryable, non-specific message.
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsConflict(err) {
			conflict := apperr.Conflict(MsgRegistrationFailed)
			conflict.Cause = err
			return nil, conflict
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return service.openSession(user)
}

// validateRegistration accumulates all violated registration rules in
// deterministic field order: username, then email, then password. Uniqueness
// probes run only for well-formed values and are read-only.
func (service *Service) validateRegistration(context context.Context, input RegisterInput) error {
	v := &validate.Validator{}

	if RuleUsername(v, strings.TrimSpace(input.Username)) {
		if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
			v.Fail(FieldUsername, MsgUsernameTaken)
		}
	}

	if RuleEmail(v, strings.TrimSpace(input.Email)) {
		if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
			v.Fail(FieldEmail, MsgEmailRegistered)
		}
	}

	RulePassword(v, FieldPassword, input.Password, MsgPasswordRequired)

	return v.Err()
}

// # Availability Probes

/*
CheckUsername validates a single username the way registration would,
including the uniqueness probe. Used by the live form validation endpoint.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Validation error list, or nil when the username is acceptable
*/
func (service *Service) CheckUsername(context context.Context, username string) error {
	v := &validate.Validator{}
	if RuleUsername(v, strings.TrimSpace(username)) {
		if _, err := service.userRepository.FindByUsername(context, username); err == nil {
			v.Fail(FieldUsername, MsgUsernameTaken)
		}
	}
	return v.Err()
}

/*
CheckEmail validates a single email address the way registration would,
including the uniqueness probe. Used by the live form validation endpoint.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Validation error list, or nil when the email is acceptable
*/
func (service *Service) CheckEmail(context context.Context, email string) error {
	v := &validate.Validator{}
	if RuleEmail(v, strings.TrimSpace(email)) {
		if _, err := service.userRepository.FindByEmail(context, email); err == nil {
			v.Fail(FieldEmail, MsgEmailRegistered)
		}
	}
	return v.Err()
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login    string // Can be Username or Email
	Password string

	// CallerKey identifies the caller for the lockout counter (session ID
	// or client IP). State for different callers is independent.
	CallerKey string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *User
}

/*
Login validates user credentials and issues an access token.

Description: Enforces the per-caller lockout before any store or hash work
(fail closed), routes the identifier by the presence of '@' to an email or
username lookup, and performs a constant-time password comparison. Unknown
identity and wrong password collapse to one identical message to prevent
user enumeration.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session
  - err: Unauthorized, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	if input.Login == "" || input.Password == "" {
		return nil, validate.RequiredError(FieldLogin, MsgLoginFieldsRequired)
	}

	// Load lockout state. A limiter read failure is logged and treated as a
	// clean slate: the counter guards against brute force, and a cache blip
	// should not take logins down with it.
	now := time.Now()
	attempts, err := service.attemptRepository.Get(context, input.CallerKey)
	if err != nil {
		service.logger.Warn("login_attempt_state_unavailable", slog.Any("error", err))
		attempts = LoginAttempts{}
	}

	// Reject locked-out callers before touching the account store — no
	// lookup, no hash comparison, identical cost for every locked request.
	if attempts.Locked(now) {
		service.logger.Warn("login_locked_out",
			slog.String("caller", input.CallerKey),
			slog.Int("attempts", attempts.Count),
		)
		return nil, apperr.RateLimited(int(attempts.RetryAfter(now).Seconds()))
	}

	// The window has passed: the slate is clean again, even without a
	// successful login in between.
	if attempts.Stale(now) {
		_ = service.attemptRepository.Clear(context, input.CallerKey)
		attempts = LoginAttempts{}
	}

	// Route the identifier: an '@' means email, anything else is a username.
	var user *User
	if strings.Contains(input.Login, "@") {
		user, err = service.userRepository.FindByEmail(context, input.Login)
	} else {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// Unknown identity. Same message as a wrong password — enumeration-safe.
	if err != nil {
		service.recordFailure(context, input.CallerKey, attempts, now)
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	// Constant-time comparison inside bcrypt resists timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recordFailure(context, input.CallerKey, attempts, now)
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}

	// Success clears the caller's failure history entirely.
	if err := service.attemptRepository.Clear(context, input.CallerKey); err != nil {
		service.logger.Warn("login_attempt_clear_failed", slog.Any("error", err))
	}

	service.logger.Info("user_logged_in", slog.Int64("user_id", user.ID))

	return service.openSession(user)
}

// recordFailure advances the caller's lockout state by one failed attempt.
// Best effort: a write failure is logged, never surfaced to the caller.
func (service *Service) recordFailure(context context.Context, callerKey string, attempts LoginAttempts, now time.Time) {
	next := attempts.Fail(now)
	if err := service.attemptRepository.Put(context, callerKey, next); err != nil {
		service.logger.Warn("login_attempt_record_failed", slog.Any("error", err))
	}
}

// openSession issues a fresh access token for an authenticated user.
func (service *Service) openSession(user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken: accessToken,
		ExpiresIn:   AccessTokenTTL,
		User:        user,
	}, nil
}

// # Password Change

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password and applies the same strength
rules as registration to the replacement. Both violations accumulate into
one list — a wrong current password does not hide a weak new password. The
stored hash is untouched unless every rule passes.

Parameters:
  - context: context.Context
  - userID: int64
  - currentPassword: string
  - newPassword: string

Returns:
  - err: Validation error list or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID int64, currentPassword, newPassword string) error {

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_lookup_failed: %w", err)
	}

	v := &validate.Validator{}
	v.Custom(FieldCurrentPassword,
		!sec.CheckPasswordHash(currentPassword, user.PasswordHash),
		MsgCurrentPasswordIncorrect,
	)
	RulePassword(v, FieldNewPassword, newPassword, MsgNewPasswordRequired)

	if err := v.Err(); err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	service.logger.Info("user_password_changed", slog.Int64("user_id", userID))

	return nil
}
