// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cratedig/cratedig/internal/platform/constants"
)

// Redis hash fields for one caller's lockout state.
const (
	attemptCountField = "attempt_count"
	lastAttemptField  = "last_attempt_time"
)

// RedisLoginAttemptRepository implements LoginAttemptRepository using Redis.
//
// Each caller's state lives in a small hash whose TTL equals the lockout
// window: Redis expiring the key IS the lockout lifting, so no cleanup job
// is needed and a crashed client never leaves a permanent lock behind.
type RedisLoginAttemptRepository struct {
	client *redis.Client
}

// NewLoginAttemptRepository creates a new Redis-backed LoginAttemptRepository.
func NewLoginAttemptRepository(client *redis.Client) *RedisLoginAttemptRepository {
	return &RedisLoginAttemptRepository{client: client}
}

/*
Get retrieves the attempt state for a caller.

Description: A missing key (never failed, or the window expired) yields the
zero state, not an error.

Parameters:
  - context: context.Context
  - callerKey: string

Returns:
  - LoginAttempts: Current state
  - error: Connectivity errors
*/
func (repository *RedisLoginAttemptRepository) Get(context context.Context, callerKey string) (LoginAttempts, error) {

	key := constants.RedisPrefixLoginAttempts + callerKey

	// HGetAll returns an empty map (no error) for a missing key.
	fields, err := repository.client.HGetAll(context, key).Result()
	if err != nil {
		return LoginAttempts{}, fmt.Errorf("redis_login_attempts_get_failed: %w", err)
	}
	if len(fields) == 0 {
		return LoginAttempts{}, nil
	}

	count, err := strconv.Atoi(fields[attemptCountField])
	if err != nil {
		return LoginAttempts{}, fmt.Errorf("redis_login_attempts_corrupt_count: %w", err)
	}

	lastUnix, err := strconv.ParseInt(fields[lastAttemptField], 10, 64)
	if err != nil {
		return LoginAttempts{}, fmt.Errorf("redis_login_attempts_corrupt_timestamp: %w", err)
	}

	return LoginAttempts{
		Count:       count,
		LastFailure: time.Unix(lastUnix, 0),
	}, nil
}

/*
Put stores the attempt state for a caller.

Description: The hash write and the TTL refresh travel in one pipeline, so
the entry can never outlive the lockout window.

Parameters:
  - context: context.Context
  - callerKey: string
  - attempts: LoginAttempts

Returns:
  - error: Persistence failures
*/
func (repository *RedisLoginAttemptRepository) Put(context context.Context, callerKey string, attempts LoginAttempts) error {

	key := constants.RedisPrefixLoginAttempts + callerKey

	pipeline := repository.client.TxPipeline()
	pipeline.HSet(context, key,
		attemptCountField, attempts.Count,
		lastAttemptField, attempts.LastFailure.Unix(),
	)
	pipeline.Expire(context, key, LockoutWindow)

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_login_attempts_put_failed: %w", err)
	}

	return nil
}

/*
Clear removes the attempt state for a caller after a successful login or an
expired window.

Parameters:
  - context: context.Context
  - callerKey: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisLoginAttemptRepository) Clear(context context.Context, callerKey string) error {

	key := constants.RedisPrefixLoginAttempts + callerKey

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_attempts_clear_failed: %w", err)
	}

	return nil
}
