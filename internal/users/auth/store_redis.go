// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/constants"
)

// Hash field names for the Redis session representation.
const (
	sessionFieldTokenHash = "tokenhash"
	sessionFieldExpiresAt = "expiresat"
	sessionFieldCreatedAt = "createdat"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// # Supersede Semantics
//
// The session lives under a single key per user. HSET on an existing key
// overwrites all fields in one round trip, which IS the supersede: Redis
// executes each command atomically, so concurrent logins race to a single
// winner and never leave two live sessions behind. EXPIREAT lets Redis
// garbage-collect abandoned sessions on its own.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis-backed SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Put persists the session for a user, superseding any previous one.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionRepository) Put(context context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	key := sessionKey(session.UserID)

	pipeline := repository.client.TxPipeline()
	pipeline.HSet(context, key,
		sessionFieldTokenHash, session.TokenHash,
		sessionFieldExpiresAt, session.ExpiresAt.Unix(),
		sessionFieldCreatedAt, session.CreatedAt.Unix(),
	)
	pipeline.ExpireAt(context, key, session.ExpiresAt)

	if _, err := pipeline.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_put_failed: %w", err)
	}

	return nil
}

/*
FindByUserAndHash retrieves the user's session matching the token hash.

Description: Returns apperr.NotFound when the key is absent (Redis already
expired it) or when the stored hash does not match the presented one.

Parameters:
  - context: context.Context
  - userID: string
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByUserAndHash(context context.Context, userID, tokenHash string) (*Session, error) {
	key := sessionKey(userID)

	fields, err := repository.client.HGetAll(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_repo_find_failed: %w", err)
	}

	// HGetAll returns an empty map for a missing key rather than redis.Nil.
	if len(fields) == 0 || fields[sessionFieldTokenHash] != tokenHash {
		return nil, apperr.NotFound("Session")
	}

	session := &Session{
		UserID:    userID,
		TokenHash: fields[sessionFieldTokenHash],
	}

	if unixSeconds, parseErr := parseUnixField(fields[sessionFieldExpiresAt]); parseErr == nil {
		session.ExpiresAt = unixSeconds
	}
	if unixSeconds, parseErr := parseUnixField(fields[sessionFieldCreatedAt]); parseErr == nil {
		session.CreatedAt = unixSeconds
	}

	return session, nil
}

/*
Delete removes the session matching (userID, tokenHash), if any.

Parameters:
  - context: context.Context
  - userID: string
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, userID, tokenHash string) error {
	key := sessionKey(userID)

	// Only delete if the stored hash still matches; a concurrent re-login
	// must not have its fresh session removed.
	storedHash, err := repository.client.HGet(context, key, sessionFieldTokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis_session_repo_delete_lookup_failed: %w", err)
	}

	if storedHash != tokenHash {
		return nil
	}

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_delete_failed: %w", err)
	}

	return nil
}

/*
DeleteAllForUser removes the user's session key.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) DeleteAllForUser(context context.Context, userID string) error {
	if err := repository.client.Del(context, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_delete_all_failed: %w", err)
	}
	return nil
}

// sessionKey builds the Redis key for a user's session.
func sessionKey(userID string) string {
	return constants.RedisPrefixSession + userID
}

// parseUnixField converts a stored Unix timestamp string into time.Time.
func parseUnixField(value string) (time.Time, error) {
	var unixSeconds int64
	if _, err := fmt.Sscanf(value, "%d", &unixSeconds); err != nil {
		return time.Time{}, err
	}
	return time.Unix(unixSeconds, 0), nil
}
