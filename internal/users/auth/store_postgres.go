// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

// PostgreSQL implementations of the auth repositories.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # err Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via dberr to avoid leaking storage implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkotelnikov/stockroom/internal/platform/dberr"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. Unique indexes on username and email make the uniqueness check
atomic with the insertion; violations surface as Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, usergroup, avatarurl, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Group,
		user.AvatarURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User")
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, usergroup, avatarurl, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	return repository.scanUser(repository.pool.QueryRow(context, query, id))
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup by username for authentication and profile resolution.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, usergroup, avatarurl, createdat, updatedat
		FROM users.account
		WHERE username = $1`

	return repository.scanUser(repository.pool.QueryRow(context, query, username))
}

/*
List retrieves every registered account ordered by creation time.

Parameters:
  - context: context.Context

Returns:
  - []*User: Hydrated account entities
  - error: Execution errors
*/
func (repository *PostgresUserRepository) List(context context.Context) ([]*User, error) {
	const query = `
		SELECT id, username, email, passwordhash, usergroup, avatarurl, createdat, updatedat
		FROM users.account
		ORDER BY createdat`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.Group,
			&user.AvatarURL,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err)
	}

	return users, nil
}

/*
UpdateGroup updates only the group assignment for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - group: sec.UserGroup

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) UpdateGroup(context context.Context, userID string, group sec.UserGroup) error {
	const query = `
		UPDATE users.account
		SET usergroup = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, group, time.Now())
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "User")
	}

	return nil
}

// scanUser hydrates a single account row, mapping absence to NotFound.
func (repository *PostgresUserRepository) scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Group,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Put persists the session for a user, superseding any previous one.

Description: DELETE and INSERT run inside one transaction so the supersede is
atomic. Combined with the unique index on userid, concurrent logins for the
same user can never leave two live sessions behind.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Put(context context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_put_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	const deleteQuery = "DELETE FROM users.session WHERE userid = $1"
	if _, err := transaction.Exec(context, deleteQuery, session.UserID); err != nil {
		return fmt.Errorf("postgres_session_repo_put_supersede_failed: %w", err)
	}

	const insertQuery = `
		INSERT INTO users.session (userid, tokenhash, expiresat, createdat)
		VALUES ($1, $2, $3, $4)`
	_, err = transaction.Exec(context, insertQuery,
		session.UserID,
		session.TokenHash,
		session.ExpiresAt,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_put_insert_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_session_repo_put_commit_failed: %w", err)
	}

	return nil
}

/*
FindByUserAndHash retrieves the user's session matching the token hash.

Description: Securely resolves a refresh secret hash into the user's tracked
session. Expiry is NOT filtered here; the service applies lazy deletion so an
expired row is removed on first touch.

Parameters:
  - context: context.Context
  - userID: string
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByUserAndHash(context context.Context, userID, tokenHash string) (*Session, error) {
	const query = `
		SELECT userid, tokenhash, expiresat, createdat
		FROM users.session
		WHERE userid = $1 AND tokenhash = $2`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, userID, tokenHash).Scan(
		&session.UserID,
		&session.TokenHash,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}

	return session, nil
}

/*
Delete removes the session matching (userID, tokenHash).

Parameters:
  - context: context.Context
  - userID: string
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *PostgresSessionRepository) Delete(context context.Context, userID, tokenHash string) error {
	const query = "DELETE FROM users.session WHERE userid = $1 AND tokenhash = $2"
	_, err := repository.pool.Exec(context, query, userID, tokenHash)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_failed: %w", err)
	}
	return nil
}

/*
DeleteAllForUser removes every session belonging to a user.

Description: Security nuking of all active sessions for a user (logout).

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch deletion failures
*/
func (repository *PostgresSessionRepository) DeleteAllForUser(context context.Context, userID string) error {
	const query = "DELETE FROM users.session WHERE userid = $1"
	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_delete_all_failed: %w", err)
	}
	return nil
}
