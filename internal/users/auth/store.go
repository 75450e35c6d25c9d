// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package auth

import (
	"context"

	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account to the storage.

		Description: Uniqueness of username and email is enforced by the store
		itself, atomically with the insertion, and surfaces as a Conflict error.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		List returns every registered account.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: Hydrated entities
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*User, error)

	/*
		UpdateGroup replaces only the user's group assignment.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - group: sec.UserGroup

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateGroup(context context.Context, userID string, group sec.UserGroup) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
//
// Every backing implementation must guarantee the single-session invariant:
// [SessionRepository.Put] atomically replaces whatever session the user had.
type SessionRepository interface {

	/*
		Put persists the session for a user, superseding any previous one.

		Description: The replacement is atomic. Concurrent logins for the same
		user never leave two live sessions behind.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Put(context context.Context, session *Session) error

	/*
		FindByUserAndHash returns the user's session matching the token hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity (possibly past its expiry; callers decide)
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUserAndHash(context context.Context, userID, tokenHash string) (*Session, error)

	/*
		Delete removes the session matching (userID, tokenHash), if any.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID, tokenHash string) error

	/*
		DeleteAllForUser removes every session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteAllForUser(context context.Context, userID string) error
}
