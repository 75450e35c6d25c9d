// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
session lifecycle management via JWT access tokens and rotated refresh secrets.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Refresh).
  - Repository: Abstracted interfaces for Postgres (Users) and Postgres/Redis (Sessions).
  - Security: Leverages Bcrypt and HS256-signed JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
	"github.com/mkotelnikov/stockroom/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and decoding security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given identity.
	//
	// # Parameters
	//   - identity: The public identity embedded into the claims.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(identity sec.Identity, timeToLive time.Duration) (string, error)

	// DecodeExpired verifies the token signature while tolerating expiry.
	// Used by the refresh and logout flows to recover the subject identity
	// from an access token that may have outlived its validity window.
	DecodeExpired(tokenString string) (*sec.AuthClaims, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
	}
}

// AuthSession represents a successfully established user session.
type AuthSession struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Group     string
	AvatarURL string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Deep-enrollment of a new member, handling password hashing and
immediate session establishment so the client is logged in after signup.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Established session for the created account
  - err: Validation, Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// The group is required and must be one of the known labels. An empty
	// or unknown label rejects the registration before any store write.
	group := sec.UserGroup(input.Group)
	if !group.IsValid() {
		return nil, apperr.ValidationError(fmt.Sprintf("Unknown group %q", input.Group))
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Group:        group,
		AvatarURL:    input.AvatarURL,
	}

	// Persist the user. Username/email uniqueness is enforced by the store
	// atomically with this insert and surfaces as a Conflict error.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return service.establishSession(context, user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and establishes a session that supersedes any previous one for this user.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	user, err := service.userRepository.FindByUsername(context, input.Username)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Verify password hash using bcrypt's constant-time comparison to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	return service.establishSession(context, user)
}

/*
Logout permanently removes the user's active session.

Description: Ensures that the tracked refresh secret can never be used again.
The operation is idempotent: an invalid or missing access token is treated as
an already-logged-out client.

Parameters:
  - context: context.Context
  - accessToken: string (possibly expired; only the signature must verify)

Returns:
  - err: Deletion failures
*/
func (service *Service) Logout(context context.Context, accessToken string) error {

	// Decode the access token tolerating expiry. An unverifiable token means
	// there is no session we could attribute to a user; logout succeeds.
	claims, err := service.tokenProvider.DecodeExpired(accessToken)
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.DeleteAllForUser(context, claims.UserID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
Refresh implements the Refresh Token Rotation mechanism.

Description: Recovers the subject from the (possibly expired) access token,
verifies the stored refresh secret hash, and issues a fresh pair of rotated
tokens. The stored session is superseded, so each refresh secret is single-use.

Parameters:
  - context: context.Context
  - accessToken: string (expired tokens accepted, signature still verified)
  - refreshToken: string

Returns:
  - *AuthSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, accessToken, refreshToken string) (*AuthSession, error) {

	// The access token carries the subject even after expiry. Its signature
	// is still verified, so a forged token cannot enter the refresh flow.
	claims, err := service.tokenProvider.DecodeExpired(accessToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid access token")
	}

	// Hash the incoming refresh secret to look it up
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByUserAndHash(context, claims.UserID, tokenHash)

	// If (err != nil) the secret does not match the stored session, or the
	// session was already rotated away or revoked.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Lazy expiry: a session past its window is removed on first touch.
	if time.Now().After(session.ExpiresAt) {
		_ = service.sessionRepository.Delete(context, session.UserID, session.TokenHash)
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Fetch the user associated with this session. Claims may be stale.
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	// Rotation: establishing a new session supersedes the old one, so the
	// presented refresh secret is consumed here and cannot be replayed.
	return service.establishSession(context, user)
}

// establishSession issues a fresh token pair and persists the session,
// superseding any previous session for the user.
func (service *Service) establishSession(context context.Context, user *User) (*AuthSession, error) {

	// Generate short-lived Access Token
	accessTokenExpiresAt := time.Now().Add(AccessTokenTTL)
	accessToken, err := service.tokenProvider.GenerateAccessToken(sec.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Group:     string(user.Group),
		AvatarURL: user.AvatarURL,
	}, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived refresh secret
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Persist the tracking session. Put supersedes any previous session
	// atomically, enforcing the single-session-per-user invariant.
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Put(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &AuthSession{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessTokenExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Account Administration

/*
Profile returns the fresh account state for the authenticated user.

Description: Re-fetches from the store instead of trusting token claims, so
the response reflects group changes made after the token was issued.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - err: apperr.NotFound or retrieval failures
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
ListUsers returns every registered account.

Parameters:
  - context: context.Context

Returns:
  - []*User: Hydrated entities
  - err: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context) ([]*User, error) {
	users, err := service.userRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("auth_service_list_users_failed: %w", err)
	}
	return users, nil
}

/*
UpdateUserGroup reassigns a user's group.

Description: Admin-only operation (enforced at the routing layer). An admin
cannot demote their own account, which guarantees the system never loses its
last administrator through this endpoint.

Parameters:
  - context: context.Context
  - actorID: string (the authenticated admin performing the change)
  - targetID: string (the account being reassigned)
  - group: string (one of the known group labels)

Returns:
  - *User: Updated account entity
  - err: Validation, Forbidden, NotFound or storage failures
*/
func (service *Service) UpdateUserGroup(context context.Context, actorID, targetID, group string) (*User, error) {
	targetGroup := sec.UserGroup(group)
	if !targetGroup.IsValid() {
		return nil, apperr.ValidationError(fmt.Sprintf("Unknown group %q", group))
	}

	// Self-demotion guard.
	if actorID == targetID && !targetGroup.IsAdmin() {
		return nil, apperr.Forbidden("Administrators cannot demote their own account")
	}

	user, err := service.userRepository.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.UpdateGroup(context, targetID, targetGroup); err != nil {
		return nil, err
	}

	user.Group = targetGroup
	return user, nil
}
