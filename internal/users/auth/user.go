// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for authentication,
authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Stockroom platform.
type User struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Explicitly omitted from JSON for security.
	Group        sec.UserGroup `json:"group"`
	AvatarURL    string        `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// PublicUser is the client-facing projection of a [User].
type PublicUser struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Group     sec.UserGroup `json:"group"`
	AvatarURL string        `json:"avatarUrl,omitempty"`
}

// Public returns the client-facing projection of the user.
func (user *User) Public() PublicUser {
	return PublicUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Group:     user.Group,
		AvatarURL: user.AvatarURL,
	}
}

// Session represents the single active refresh-token session of a user.
// At most one session row exists per user; a new login supersedes the old one.
type Session struct {
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"` // Hashed value of the refresh secret. Omitted for security.
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername  = "username"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldGroup     = "group"
	FieldAvatarURL = "avatarUrl"
	FieldMessage   = "message"
)
