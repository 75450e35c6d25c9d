// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (30m) to minimize the impact of a leaked token.
	AccessTokenTTL = 30 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (7 days) to provide a good user experience.
	RefreshTokenTTL = 7 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh secret.
	// 40 bytes yields an 80-character hex string on the wire.
	RefreshTokenLength = 40

	// MinUsernameLength is the minimum accepted username length.
	MinUsernameLength = 3

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)
