// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

const testSecret = "unit-test-signing-secret"

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "stockroom-test")
	require.NoError(t, err)
	return service
}

func testIdentity() sec.Identity {
	return sec.Identity{
		UserID:    "0192f3a1-0000-7000-8000-000000000001",
		Username:  "warehouse_admin",
		Email:     "admin@stockroom.dev",
		Group:     "admin",
		AvatarURL: "https://cdn.stockroom.dev/a/1.png",
	}
}

/*
TestTokenService_Roundtrip verifies issuing and verifying an access token.
*/
func TestTokenService_Roundtrip(t *testing.T) {
	service := newTokenService(t)

	token, err := service.GenerateAccessToken(testIdentity(), 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "0192f3a1-0000-7000-8000-000000000001", claims.UserID)
	assert.Equal(t, "warehouse_admin", claims.Username)
	assert.Equal(t, "admin@stockroom.dev", claims.Email)
	assert.Equal(t, "admin", claims.Group)
	assert.Equal(t, "https://cdn.stockroom.dev/a/1.png", claims.AvatarURL)
	assert.Equal(t, "stockroom-test", claims.Issuer)
}

/*
TestTokenService_VerifyFailures checks that every failure mode collapses into
the single ErrInvalidToken sentinel.
*/
func TestTokenService_VerifyFailures(t *testing.T) {
	service := newTokenService(t)

	validToken, err := service.GenerateAccessToken(testIdentity(), 30*time.Minute)
	require.NoError(t, err)

	otherService, err := sec.NewTokenService("a-different-secret", "stockroom-test")
	require.NoError(t, err)

	foreignToken, err := otherService.GenerateAccessToken(testIdentity(), 30*time.Minute)
	require.NoError(t, err)

	expiredToken, err := service.GenerateAccessToken(testIdentity(), -1*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"wrong_signature", foreignToken},
		{"expired", expiredToken},
		{"truncated", validToken[:len(validToken)-10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.VerifyToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestTokenService_DecodeExpired covers the refresh-flow carve-out: an expired
token still yields its claims, but a forged one never does.
*/
func TestTokenService_DecodeExpired(t *testing.T) {
	service := newTokenService(t)

	expiredToken, err := service.GenerateAccessToken(testIdentity(), -1*time.Minute)
	require.NoError(t, err)

	// Regular verification must reject the expired token...
	_, err = service.VerifyToken(expiredToken)
	require.ErrorIs(t, err, sec.ErrInvalidToken)

	// ...but the claims-only decode tolerates expiry.
	claims, err := service.DecodeExpired(expiredToken)
	require.NoError(t, err)
	assert.Equal(t, "0192f3a1-0000-7000-8000-000000000001", claims.UserID)

	// The signature check is never relaxed.
	otherService, err := sec.NewTokenService("a-different-secret", "stockroom-test")
	require.NoError(t, err)

	foreignToken, err := otherService.GenerateAccessToken(testIdentity(), -1*time.Minute)
	require.NoError(t, err)

	_, err = service.DecodeExpired(foreignToken)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)

	_, err = service.DecodeExpired("complete garbage")
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestNewTokenService_EmptySecret rejects construction without a signing key.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "stockroom-test")
	assert.Error(t, err)
}
