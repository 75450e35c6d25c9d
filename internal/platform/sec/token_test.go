// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies length, encoding, and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(40)
	require.NoError(t, err)

	second, err := sec.GenerateSecureToken(40)
	require.NoError(t, err)

	// 40 bytes hex-encoded -> 80 characters
	assert.Len(t, first, 80)
	assert.Len(t, second, 80)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, "^[0-9a-f]+$", first)
}

/*
TestVerifyTokenHash verifies hash recomputation and comparison.
*/
func TestVerifyTokenHash(t *testing.T) {
	secret, err := sec.GenerateSecureToken(40)
	require.NoError(t, err)

	storedHash := sec.HashToken(secret)

	// sha256 hex digest is always 64 characters
	assert.Len(t, storedHash, 64)

	assert.True(t, sec.VerifyTokenHash(secret, storedHash))
	assert.False(t, sec.VerifyTokenHash("some other secret", storedHash))
	assert.False(t, sec.VerifyTokenHash(secret, "deadbeef"))
}

/*
TestUserGroup_IsValid covers the closed group enum.
*/
func TestUserGroup_IsValid(t *testing.T) {
	tests := []struct {
		group sec.UserGroup
		valid bool
	}{
		{sec.GroupAdmin, true},
		{sec.GroupUser, true},
		{sec.GroupGuest, true},
		{sec.UserGroup("moderator"), false},
		{sec.UserGroup(""), false},
		{sec.UserGroup("Admin"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.group), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.group.IsValid())
		})
	}

	assert.True(t, sec.GroupAdmin.IsAdmin())
	assert.False(t, sec.GroupUser.IsAdmin())
}
