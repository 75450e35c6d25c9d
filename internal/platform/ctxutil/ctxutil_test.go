// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkotelnikov/stockroom/internal/platform/ctxutil"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

/*
TestRequestID_Roundtrip checks storing and retrieving the correlation ID.
*/
func TestRequestID_Roundtrip(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger_FallsBackToDefault ensures GetLogger never returns nil.
*/
func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, ctxutil.GetLogger(ctx))

	custom := slog.Default().With(slog.String("scope", "test"))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestActor_Roundtrip checks storing and retrieving actor claims.
*/
func TestActor_Roundtrip(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, ctxutil.GetActor(ctx))

	claims := &sec.AuthClaims{UserID: "u-1", Group: "user"}
	ctx = ctxutil.WithActor(ctx, claims)
	assert.Same(t, claims, ctxutil.GetActor(ctx))
}
