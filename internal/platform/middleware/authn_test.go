// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/stockroom/internal/platform/constants"
	"github.com/mkotelnikov/stockroom/internal/platform/ctxutil"
	"github.com/mkotelnikov/stockroom/internal/platform/middleware"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string.
type fakeVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (v *fakeVerifier) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	if tokenString == v.validToken {
		return v.claims, nil
	}
	return nil, sec.ErrInvalidToken
}

func newEchoHandler(captured **sec.AuthClaims) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetActor(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	verifier := &fakeVerifier{
		validToken: "good-token",
		claims:     &sec.AuthClaims{UserID: "user-1", Username: "alice", Group: "user"},
	}

	testCases := []struct {
		name           string
		setupRequest   func(request *http.Request)
		expectedStatus int
		expectActor    bool
	}{
		{
			name:           "anonymous request passes through without actor",
			setupRequest:   func(request *http.Request) {},
			expectedStatus: http.StatusOK,
			expectActor:    false,
		},
		{
			name: "valid bearer token injects actor",
			setupRequest: func(request *http.Request) {
				request.Header.Set(constants.HeaderAuthorization, "Bearer good-token")
			},
			expectedStatus: http.StatusOK,
			expectActor:    true,
		},
		{
			name: "valid cookie token injects actor",
			setupRequest: func(request *http.Request) {
				request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "good-token"})
			},
			expectedStatus: http.StatusOK,
			expectActor:    true,
		},
		{
			name: "header takes precedence over cookie",
			setupRequest: func(request *http.Request) {
				request.Header.Set(constants.HeaderAuthorization, "Bearer bad-token")
				request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "good-token"})
			},
			expectedStatus: http.StatusUnauthorized,
			expectActor:    false,
		},
		{
			name: "malformed authorization header is rejected",
			setupRequest: func(request *http.Request) {
				request.Header.Set(constants.HeaderAuthorization, "Token abc")
			},
			expectedStatus: http.StatusUnauthorized,
			expectActor:    false,
		},
		{
			name: "invalid token is rejected",
			setupRequest: func(request *http.Request) {
				request.Header.Set(constants.HeaderAuthorization, "Bearer expired-token")
			},
			expectedStatus: http.StatusUnauthorized,
			expectActor:    false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var captured *sec.AuthClaims
			handler := middleware.Authenticate(verifier)(newEchoHandler(&captured))

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			testCase.setupRequest(request)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
			if testCase.expectActor {
				require.NotNil(t, captured)
				assert.Equal(t, "user-1", captured.UserID)
			} else {
				assert.Nil(t, captured)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous request is rejected", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("authenticated request passes", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := ctxutil.WithActor(request.Context(), &sec.AuthClaims{UserID: "user-1", Group: "user"})
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, request.WithContext(ctx))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	handler := middleware.RequireAdmin(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	testCases := []struct {
		name           string
		claims         *sec.AuthClaims
		expectedStatus int
	}{
		{name: "anonymous is 401", claims: nil, expectedStatus: http.StatusUnauthorized},
		{name: "plain user is 403", claims: &sec.AuthClaims{UserID: "u", Group: "user"}, expectedStatus: http.StatusForbidden},
		{name: "guest is 403", claims: &sec.AuthClaims{UserID: "g", Group: "guest"}, expectedStatus: http.StatusForbidden},
		{name: "admin passes", claims: &sec.AuthClaims{UserID: "a", Group: "admin"}, expectedStatus: http.StatusOK},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if testCase.claims != nil {
				request = request.WithContext(ctxutil.WithActor(request.Context(), testCase.claims))
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testCase.expectedStatus, recorder.Code)
		})
	}
}
