// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkotelnikov/stockroom/internal/users/auth"
)

// passthrough stands in for the authentication middleware on routes that do
// not need an actor in these tests.
func passthrough(next http.Handler) http.Handler { return next }

func newTestHandler(t *testing.T) (*auth.Handler, *serviceHarness) {
	t.Helper()
	harness := newServiceHarness(t)
	return auth.NewHandler(harness.service, passthrough, false), harness
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Register(t *testing.T) {
	t.Run("six character password is accepted", func(t *testing.T) {
		handler, harness := newTestHandler(t)

		recorder := postJSON(t, handler.Routes(), "/register",
			`{"username":"alice","email":"alice@example.com","password":"secr3t","group":"user"}`)

		require.Equal(t, http.StatusCreated, recorder.Code)
		assert.Len(t, harness.userRepo.usersByID, 1)

		cookieNames := make([]string, 0, 2)
		for _, cookie := range recorder.Result().Cookies() {
			cookieNames = append(cookieNames, cookie.Name)
		}
		assert.Contains(t, cookieNames, "accessToken")
		assert.Contains(t, cookieNames, "refreshToken")
	})

	t.Run("five character password is rejected", func(t *testing.T) {
		handler, harness := newTestHandler(t)

		recorder := postJSON(t, handler.Routes(), "/register",
			`{"username":"alice","email":"alice@example.com","password":"secrt","group":"user"}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, harness.userRepo.usersByID)

		var envelope struct {
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
		require.Len(t, envelope.Details, 1)
		assert.Equal(t, "password", envelope.Details[0].Field)
	})

	t.Run("missing group is rejected", func(t *testing.T) {
		handler, harness := newTestHandler(t)

		recorder := postJSON(t, handler.Routes(), "/register",
			`{"username":"alice","email":"alice@example.com","password":"secr3t"}`)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, harness.userRepo.usersByID)
	})
}
