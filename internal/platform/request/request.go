// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

// Package request provides helpers for extracting and decoding request data.
package request

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/ctxutil"
	"github.com/mkotelnikov/stockroom/internal/platform/sec"
	"github.com/mkotelnikov/stockroom/internal/platform/validate"
)

/*
DecodeJSON decodes the request body into the destination struct.

Parameters:
  - request: the incoming HTTP request.
  - destination: pointer to the struct to decode into.

Returns:
  - error: validate.ErrInvalidJSON wrapped in a validation error when the
    body is not well-formed JSON.
*/
func DecodeJSON(request *http.Request, destination interface{}) error {
	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(destination); err != nil {
		return apperr.ValidationError(validate.ErrInvalidJSON.Error())
	}
	return nil
}

// Param returns the named URL parameter from the chi route context.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// ID returns the "id" URL parameter, validating it is a well-formed UUID.
func ID(request *http.Request) (string, error) {
	id := chi.URLParam(request, "id")
	validator := &validate.Validator{}
	if validator.UUID("id", id).HasErrors() {
		return "", validator.Err()
	}
	return id, nil
}

// Claims returns the authenticated actor's claims, or nil when the request
// is anonymous.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetActor(request.Context())
}

// RequiredClaims returns the authenticated actor's claims, or an unauthorized
// error when the request is anonymous.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetActor(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated actor's user ID, or an unauthorized
// error when the request is anonymous.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
