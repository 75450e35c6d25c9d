// Copyright (c) 2026 Stockroom. All rights reserved.
// Author: maksim.kotelnikov.dev@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to session rotation and administration.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration and credential cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkotelnikov/stockroom/internal/platform/apperr"
	"github.com/mkotelnikov/stockroom/internal/platform/constants"
	"github.com/mkotelnikov/stockroom/internal/platform/middleware"
	requestutil "github.com/mkotelnikov/stockroom/internal/platform/request"
	"github.com/mkotelnikov/stockroom/internal/platform/respond"
	"github.com/mkotelnikov/stockroom/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Session Rotation, Account Administration).
type Handler struct {
	authService *Service

	// authenticate resolves the actor for the protected route groups. It is
	// deliberately NOT applied to /refresh and /logout: those must accept an
	// expired access token, which the middleware would reject.
	authenticate func(http.Handler) http.Handler

	// secureCookies toggles the Secure attribute on credential cookies.
	// Disabled only in development where TLS is absent.
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, authenticate func(http.Handler) http.Handler, secureCookies bool) *Handler {
	return &Handler{
		authService:   service,
		authenticate:  authenticate,
		secureCookies: secureCookies,
	}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and logs it in.
//   - POST /login    : Authenticates and sets credential cookies.
//   - POST /refresh  : Rotates the token pair.
//   - POST /logout   : Drops the session and clears cookies.
//   - GET  /profile  : Returns the fresh account state (authenticated).
//   - GET  /users    : Lists accounts (admin).
//   - PUT  /users/{id}/group : Reassigns a user's group (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.authenticate, middleware.RequireAuth)
		r.Get("/profile", handler.profile)
	})

	// Administrative endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.authenticate, middleware.RequireAdmin)
		r.Get("/users", handler.listUsers)
		r.Put("/users/{id}/group", handler.updateUserGroup)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Group     string `json:"group"`
	AvatarURL string `json:"avatarUrl"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateGroupRequest struct {
	Group string `json:"group"`
}

/*
Register handles the creation of a new user account.

POST /api/auth/register

Description: Validates input, persists a new user profile, and establishes a
session so the client is immediately logged in.

Request:
  - Body: registerRequest (Username, Email, Password, Group, AvatarURL?)

Response:
  - 201: PublicUser: Created user profile (credential cookies set)
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Required(FieldGroup, input.Group)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		Group:     input.Group,
		AvatarURL: input.AvatarURL,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setCredentialCookies(writer, session)
	respond.Created(writer, session.User.Public())
}

/*
Login authenticates a user and establishes a session.

POST /api/auth/login

Description: Verifies credentials and injects both credential cookies into the
response. Any previous session for this user is superseded.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: PublicUser: Authenticated user profile (credential cookies set)
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setCredentialCookies(writer, session)
	respond.OK(writer, session.User.Public())
}

/*
Refresh issues a new token pair using the stored refresh session.

POST /api/auth/refresh

Description: Reads the (possibly expired) access token and the refresh secret
from cookies, rotates the session, and re-issues both credential cookies.

Response:
  - 200: PublicUser: User profile (fresh credential cookies set)
  - 401: ErrUnauthorized: Missing or invalid tokens
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	accessToken := readTokenCredential(request, constants.AccessTokenCookieName)
	if accessToken == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing access token"))
		return
	}

	refreshCookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || refreshCookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), accessToken, refreshCookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setCredentialCookies(writer, session)
	respond.OK(writer, session.User.Public())
}

/*
Logout terminates the current user session.

POST /api/auth/logout

Description: Invalidates the stored refresh session (if any) and clears the
credential cookies from the client. Idempotent: succeeds even when no valid
session is present.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	accessToken := readTokenCredential(request, constants.AccessTokenCookieName)

	if accessToken != "" {
		if err := handler.authService.Logout(request.Context(), accessToken); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearCredentialCookies(writer)
	respond.NoContent(writer)
}

/*
Profile returns the authenticated user's fresh account state.

GET /api/auth/profile

Description: Re-fetches the account from the store instead of echoing token
claims, so group changes made after issuance are visible immediately.

Response:
  - 200: PublicUser: Account state
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Account deleted since the token was issued
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Public())
}

/*
ListUsers returns every registered account.

GET /api/auth/users

Response:
  - 200: []PublicUser: Account list
  - 403: ErrForbidden: Admin access required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.authService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	publicUsers := make([]PublicUser, 0, len(users))
	for _, user := range users {
		publicUsers = append(publicUsers, user.Public())
	}

	respond.OK(writer, publicUsers)
}

/*
UpdateUserGroup reassigns a user's group.

PUT /api/auth/users/{id}/group

Request:
  - Body: updateGroupRequest (Group)

Response:
  - 200: PublicUser: Updated account
  - 400: ErrInvalidJSON: Unknown group label
  - 403: ErrForbidden: Self-demotion attempt
  - 404: ErrNotFound: Target account missing
*/
func (handler *Handler) updateUserGroup(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.ID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateGroupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Group == "" {
		respond.Error(writer, request, validate.RequiredError(FieldGroup, "is required"))
		return
	}

	user, err := handler.authService.UpdateUserGroup(request.Context(), claims.UserID, targetID, input.Group)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user.Public())
}

// # Cookie Plumbing

// setCredentialCookies injects both credential cookies into the response.
func (handler *Handler) setCredentialCookies(writer http.ResponseWriter, session *AuthSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.TokenCookiePath,
		Expires:  session.AccessTokenExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.TokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearCredentialCookies expires both credential cookies on the client.
func (handler *Handler) clearCredentialCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.TokenCookiePath,
			MaxAge:   -1,
			Secure:   handler.secureCookies,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// readTokenCredential reads a credential from its cookie, falling back to the
// Authorization header for the access token when no cookie is present.
func readTokenCredential(request *http.Request, cookieName string) string {
	if cookie, err := request.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if cookieName == constants.AccessTokenCookieName {
		authHeader := request.Header.Get(constants.HeaderAuthorization)
		const bearerPrefix = "Bearer "
		if len(authHeader) > len(bearerPrefix) && authHeader[:len(bearerPrefix)] == bearerPrefix {
			return authHeader[len(bearerPrefix):]
		}
	}

	return ""
}
