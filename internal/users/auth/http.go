// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cratedig/cratedig/internal/platform/middleware"
	requestutil "github.com/cratedig/cratedig/internal/platform/request"
	"github.com/cratedig/cratedig/internal/platform/respond"
	"github.com/cratedig/cratedig/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// live form validation, Password Change). It is strictly responsible for
// transport concerns (status codes, headers, JSON); every business rule
// lives in [Service].
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register          : Creates a new account and opens a session.
//   - POST /login             : Authenticates and returns a JWT.
//   - POST /validate/username : Live availability check for the signup form.
//   - POST /validate/email    : Live availability check for the signup form.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/validate/username", handler.validateUsername)
	router.Post("/validate/email", handler.validateEmail)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type validateUsernameRequest struct {
	Username string `json:"username"`
}

type validateEmailRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Passes the raw input to the service, which accumulates every
validation failure (username, email, password, in that order) into one
response, then creates the account and opens a session.

Request:
  - Body: registerRequest (Username, Email, Password)

Response:
  - 201: Session: Access token and created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Identity claimed by a concurrent registration
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sessionPayload(session))
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials (username or email plus password) and
returns a JWT access token. Failed attempts count toward the per-caller
lockout keyed on the client IP.

Request:
  - Body: loginRequest (Login, Password)

Response:
  - 200: Session: Access token and user profile
  - 401: ErrUnauthorized: Invalid credentials
  - 429: ErrRateLimited: Caller is locked out
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:     input.Login,
		Password:  input.Password,
		CallerKey: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionPayload(session))
}

/*
ValidateUsername checks a username for format and availability.

POST /api/v1/auth/validate/username

Description: Backs the signup form's live per-field feedback. Runs the same
rule ladder as registration, including the uniqueness probe, without
creating anything.

Request:
  - Body: validateUsernameRequest (Username)

Response:
  - 200: Success: Username is acceptable
  - 400: ErrInvalidJSON: Format violation or username taken
*/
func (handler *Handler) validateUsername(writer http.ResponseWriter, request *http.Request) {
	var input validateUsernameRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.CheckUsername(request.Context(), input.Username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Username is available",
	})
}

/*
ValidateEmail checks an email address for format and availability.

POST /api/v1/auth/validate/email

Description: Backs the signup form's live per-field feedback. Runs the same
rule ladder as registration, including the uniqueness probe, without
creating anything.

Request:
  - Body: validateEmailRequest (Email)

Response:
  - 200: Success: Email is acceptable
  - 400: ErrInvalidJSON: Format violation or email already registered
*/
func (handler *Handler) validateEmail(writer http.ResponseWriter, request *http.Request) {
	var input validateEmailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := handler.authService.CheckEmail(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Email is available",
	})
}

/*
ChangePassword updates the authenticated user's password.

POST /api/v1/auth/change-password

Description: Verifies the current password before applying the new one. Both
a wrong current password and a weak replacement report together in one
validation response.

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 400: ErrInvalidJSON: Wrong current password or weak new password
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	err = handler.authService.ChangePassword(
		request.Context(),
		claims.UserID,
		input.CurrentPassword,
		input.NewPassword,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"message": "Password changed successfully",
	})
}

// sessionPayload shapes a session for the wire.
func sessionPayload(session *LoginSession) map[string]any {
	return map[string]any{
		"access_token": session.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   int64(session.ExpiresIn / time.Second),
		"user":         session.User,
	}
}
