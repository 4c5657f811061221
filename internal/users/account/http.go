// Copyright (c) 2026 Cratedig. All rights reserved.
// Author: dev@cratedig.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cratedig/cratedig/internal/platform/middleware"
	requestutil "github.com/cratedig/cratedig/internal/platform/request"
	"github.com/cratedig/cratedig/internal/platform/respond"
	"github.com/cratedig/cratedig/internal/platform/validate"
	"github.com/cratedig/cratedig/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements profile and Discogs settings HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account management routes.
// Every endpoint requires an authenticated session.
//
// # Endpoints
//   - GET    /profile : Returns the caller's private profile.
//   - PUT    /profile : Updates username and email.
//   - PUT    /discogs : Connects a Discogs credential set.
//   - DELETE /discogs : Disconnects Discogs.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)
	router.Put("/discogs", handler.linkDiscogs)
	router.Delete("/discogs", handler.unlinkDiscogs)

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type linkDiscogsRequest struct {
	DiscogsUsername string `json:"discogs_username"`
	ConsumerKey     string `json:"consumer_key"`
	ConsumerSecret  string `json:"consumer_secret"`
}

/*
GetProfile returns the authenticated user's private profile.

GET /api/v1/account/profile

Response:
  - 200: Profile: User identity plus Discogs connection status
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profilePayload(user))
}

/*
UpdateProfile replaces the authenticated user's username and email.

PUT /api/v1/account/profile

Description: Applies the registration rule ladder to both fields; the
account's own current values are exempt from the uniqueness checks.

Request:
  - Body: updateProfileRequest (Username, Email)

Response:
  - 200: Profile: Updated identity
  - 400: ErrInvalidJSON: Format violation or identity taken
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateProfileInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profilePayload(user))
}

/*
LinkDiscogs connects the authenticated user's Discogs credentials.

PUT /api/v1/account/discogs

Description: Requires the full credential set in one request. Relinking an
already connected account overwrites the stored credentials.

Request:
  - Body: linkDiscogsRequest (DiscogsUsername, ConsumerKey, ConsumerSecret)

Response:
  - 200: Profile: Updated Discogs connection status
  - 400: ErrInvalidJSON: Missing credential fields
  - 401: ErrUnauthorized: Authentication required
  - 409: ErrConflict: Discogs username connected to another account
*/
func (handler *Handler) linkDiscogs(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input linkDiscogsRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.LinkDiscogs(request.Context(), claims.UserID, DiscogsInput{
		DiscogsUsername: input.DiscogsUsername,
		ConsumerKey:     input.ConsumerKey,
		ConsumerSecret:  input.ConsumerSecret,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profilePayload(user))
}

/*
UnlinkDiscogs disconnects the authenticated user's Discogs credentials.

DELETE /api/v1/account/discogs

Response:
  - 200: Profile: Updated Discogs connection status
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) unlinkDiscogs(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UnlinkDiscogs(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profilePayload(user))
}

// profilePayload shapes a profile for the wire. Consumer credentials never
// leave the server; only the connection status does.
func profilePayload(user *auth.User) map[string]any {
	return map[string]any{
		"user":              user,
		"discogs_connected": user.IsDiscogsConnected(),
	}
}
