// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package account provides administration and self-service endpoints for user
accounts.

# Architecture

The package deliberately owns no entity of its own: it operates on
[auth.User] through the shared [auth.UserRepository], so every identity rule
(reserved username, uniqueness, code invalidation on mutation) has exactly
one home.
*/
package account

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kritika-app/kritika/internal/platform/middleware"
	requestutil "github.com/kritika-app/kritika/internal/platform/request"
	"github.com/kritika-app/kritika/internal/platform/respond"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/internal/users/auth"
	"github.com/kritika-app/kritika/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the user management HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the user endpoints.
//
// # Endpoints
//   - GET    /me         : Caller's own profile (any authenticated user).
//   - PATCH  /me         : Partial self update; role changes need admin power.
//   - GET    /           : Admin list with username search.
//   - POST   /           : Admin account provisioning.
//   - GET    /{username} : Admin fetch.
//   - PATCH  /{username} : Admin partial update.
//   - DELETE /{username} : Admin removal.
//
// The /me routes are registered before the {username} wildcard so chi matches
// the literal segment first.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/me", handler.getMe)
		router.Patch("/me", handler.updateMe)
	})

	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAdmin)
		router.Get("/", handler.listUsers)
		router.Post("/", handler.createUser)
		router.Get("/{username}", handler.getUser)
		router.Patch("/{username}", handler.updateUser)
		router.Delete("/{username}", handler.deleteUser)
	})

	return router
}

// # Request Payloads

type userRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Administration Handlers

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := auth.Filter{
		Search: request.URL.Query().Get("search"),
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	users, count, err := handler.service.ListUsers(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, request, params, count, users)
}

/*
createUser provisions an account with an explicit role.

POST /api/v1/users

Request:
  - Body: userRequest (Username and Email required)

Response:
  - 201: The created account
  - 400: ErrValidation: Bad input or identity conflicts
  - 403: ErrForbidden: Caller lacks admin power
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input userRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	username := stringValue(input.Username)
	email := stringValue(input.Email)

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, username).
		Username(auth.FieldUsername, username).
		MaxLen(auth.FieldUsername, username, auth.MaxUsernameLength).
		Custom(auth.FieldUsername, strings.EqualFold(username, auth.ReservedUsername), `Username "me" is reserved`).
		Required(auth.FieldEmail, email).
		Email(auth.FieldEmail, email).
		MaxLen(auth.FieldEmail, email, auth.MaxEmailLength)
	validateProfile(validator, input)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CreateUser(request.Context(), CreateInput{
		Username:  username,
		Email:     email,
		FirstName: stringValue(input.FirstName),
		LastName:  stringValue(input.LastName),
		Bio:       stringValue(input.Bio),
		Role:      stringValue(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.service.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	input, err := decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateUser(request.Context(), username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.service.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self Service Handlers

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.GetMe(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := decodeUpdate(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateMe(request.Context(), claims, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Helpers

// decodeUpdate parses and validates a partial update payload shared by the
// admin and self-service update handlers.
func decodeUpdate(request *http.Request) (UpdateInput, error) {
	var input userRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		return UpdateInput{}, validate.ErrInvalidJSON
	}

	validator := &validate.Validator{}
	if input.Username != nil {
		validator.Required(auth.FieldUsername, *input.Username).
			Username(auth.FieldUsername, *input.Username).
			MaxLen(auth.FieldUsername, *input.Username, auth.MaxUsernameLength).
			Custom(auth.FieldUsername, strings.EqualFold(*input.Username, auth.ReservedUsername), `Username "me" is reserved`)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLength)
	}
	validateProfile(validator, input)

	if err := validator.Err(); err != nil {
		return UpdateInput{}, err
	}

	return UpdateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}, nil
}

// validateProfile checks the optional profile fields common to create and
// update payloads.
func validateProfile(validator *validate.Validator, input userRequest) {
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxFirstNameLength)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxLastNameLength)
	}
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
