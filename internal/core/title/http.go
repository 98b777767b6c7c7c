// Copyright (c) 2026 Kritika. All rights reserved.

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/middleware"
	requestutil "github.com/kritika-app/kritika/internal/platform/request"
	"github.com/kritika-app/kritika/internal/platform/respond"
	"github.com/kritika-app/kritika/internal/platform/validate"
	"github.com/kritika-app/kritika/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the title endpoints.
//
// # Endpoints
//   - GET    /           : Public listing with filters and pagination.
//   - GET    /{titleID}  : Public detail with computed rating.
//   - POST   /           : Admin-only creation.
//   - PUT    /{titleID}  : Admin-only full replacement.
//   - PATCH  /{titleID}  : Admin-only partial update.
//   - DELETE /{titleID}  : Admin-only removal.
//
// The review sub-resource is mounted under /{titleID}/reviews by the server.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTitles)
	router.Get("/{titleID}", handler.getTitle)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.createTitle)
		r.Put("/{titleID}", handler.replaceTitle)
		r.Patch("/{titleID}", handler.updateTitle)
		r.Delete("/{titleID}", handler.deleteTitle)
	})

	return router
}

// titleRequest is shared by create and update; pointers distinguish
// "absent" from "present but empty" for partial updates.
type titleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
listTitles returns the filtered catalog.

GET /api/v1/titles

Description: Supports combinable filters on category slug, genre slug, name
substring, and exact year, plus limit/offset pagination.

Response:
  - 200: []Title or pagination.Envelope
  - 400: ErrValidation: Non-integer year filter
*/
func (handler *Handler) listTitles(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := Filter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
		Limit:    params.Limit,
		Offset:   params.Offset,
	}

	if rawYear := query.Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldYear,
				Message: "Must be an integer",
			}))
			return
		}
		filter.Year = &year
	}

	titles, count, err := handler.service.ListTitles(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, request, params, count, titles)
}

func (handler *Handler) getTitle(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")

	title, err := handler.service.GetTitle(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
createTitle adds a new work to the catalog.

POST /api/v1/titles

Request:
  - Body: titleRequest (Name and Category required)

Response:
  - 201: Title: Created entity
  - 400: ErrValidation: Missing fields, future year, or unknown slugs
  - 403: ErrForbidden: Caller lacks admin power
*/
func (handler *Handler) createTitle(writer http.ResponseWriter, request *http.Request) {
	var input titleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateTitleInput(&input, true); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.CreateTitle(request.Context(), CreateInput{
		Name:         stringValue(input.Name),
		Year:         input.Year,
		Description:  stringValue(input.Description),
		CategorySlug: stringValue(input.Category),
		GenreSlugs:   sliceValue(input.Genre),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// replaceTitle handles PUT: same payload rules as creation, applied to an
// existing entity. An omitted genre list clears the association.
func (handler *Handler) replaceTitle(writer http.ResponseWriter, request *http.Request) {
	handler.applyUpdate(writer, request, true)
}

// updateTitle handles PATCH: only the provided fields change.
func (handler *Handler) updateTitle(writer http.ResponseWriter, request *http.Request) {
	handler.applyUpdate(writer, request, false)
}

func (handler *Handler) applyUpdate(writer http.ResponseWriter, request *http.Request, full bool) {
	titleID := requestutil.Param(request, "titleID")

	var input titleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateTitleInput(&input, full); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	}

	// A full replacement resets what the payload omitted.
	if full && update.GenreSlugs == nil {
		empty := make([]string, 0)
		update.GenreSlugs = &empty
	}
	if full && update.Description == nil {
		blank := ""
		update.Description = &blank
	}

	title, err := handler.service.UpdateTitle(request.Context(), titleID, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) deleteTitle(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")

	if err := handler.service.DeleteTitle(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// validateTitleInput checks field constraints; `full` additionally enforces
// the presence rules shared by POST and PUT.
func validateTitleInput(input *titleRequest, full bool) error {
	validator := &validate.Validator{}

	if full {
		validator.Required(FieldName, stringValue(input.Name)).
			Required(FieldCategory, stringValue(input.Category))
	}

	if input.Name != nil {
		validator.MaxLen(FieldName, *input.Name, MaxNameLength)
	}
	validator.YearNotFuture(FieldYear, input.Year)

	return validator.Err()
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func sliceValue(s *[]string) []string {
	if s == nil {
		return nil
	}
	return *s
}
