// Copyright (c) 2026 Kritika. All rights reserved.

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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

// Routes returns a [chi.Router] with the category endpoints.
//
// # Endpoints
//   - GET    /        : Public listing with search and pagination.
//   - POST   /        : Admin-only creation.
//   - DELETE /{slug}  : Admin-only removal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/", handler.createCategory)
		r.Delete("/{slug}", handler.deleteCategory)
	})

	return router
}

type createCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	filter := Filter{
		Search: request.URL.Query().Get("search"),
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	categories, count, err := handler.service.ListCategories(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, request, params, count, categories)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength)
	if input.Slug != "" {
		validator.Slug(FieldSlug, input.Slug).
			MaxLen(FieldSlug, input.Slug, MaxSlugLength)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categorySlug := requestutil.Param(request, "slug")

	if err := handler.service.DeleteCategory(request.Context(), categorySlug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
