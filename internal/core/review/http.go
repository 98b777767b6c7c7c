// Copyright (c) 2026 Kritika. All rights reserved.

package review

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

// Routes returns a [chi.Router] with the review endpoints.
//
// Mounted under /titles/{titleID}/reviews; the titleID parameter is inherited
// from the parent route.
//
// # Endpoints
//   - GET    /            : Public listing, newest first.
//   - GET    /{reviewID}  : Public detail.
//   - POST   /            : Authenticated creation (one per title per user).
//   - PATCH  /{reviewID}  : Author, moderator, or admin edit.
//   - DELETE /{reviewID}  : Author, moderator, or admin removal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listReviews)
	router.Get("/{reviewID}", handler.getReview)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createReview)
		r.Patch("/{reviewID}", handler.updateReview)
		r.Delete("/{reviewID}", handler.deleteReview)
	})

	return router
}

type reviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	params := pagination.FromRequest(request)

	reviews, count, err := handler.service.ListReviews(request.Context(), titleID, Filter{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, request, params, count, reviews)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	review, err := handler.service.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
createReview publishes a new review.

POST /api/v1/titles/{titleID}/reviews

Request:
  - Body: reviewRequest (Text and Score required, Score in 1..10)

Response:
  - 201: Review: Created entity
  - 400: ErrValidation or field-level conflict (duplicate review)
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, "titleID")

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, stringValue(input.Text)).
		Custom(FieldScore, input.Score == nil, "Is required")
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.CreateReview(request.Context(), titleID, claims, CreateInput{
		Text:  *input.Text,
		Score: *input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Score != nil {
		validator.Range(FieldScore, *input.Score, MinScore, MaxScore)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.UpdateReview(request.Context(), titleID, reviewID, claims, UpdateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	if err := handler.service.DeleteReview(request.Context(), titleID, reviewID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
