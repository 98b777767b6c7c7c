// Copyright (c) 2026 Kritika. All rights reserved.

package comment

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

// Routes returns a [chi.Router] with the comment endpoints.
//
// Mounted under /titles/{titleID}/reviews/{reviewID}/comments; both parent
// parameters are inherited from the mount point.
//
// # Endpoints
//   - GET    /             : Public listing, oldest first.
//   - GET    /{commentID}  : Public detail.
//   - POST   /             : Authenticated creation.
//   - PATCH  /{commentID}  : Author, moderator, or admin edit.
//   - DELETE /{commentID}  : Author, moderator, or admin removal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)
	router.Get("/{commentID}", handler.getComment)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createComment)
		r.Patch("/{commentID}", handler.updateComment)
		r.Delete("/{commentID}", handler.deleteComment)
	})

	return router
}

type commentRequest struct {
	Text string `json:"text"`
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	params := pagination.FromRequest(request)

	comments, count, err := handler.service.ListComments(request.Context(), titleID, reviewID, Filter{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, request, params, count, comments)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	comment, err := handler.service.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), titleID, reviewID, claims, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), titleID, reviewID, commentID, claims, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, "titleID")
	reviewID := requestutil.Param(request, "reviewID")
	commentID := requestutil.Param(request, "commentID")

	if err := handler.service.DeleteComment(request.Context(), titleID, reviewID, commentID, claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
