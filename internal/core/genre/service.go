// Copyright (c) 2026 Kritika. All rights reserved.

package genre

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/pkg/slug"
	"github.com/kritika-app/kritika/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListGenres(context context.Context, filter Filter) ([]*Genre, int, error) {
	return service.repo.List(context, filter)
}

// CreateInput holds the data for a new genre.
type CreateInput struct {
	Name string
	Slug string // Auto-derived from Name when empty.
}

func (service *Service) CreateGenre(context context.Context, input CreateInput) (*Genre, error) {
	genreSlug := input.Slug
	if genreSlug == "" {
		genreSlug = slug.From(input.Name)
	}

	// Pre-check for a friendly field-level conflict before hitting the constraint.
	if _, err := service.repo.GetBySlug(context, genreSlug); err == nil {
		return nil, apperr.Conflict(FieldSlug, "Genre slug already exists")
	}

	genre := &Genre{
		ID:   uuidv7.New(),
		Name: input.Name,
		Slug: genreSlug,
	}

	if err := service.repo.Create(context, genre); err != nil {
		// Backstop: a concurrent insert can still trip the unique constraint.
		if dberr.IsUniqueViolation(err, "genre_slug_key") {
			return nil, apperr.Conflict(FieldSlug, "Genre slug already exists")
		}
		return nil, fmt.Errorf("genre_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "genre_created", slog.String("slug", genre.Slug))
	return genre, nil
}

func (service *Service) DeleteGenre(context context.Context, genreSlug string) error {
	return service.repo.DeleteBySlug(context, genreSlug)
}
