// Copyright (c) 2026 Kritika. All rights reserved.

package category

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

func (service *Service) ListCategories(context context.Context, filter Filter) ([]*Category, int, error) {
	return service.repo.List(context, filter)
}

// CreateInput holds the data for a new category.
type CreateInput struct {
	Name string
	Slug string // Auto-derived from Name when empty.
}

func (service *Service) CreateCategory(context context.Context, input CreateInput) (*Category, error) {
	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = slug.From(input.Name)
	}

	// Pre-check for a friendly field-level conflict before hitting the constraint.
	if _, err := service.repo.GetBySlug(context, categorySlug); err == nil {
		return nil, apperr.Conflict(FieldSlug, "Category slug already exists")
	}

	category := &Category{
		ID:   uuidv7.New(),
		Name: input.Name,
		Slug: categorySlug,
	}

	if err := service.repo.Create(context, category); err != nil {
		// Backstop: a concurrent insert can still trip the unique constraint.
		if dberr.IsUniqueViolation(err, "category_slug_key") {
			return nil, apperr.Conflict(FieldSlug, "Category slug already exists")
		}
		return nil, fmt.Errorf("category_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "category_created", slog.String("slug", category.Slug))
	return category, nil
}

func (service *Service) DeleteCategory(context context.Context, categorySlug string) error {
	return service.repo.DeleteBySlug(context, categorySlug)
}
