// Copyright (c) 2026 Kritika. All rights reserved.

package title

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kritika-app/kritika/internal/core/category"
	"github.com/kritika-app/kritika/internal/core/genre"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/pkg/uuidv7"
)

// # Contracts & Types

// CategoryResolver looks up a category by its slug.
type CategoryResolver interface {
	GetBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver looks up a genre by its slug.
type GenreResolver interface {
	GetBySlug(context context.Context, slug string) (*genre.Genre, error)
}

// Service implements the title catalog use cases.
type Service struct {
	repo        Repository
	categories  CategoryResolver
	genres      GenreResolver
	ratingCache RatingCache
	logger      *slog.Logger
}

// NewService constructs a title [Service] with its dependencies.
func NewService(
	repo Repository,
	categories CategoryResolver,
	genres GenreResolver,
	ratingCache RatingCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		categories:  categories,
		genres:      genres,
		ratingCache: ratingCache,
		logger:      logger,
	}
}

// # Read Path

func (service *Service) ListTitles(context context.Context, filter Filter) ([]*Title, int, error) {
	return service.repo.List(context, filter)
}

/*
GetTitle fetches a single title with its computed rating.

Description: The rating is served from the Redis cache when warm; on a miss
it is computed from the review table and written back. Cache failures degrade
to a direct computation rather than failing the request.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Title: The title with Rating populated
  - err: NotFound or storage errors
*/
func (service *Service) GetTitle(context context.Context, id string) (*Title, error) {
	title, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	if rating, found, err := service.ratingCache.Get(context, id); err == nil && found {
		title.Rating = rating
		return title, nil
	}

	rating, err := service.repo.AverageScore(context, id)
	if err != nil {
		return nil, fmt.Errorf("title_service_rating_failed: %w", err)
	}

	title.Rating = rating
	if err := service.ratingCache.Set(context, id, rating); err != nil {
		service.logger.WarnContext(context, "title_rating_cache_set_failed",
			slog.String("title_id", id), slog.Any("error", err))
	}

	return title, nil
}

// # Write Path

// CreateInput holds the data for a new title.
type CreateInput struct {
	Name         string
	Year         *int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

/*
CreateTitle validates references and persists a new catalog entry.

Description: The category and every genre are resolved by slug before the
insert; an unknown slug is a field-level validation failure, not a 404, since
the missing resource is in the request body rather than the URL.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: Created entity with resolved references
  - err: Validation or storage errors
*/
func (service *Service) CreateTitle(context context.Context, input CreateInput) (*Title, error) {
	resolvedCategory, resolvedGenres, err := service.resolveReferences(context, &input.CategorySlug, &input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    resolvedCategory,
		Genres:      resolvedGenres,
	}

	if err := service.repo.Create(context, title); err != nil {
		return nil, fmt.Errorf("title_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "title_created",
		slog.String("title_id", title.ID), slog.String("name", title.Name))
	return title, nil
}

// UpdateInput holds a partial update. Nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
UpdateTitle applies a partial or full update to an existing title.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Title: Updated entity with Rating populated
  - err: NotFound, validation, or storage errors
*/
func (service *Service) UpdateTitle(context context.Context, id string, input UpdateInput) (*Title, error) {
	title, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	var genreSlugs []string
	if input.GenreSlugs != nil {
		genreSlugs = *input.GenreSlugs
	}

	resolvedCategory, resolvedGenres, err := service.resolveReferences(context, input.CategorySlug, &genreSlugs)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		title.Name = *input.Name
	}
	if input.Year != nil {
		title.Year = input.Year
	}
	if input.Description != nil {
		title.Description = *input.Description
	}
	if resolvedCategory != nil {
		title.Category = resolvedCategory
	}
	if input.GenreSlugs != nil {
		title.Genres = resolvedGenres
	}

	if err := service.repo.Update(context, title); err != nil {
		return nil, fmt.Errorf("title_service_update_failed: %w", err)
	}

	rating, err := service.repo.AverageScore(context, id)
	if err == nil {
		title.Rating = rating
	}

	return title, nil
}

func (service *Service) DeleteTitle(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	// The cached rating is now orphaned; drop it eagerly.
	if err := service.ratingCache.Invalidate(context, id); err != nil {
		service.logger.WarnContext(context, "title_rating_cache_invalidate_failed",
			slog.String("title_id", id), slog.Any("error", err))
	}

	return nil
}

// resolveReferences maps a category slug and genre slugs to their entities.
// Either input may be nil/empty, in which case that side resolves to nothing.
// Unknown slugs are reported as field-level validation errors.
func (service *Service) resolveReferences(context context.Context, categorySlug *string, genreSlugs *[]string) (*category.Category, []genre.Genre, error) {
	var resolvedCategory *category.Category

	if categorySlug != nil && *categorySlug != "" {
		found, err := service.categories.GetBySlug(context, *categorySlug)
		if err != nil {
			return nil, nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldCategory,
				Message: fmt.Sprintf("Unknown category %q", *categorySlug),
			})
		}
		resolvedCategory = found
	}

	resolvedGenres := make([]genre.Genre, 0)
	if genreSlugs != nil {
		for _, genreSlug := range *genreSlugs {
			found, err := service.genres.GetBySlug(context, genreSlug)
			if err != nil {
				return nil, nil, apperr.ValidationError("Validation failed", apperr.FieldError{
					Field:   FieldGenre,
					Message: fmt.Sprintf("Unknown genre %q", genreSlug),
				})
			}
			resolvedGenres = append(resolvedGenres, *found)
		}
	}

	return resolvedCategory, resolvedGenres, nil
}
