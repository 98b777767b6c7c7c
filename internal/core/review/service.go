// Copyright (c) 2026 Kritika. All rights reserved.

package review

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kritika-app/kritika/internal/core/title"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/database/schema"
	"github.com/kritika-app/kritika/internal/platform/dberr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/pkg/uuidv7"
)

// # Contracts & Types

// TitleResolver confirms that the parent title exists.
type TitleResolver interface {
	GetByID(context context.Context, id string) (*title.Title, error)
}

// Service implements the review use cases.
type Service struct {
	repo        Repository
	titles      TitleResolver
	ratingCache title.RatingCache
	logger      *slog.Logger
}

// NewService constructs a review [Service] with its dependencies.
func NewService(repo Repository, titles TitleResolver, ratingCache title.RatingCache, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		titles:      titles,
		ratingCache: ratingCache,
		logger:      logger,
	}
}

// # Read Path

func (service *Service) ListReviews(context context.Context, titleID string, filter Filter) ([]*Review, int, error) {
	if _, err := service.titles.GetByID(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByTitle(context, titleID, filter)
}

func (service *Service) GetReview(context context.Context, titleID, reviewID string) (*Review, error) {
	return service.repo.GetByID(context, titleID, reviewID)
}

// # Write Path

// CreateInput holds the data for a new review.
type CreateInput struct {
	Text  string
	Score int
}

/*
CreateReview publishes a review on behalf of the authenticated user.

Description: Enforces the one-review-per-author-per-title rule twice: a
friendly pre-check, and the named unique constraint as the race-proof
backstop. Both surface the same field-level conflict.

Parameters:
  - context: context.Context
  - titleID: string
  - claims: *sec.AuthClaims (the author)
  - input: CreateInput

Returns:
  - *Review: Created entity with the author's username attached
  - err: NotFound (title), Conflict, or storage errors
*/
func (service *Service) CreateReview(context context.Context, titleID string, claims *sec.AuthClaims, input CreateInput) (*Review, error) {
	if _, err := service.titles.GetByID(context, titleID); err != nil {
		return nil, err
	}

	exists, err := service.repo.HasAuthorReview(context, titleID, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("review_service_duplicate_check_failed: %w", err)
	}
	if exists {
		return nil, apperr.Conflict(FieldTitle, "You have already reviewed this title")
	}

	review := &Review{
		ID:       uuidv7.New(),
		TitleID:  titleID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     input.Text,
		Score:    input.Score,
	}

	if err := service.repo.Create(context, review); err != nil {
		if dberr.IsUniqueViolation(err, schema.ReviewUniqueAuthorTitle) {
			return nil, apperr.Conflict(FieldTitle, "You have already reviewed this title")
		}
		return nil, fmt.Errorf("review_service_create_failed: %w", err)
	}

	service.invalidateRating(context, titleID)
	service.logger.InfoContext(context, "review_created",
		slog.String("review_id", review.ID), slog.String("title_id", titleID))

	return review, nil
}

// UpdateInput holds a partial review update. Nil fields are left untouched.
type UpdateInput struct {
	Text  *string
	Score *int
}

/*
UpdateReview edits an existing review.

Description: Permitted for the review's author, moderators, and
admin-equivalent users, per [sec.CanModifyContribution].

Returns:
  - *Review: Updated entity
  - err: NotFound, Forbidden, or storage errors
*/
func (service *Service) UpdateReview(context context.Context, titleID, reviewID string, claims *sec.AuthClaims, input UpdateInput) (*Review, error) {
	review, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.CanModifyContribution(claims, review.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify another user's review")
	}

	if input.Text != nil {
		review.Text = *input.Text
	}
	if input.Score != nil {
		review.Score = *input.Score
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, fmt.Errorf("review_service_update_failed: %w", err)
	}

	service.invalidateRating(context, titleID)
	return review, nil
}

func (service *Service) DeleteReview(context context.Context, titleID, reviewID string, claims *sec.AuthClaims) error {
	review, err := service.repo.GetByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.CanModifyContribution(claims, review.AuthorID) {
		return apperr.Forbidden("You cannot delete another user's review")
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.invalidateRating(context, titleID)
	return nil
}

// invalidateRating drops the cached aggregate; the next title read recomputes it.
func (service *Service) invalidateRating(context context.Context, titleID string) {
	if err := service.ratingCache.Invalidate(context, titleID); err != nil {
		service.logger.WarnContext(context, "review_rating_invalidate_failed",
			slog.String("title_id", titleID), slog.Any("error", err))
	}
}
