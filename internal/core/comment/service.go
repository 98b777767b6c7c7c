// Copyright (c) 2026 Kritika. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kritika-app/kritika/internal/core/review"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
	"github.com/kritika-app/kritika/pkg/uuidv7"
)

// ReviewResolver confirms that the parent review exists under the given title.
type ReviewResolver interface {
	GetByID(context context.Context, titleID, reviewID string) (*review.Review, error)
}

// Service implements the comment use cases.
type Service struct {
	repo    Repository
	reviews ReviewResolver
	logger  *slog.Logger
}

func NewService(repo Repository, reviews ReviewResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		reviews: reviews,
		logger:  logger,
	}
}

func (service *Service) ListComments(context context.Context, titleID, reviewID string, filter Filter) ([]*Comment, int, error) {
	if _, err := service.reviews.GetByID(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByReview(context, reviewID, filter)
}

func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	if _, err := service.reviews.GetByID(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetByID(context, reviewID, commentID)
}

// CreateComment attaches a comment to a review on behalf of the caller.
// The full parent chain is verified so a comment can never land under a
// review reached through the wrong title.
func (service *Service) CreateComment(context context.Context, titleID, reviewID string, claims *sec.AuthClaims, text string) (*Comment, error) {
	if _, err := service.reviews.GetByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuidv7.New(),
		ReviewID: reviewID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     text,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID), slog.String("review_id", reviewID))
	return comment, nil
}

// UpdateComment edits a comment, permitted for its author, moderators, and
// admin-equivalent users.
func (service *Service) UpdateComment(context context.Context, titleID, reviewID, commentID string, claims *sec.AuthClaims, text string) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.CanModifyContribution(claims, comment.AuthorID) {
		return nil, apperr.Forbidden("You cannot modify another user's comment")
	}

	comment.Text = text
	if err := service.repo.Update(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_update_failed: %w", err)
	}

	return comment, nil
}

func (service *Service) DeleteComment(context context.Context, titleID, reviewID, commentID string, claims *sec.AuthClaims) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.CanModifyContribution(claims, comment.AuthorID) {
		return apperr.Forbidden("You cannot delete another user's comment")
	}

	return service.repo.Delete(context, reviewID, commentID)
}
