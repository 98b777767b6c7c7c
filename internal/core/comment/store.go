// Copyright (c) 2026 Kritika. All rights reserved.

package comment

import "context"

// Filter pages the comment listing of a single review.
type Filter struct {
	// Limit of 0 disables paging and returns the full collection.
	Limit  int
	Offset int
}

// Repository is the persistence contract for comments, scoped by review.
type Repository interface {
	ListByReview(context context.Context, reviewID string, filter Filter) ([]*Comment, int, error)
	GetByID(context context.Context, reviewID, commentID string) (*Comment, error)
	Create(context context.Context, comment *Comment) error
	Update(context context.Context, comment *Comment) error
	Delete(context context.Context, reviewID, commentID string) error
}
