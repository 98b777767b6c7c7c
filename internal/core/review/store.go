// Copyright (c) 2026 Kritika. All rights reserved.

package review

import "context"

// Filter pages the review listing of a single title.
type Filter struct {
	// Limit of 0 disables paging and returns the full collection.
	Limit  int
	Offset int
}

// Repository is the persistence contract for reviews. All lookups are scoped
// by title so a review can never be addressed through the wrong parent.
type Repository interface {
	ListByTitle(context context.Context, titleID string, filter Filter) ([]*Review, int, error)
	GetByID(context context.Context, titleID, reviewID string) (*Review, error)
	Create(context context.Context, review *Review) error
	Update(context context.Context, review *Review) error
	Delete(context context.Context, titleID, reviewID string) error

	// HasAuthorReview reports whether the author already reviewed the title.
	HasAuthorReview(context context.Context, titleID, authorID string) (bool, error)
}
