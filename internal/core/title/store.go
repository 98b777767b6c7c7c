// Copyright (c) 2026 Kritika. All rights reserved.

package title

import "context"

// Filter narrows and pages the title listing.
//
// All fields combine with AND. Slug filters and the name filter match
// case-insensitive substrings, mirroring the behavior clients already rely on;
// the year filter is an exact match.
type Filter struct {
	Category string
	Genre    string
	Name     string
	Year     *int

	// Limit of 0 disables paging and returns the full collection.
	Limit  int
	Offset int
}

// Repository is the persistence contract for titles.
//
// List computes Rating inline (one aggregate join covers the whole page).
// GetByID leaves Rating unset: the detail path is the hot one, so the service
// resolves it through [RatingCache], falling back to AverageScore.
type Repository interface {
	List(context context.Context, filter Filter) ([]*Title, int, error)
	GetByID(context context.Context, id string) (*Title, error)
	Create(context context.Context, title *Title) error
	Update(context context.Context, title *Title) error
	Delete(context context.Context, id string) error

	// AverageScore computes the mean review score, or nil when unreviewed.
	AverageScore(context context.Context, titleID string) (*float64, error)
}

// RatingCache holds computed rating aggregates between review writes.
type RatingCache interface {
	// Get returns the cached rating and whether the key was present.
	// A present key may still carry a nil rating (title with no reviews).
	Get(context context.Context, titleID string) (*float64, bool, error)
	Set(context context.Context, titleID string, rating *float64) error
	Invalidate(context context.Context, titleID string) error
}
