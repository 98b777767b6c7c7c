// Copyright (c) 2026 Kritika. All rights reserved.

package genre

import "context"

// Filter narrows and pages the genre listing.
type Filter struct {
	// Search matches a case-insensitive substring of the name.
	Search string
	// Limit of 0 disables paging and returns the full collection.
	Limit  int
	Offset int
}

type Repository interface {
	List(context context.Context, filter Filter) ([]*Genre, int, error)
	GetBySlug(context context.Context, slug string) (*Genre, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
