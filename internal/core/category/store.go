// Copyright (c) 2026 Kritika. All rights reserved.

package category

import "context"

// Filter narrows and pages the category listing.
type Filter struct {
	// Search matches a case-insensitive substring of the name.
	Search string
	// Limit of 0 disables paging and returns the full collection.
	Limit  int
	Offset int
}

type Repository interface {
	List(context context.Context, filter Filter) ([]*Category, int, error)
	GetBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
