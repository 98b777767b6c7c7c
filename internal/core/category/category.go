// Copyright (c) 2026 Kritika. All rights reserved.

// Package category implements the category reference vocabulary of the
// catalog ("Books", "Films", "Music"). Every title belongs to exactly one
// category, addressed by its URL-safe slug.
package category

import "time"

// Category classifies a title at the top level of the catalog taxonomy.
type Category struct {
	ID        string    `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}

// Field names used in validation and conflict reporting.
const (
	FieldName = "name"
	FieldSlug = "slug"
)

// Validation bounds, aligned with the database column sizes.
const (
	MaxNameLength = 256
	MaxSlugLength = 50
)
