// Copyright (c) 2026 Kritika. All rights reserved.

// Package genre implements the genre reference vocabulary of the catalog.
// Unlike categories, a title may carry any number of genres.
package genre

import "time"

// Genre tags a title with a stylistic label ("Drama", "Rock", "Fantasy").
type Genre struct {
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
