// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package title implements the central catalog entity of Kritika.

A title is a reviewable work (a book, a film, an album) that belongs to one
category and carries any number of genres. Its rating is never stored: it is
the live average of review scores, computed on read and cached in Redis.

Architecture:

  - Service: Orchestrates slug resolution, validation, and the rating cache.
  - Repository: Literal-SQL Postgres store with dynamic filtering.
  - Cache: Redis-backed rating aggregates, invalidated on review writes.
*/
package title

import (
	"time"

	"github.com/kritika-app/kritika/internal/core/category"
	"github.com/kritika-app/kritika/internal/core/genre"
)

// Title represents a reviewable work in the catalog.
type Title struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Year        *int               `json:"year"`
	Rating      *float64           `json:"rating"`
	Description string             `json:"description"`
	Genres      []genre.Genre      `json:"genre"`
	Category    *category.Category `json:"category"`
	CreatedAt   time.Time          `json:"-"`
	UpdatedAt   time.Time          `json:"-"`
}

// Field names used in validation and conflict reporting.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// MaxNameLength matches the database column size.
const MaxNameLength = 256
