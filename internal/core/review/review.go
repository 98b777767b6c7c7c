// Copyright (c) 2026 Kritika. All rights reserved.

/*
Package review implements user reviews of catalog titles.

Each user may publish at most one review per title, scored 1-10. Reviews feed
the title rating aggregate, so every write here invalidates the corresponding
cache entry.

Architecture:

  - Service: Parent checks, the one-review-per-author rule, author/staff authorization.
  - Repository: Postgres store joining the author's username for display.
*/
package review

import "time"

// Review is a scored opinion a user published about a title.
type Review struct {
	ID       string    `json:"id"`
	TitleID  string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Score    int       `json:"score"`
	PubDate  time.Time `json:"pub_date"`
}

// Field names used in validation and conflict reporting.
const (
	FieldText  = "text"
	FieldScore = "score"
	FieldTitle = "title"
)

// Score bounds.
const (
	MinScore = 1
	MaxScore = 10
)
