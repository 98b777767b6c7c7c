// Copyright (c) 2026 Kritika. All rights reserved.

package schema

// CoreReviewTable represents the 'core.review' table
type CoreReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string
}

// CoreReview is the schema definition for core.review
var CoreReview = CoreReviewTable{
	Table:    "core.review",
	ID:       "id",
	TitleID:  "titleid",
	AuthorID: "authorid",
	Text:     "text",
	Score:    "score",
	PubDate:  "pubdate",
}

// ReviewUniqueAuthorTitle is the named constraint enforcing one review per author per title.
const ReviewUniqueAuthorTitle = "review_author_title_unique"

func (t CoreReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate}
}
