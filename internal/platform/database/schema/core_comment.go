// Copyright (c) 2026 Kritika. All rights reserved.

package schema

// CoreCommentTable represents the 'core.comment' table
type CoreCommentTable struct {
	Table    string
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  string
}

// CoreComment is the schema definition for core.comment
var CoreComment = CoreCommentTable{
	Table:    "core.comment",
	ID:       "id",
	ReviewID: "reviewid",
	AuthorID: "authorid",
	Text:     "text",
	PubDate:  "pubdate",
}

func (t CoreCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate}
}
