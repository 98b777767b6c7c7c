// Copyright (c) 2026 Kritika. All rights reserved.

// Package comment implements threaded discussion under reviews.
//
// Comments are plain text, carry no score, and are always addressed through
// their full parent chain (title, then review).
package comment

import "time"

// Comment is a remark a user attached to a review.
type Comment struct {
	ID       string    `json:"id"`
	ReviewID string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

// FieldText is the validated request field.
const FieldText = "text"
