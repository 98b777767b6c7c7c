// Copyright (c) 2026 Kritika. All rights reserved.

package comment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritika-app/kritika/internal/platform/database/schema"
)

/*
TestListByReviewSQL_NewestFirst pins the listing order: comments come back
newest first, like reviews.
*/
func TestListByReviewSQL_NewestFirst(t *testing.T) {
	query := listByReviewSQL()

	orderBy := "ORDER BY c." + schema.CoreComment.PubDate + " DESC"
	assert.True(t, strings.Contains(query, orderBy), "query must order by %s descending:\n%s", schema.CoreComment.PubDate, query)
	assert.False(t, strings.Contains(query, "ASC"))
}
