// Copyright (c) 2026 Kritika. All rights reserved.

package comment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/core/comment"
	"github.com/kritika-app/kritika/internal/core/review"
	"github.com/kritika-app/kritika/internal/platform/apperr"
	"github.com/kritika-app/kritika/internal/platform/sec"
)

// # Test Doubles

type fakeRepository struct {
	comments map[string]*comment.Comment
}

func (f *fakeRepository) ListByReview(_ context.Context, reviewID string, _ comment.Filter) ([]*comment.Comment, int, error) {
	out := make([]*comment.Comment, 0)
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, reviewID, commentID string) (*comment.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("comment")
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	f.comments[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, reviewID, commentID string) error {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return apperr.NotFound("comment")
	}
	delete(f.comments, commentID)
	return nil
}

type fakeReviews struct {
	titleID  string
	reviewID string
}

func (f *fakeReviews) GetByID(_ context.Context, titleID, reviewID string) (*review.Review, error) {
	if titleID == f.titleID && reviewID == f.reviewID {
		return &review.Review{ID: reviewID, TitleID: titleID}, nil
	}
	return nil, apperr.NotFound("review")
}

// # Fixtures

const (
	knownTitleID  = "title-1"
	knownReviewID = "review-1"
)

func newFixture() (*comment.Service, *fakeRepository) {
	repo := &fakeRepository{comments: make(map[string]*comment.Comment)}
	reviews := &fakeReviews{titleID: knownTitleID, reviewID: knownReviewID}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comment.NewService(repo, reviews, logger), repo
}

func userClaims(id, username string) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: username, Role: string(sec.RoleUser)}
}

// # Tests

/*
TestCreateComment_ParentChain verifies that a comment can only be created
through the correct title/review pair.
*/
func TestCreateComment_ParentChain(t *testing.T) {
	service, repo := newFixture()
	author := userClaims("user-1", "alice")

	// 1. Wrong title, existing review
	_, err := service.CreateComment(context.Background(), "other-title", knownReviewID, author, "Hello")
	require.Error(t, err)

	// 2. Correct chain
	created, err := service.CreateComment(context.Background(), knownTitleID, knownReviewID, author, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Author)
	assert.Contains(t, repo.comments, created.ID)
}

/*
TestUpdateComment_Authorization verifies the author/staff edit rules.
*/
func TestUpdateComment_Authorization(t *testing.T) {
	service, _ := newFixture()
	author := userClaims("user-1", "alice")

	created, err := service.CreateComment(context.Background(), knownTitleID, knownReviewID, author, "Original")
	require.NoError(t, err)

	// 1. A stranger is rejected with 403
	_, err = service.UpdateComment(context.Background(), knownTitleID, knownReviewID, created.ID,
		userClaims("user-2", "bob"), "Hijacked")
	require.Error(t, err)
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, 403, appError.HTTPStatus)

	// 2. The author may edit
	updated, err := service.UpdateComment(context.Background(), knownTitleID, knownReviewID, created.ID,
		author, "Edited")
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Text)

	// 3. A moderator may edit anyone's comment
	moderator := &sec.AuthClaims{UserID: "user-3", Username: "mod", Role: string(sec.RoleModerator)}
	_, err = service.UpdateComment(context.Background(), knownTitleID, knownReviewID, created.ID,
		moderator, "Moderated")
	require.NoError(t, err)
}

/*
TestDeleteComment verifies removal authorization.
*/
func TestDeleteComment(t *testing.T) {
	service, repo := newFixture()
	author := userClaims("user-1", "alice")

	created, err := service.CreateComment(context.Background(), knownTitleID, knownReviewID, author, "Temp")
	require.NoError(t, err)

	err = service.DeleteComment(context.Background(), knownTitleID, knownReviewID, created.ID,
		userClaims("user-2", "bob"))
	require.Error(t, err)

	err = service.DeleteComment(context.Background(), knownTitleID, knownReviewID, created.ID, author)
	require.NoError(t, err)
	assert.Empty(t, repo.comments)
}
