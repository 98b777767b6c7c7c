// Copyright (c) 2026 Kritika. All rights reserved.

package title_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/core/category"
	"github.com/kritika-app/kritika/internal/core/genre"
	"github.com/kritika-app/kritika/internal/core/title"
	"github.com/kritika-app/kritika/internal/platform/apperr"
)

// # Test Doubles

type fakeRepository struct {
	titles       map[string]*title.Title
	average      *float64
	averageCalls int
}

func (f *fakeRepository) List(_ context.Context, _ title.Filter) ([]*title.Title, int, error) {
	out := make([]*title.Title, 0, len(f.titles))
	for _, t := range f.titles {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*title.Title, error) {
	t, ok := f.titles[id]
	if !ok {
		return nil, apperr.NotFound("title")
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, t *title.Title) error {
	f.titles[t.ID] = t
	return nil
}

func (f *fakeRepository) Update(_ context.Context, t *title.Title) error {
	if _, ok := f.titles[t.ID]; !ok {
		return apperr.NotFound("title")
	}
	f.titles[t.ID] = t
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.titles[id]; !ok {
		return apperr.NotFound("title")
	}
	delete(f.titles, id)
	return nil
}

func (f *fakeRepository) AverageScore(_ context.Context, _ string) (*float64, error) {
	f.averageCalls++
	return f.average, nil
}

type fakeCategories struct {
	known map[string]*category.Category
}

func (f *fakeCategories) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := f.known[slug]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("category")
}

type fakeGenres struct {
	known map[string]*genre.Genre
}

func (f *fakeGenres) GetBySlug(_ context.Context, slug string) (*genre.Genre, error) {
	if g, ok := f.known[slug]; ok {
		return g, nil
	}
	return nil, apperr.NotFound("genre")
}

type fakeRatingCache struct {
	entries     map[string]*float64
	invalidated []string
}

func (f *fakeRatingCache) Get(_ context.Context, titleID string) (*float64, bool, error) {
	rating, ok := f.entries[titleID]
	return rating, ok, nil
}

func (f *fakeRatingCache) Set(_ context.Context, titleID string, rating *float64) error {
	f.entries[titleID] = rating
	return nil
}

func (f *fakeRatingCache) Invalidate(_ context.Context, titleID string) error {
	f.invalidated = append(f.invalidated, titleID)
	delete(f.entries, titleID)
	return nil
}

// # Fixtures

func newFixture() (*title.Service, *fakeRepository, *fakeRatingCache) {
	repo := &fakeRepository{titles: make(map[string]*title.Title)}
	cache := &fakeRatingCache{entries: make(map[string]*float64)}

	categories := &fakeCategories{known: map[string]*category.Category{
		"books": {ID: "cat-1", Name: "Books", Slug: "books"},
	}}
	genres := &fakeGenres{known: map[string]*genre.Genre{
		"drama":   {ID: "gen-1", Name: "Drama", Slug: "drama"},
		"fantasy": {ID: "gen-2", Name: "Fantasy", Slug: "fantasy"},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := title.NewService(repo, categories, genres, cache, logger)
	return service, repo, cache
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// # Tests

/*
TestCreateTitle_ResolvesReferences verifies that category and genre slugs are
resolved into full entities on creation.
*/
func TestCreateTitle_ResolvesReferences(t *testing.T) {
	service, repo, _ := newFixture()

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "The Hobbit",
		Year:         intPtr(1937),
		CategorySlug: "books",
		GenreSlugs:   []string{"fantasy", "drama"},
	})

	require.NoError(t, err)
	require.NotNil(t, created.Category)
	assert.Equal(t, "books", created.Category.Slug)
	assert.Len(t, created.Genres, 2)
	assert.Nil(t, created.Rating)
	assert.Contains(t, repo.titles, created.ID)
}

/*
TestCreateTitle_UnknownCategory verifies that an unresolvable category slug is
reported as a field-level validation failure, not a 404.
*/
func TestCreateTitle_UnknownCategory(t *testing.T) {
	service, _, _ := newFixture()

	_, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "The Hobbit",
		CategorySlug: "movies",
	})

	require.Error(t, err)
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, 400, appError.HTTPStatus)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, title.FieldCategory, appError.Details[0].Field)
}

/*
TestCreateTitle_UnknownGenre verifies the same field-level failure for genres.
*/
func TestCreateTitle_UnknownGenre(t *testing.T) {
	service, _, _ := newFixture()

	_, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "The Hobbit",
		CategorySlug: "books",
		GenreSlugs:   []string{"fantasy", "cooking"},
	})

	require.Error(t, err)
	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	require.Len(t, appError.Details, 1)
	assert.Equal(t, title.FieldGenre, appError.Details[0].Field)
}

/*
TestGetTitle_CacheHit verifies that a warm rating cache short-circuits the
aggregate query.
*/
func TestGetTitle_CacheHit(t *testing.T) {
	service, repo, cache := newFixture()

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "Dune",
		CategorySlug: "books",
	})
	require.NoError(t, err)

	cache.entries[created.ID] = floatPtr(8.5)

	fetched, err := service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.Rating)
	assert.InDelta(t, 8.5, *fetched.Rating, 0.001)
	assert.Zero(t, repo.averageCalls)
}

/*
TestGetTitle_CacheMiss verifies that a cold cache falls through to the
aggregate query and writes the result back, including the "no reviews" case.
*/
func TestGetTitle_CacheMiss(t *testing.T) {
	service, repo, cache := newFixture()

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "Dune",
		CategorySlug: "books",
	})
	require.NoError(t, err)

	repo.average = nil

	fetched, err := service.GetTitle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Rating)
	assert.Equal(t, 1, repo.averageCalls)

	// The nil aggregate must be cached too
	_, found := cache.entries[created.ID]
	assert.True(t, found)
}

/*
TestUpdateTitle_Partial verifies that nil fields in the update input leave the
entity untouched.
*/
func TestUpdateTitle_Partial(t *testing.T) {
	service, _, _ := newFixture()

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "Dune",
		Year:         intPtr(1965),
		CategorySlug: "books",
		GenreSlugs:   []string{"fantasy"},
	})
	require.NoError(t, err)

	newName := "Dune Messiah"
	updated, err := service.UpdateTitle(context.Background(), created.ID, title.UpdateInput{
		Name: &newName,
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Name)
	require.NotNil(t, updated.Year)
	assert.Equal(t, 1965, *updated.Year)
	assert.Equal(t, "books", updated.Category.Slug)
	assert.Len(t, updated.Genres, 1)
}

/*
TestDeleteTitle_InvalidatesCache verifies that removing a title drops its
cached rating.
*/
func TestDeleteTitle_InvalidatesCache(t *testing.T) {
	service, _, cache := newFixture()

	created, err := service.CreateTitle(context.Background(), title.CreateInput{
		Name:         "Dune",
		CategorySlug: "books",
	})
	require.NoError(t, err)
	cache.entries[created.ID] = floatPtr(7.0)

	require.NoError(t, service.DeleteTitle(context.Background(), created.ID))
	assert.Contains(t, cache.invalidated, created.ID)

	_, err = service.GetTitle(context.Background(), created.ID)
	require.Error(t, err)
}
