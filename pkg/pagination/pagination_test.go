// Copyright (c) 2026 Kritika. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/pkg/pagination"
)

/*
TestFromRequest verifies limit/offset parsing, the Requested flag, and
clamping of abusive values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		limit     int
		offset    int
		requested bool
	}{
		{"no_params", "/titles", 0, 0, false},
		{"limit_only", "/titles?limit=10", 10, 0, true},
		{"limit_and_offset", "/titles?limit=10&offset=30", 10, 30, true},
		{"offset_only", "/titles?offset=5", 0, 5, false},
		{"limit_clamped", "/titles?limit=5000", pagination.MaxLimit, 0, true},
		{"garbage_ignored", "/titles?limit=abc&offset=-3", 0, 0, false},
		{"zero_limit_treated_as_absent", "/titles?limit=0", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset)
			assert.Equal(t, tt.requested, params.Requested)
		})
	}
}

/*
TestNewEnvelope checks the count/next/previous/results shape, including
link presence at the collection boundaries.
*/
func TestNewEnvelope(t *testing.T) {
	results := []string{"a", "b"}

	t.Run("middle_page", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/titles?limit=2&offset=2", nil)
		params := pagination.Params{Limit: 2, Offset: 2, Requested: true}

		envelope := pagination.NewEnvelope(request, params, 6, results)

		assert.Equal(t, 6, envelope.Count)
		require.NotNil(t, envelope.Next)
		assert.Contains(t, *envelope.Next, "offset=4")
		require.NotNil(t, envelope.Previous)
		assert.Contains(t, *envelope.Previous, "offset=0")
	})

	t.Run("first_page", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/titles?limit=2", nil)
		params := pagination.Params{Limit: 2, Offset: 0, Requested: true}

		envelope := pagination.NewEnvelope(request, params, 6, results)

		assert.NotNil(t, envelope.Next)
		assert.Nil(t, envelope.Previous)
	})

	t.Run("last_page", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/titles?limit=2&offset=4", nil)
		params := pagination.Params{Limit: 2, Offset: 4, Requested: true}

		envelope := pagination.NewEnvelope(request, params, 6, results)

		assert.Nil(t, envelope.Next)
		assert.NotNil(t, envelope.Previous)
	})

	t.Run("empty_collection", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/titles?limit=2", nil)
		params := pagination.Params{Limit: 2, Offset: 0, Requested: true}

		envelope := pagination.NewEnvelope(request, params, 0, []string{})

		assert.Equal(t, 0, envelope.Count)
		assert.Nil(t, envelope.Next)
		assert.Nil(t, envelope.Previous)
	})
}
