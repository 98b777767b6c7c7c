// Copyright (c) 2026 Kritika. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kritika-app/kritika/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Science Fiction", "science-fiction"},
		{"accents", "Café Société", "cafe-societe"},
		{"punctuation", "Rock & Roll!", "rock-roll"},
		{"already_slug", "horror", "horror"},
		{"collapsed_hyphens", "a  --  b", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
