// Copyright (c) 2026 Kritika. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// List endpoints accept optional `limit`/`offset` query parameters. When the
// client sends a `limit`, the response is wrapped in an envelope carrying the
// total count plus ready-made next/previous page links; when it does not, the
// response is the bare result collection. This keeps simple clients simple
// while giving paging clients everything they need.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// Params holds the parsed limit and offset from a request's query string.
type Params struct {
	// Limit is the page size. Zero means "no limit requested": the endpoint
	// returns the full collection without an envelope.
	Limit int
	// Offset is the number of leading results to skip.
	Offset int
	// Requested reports whether the client explicitly sent a `limit`
	// parameter, which switches the response to the enveloped form.
	Requested bool
}

// Envelope is the paginated response body used when a limit was requested.
type Envelope struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative values fall back to zero; an excessive limit is clamped
// to [MaxLimit].
func FromRequest(r *http.Request) Params {
	params := Params{}

	// Strictly positive: limit=0 behaves like an absent limit, the same as
	// any other invalid value.
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			params.Requested = true
			params.Limit = n
			if params.Limit > MaxLimit {
				params.Limit = MaxLimit
			}
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			params.Offset = n
		}
	}

	return params
}

// NewEnvelope builds the paginated response body, deriving the next and
// previous page links from the request URL.
func NewEnvelope(r *http.Request, params Params, count int, results any) Envelope {
	envelope := Envelope{Count: count, Results: results}

	// A next page exists while there are results beyond the current window.
	if params.Offset+params.Limit < count {
		envelope.Next = pageLink(r, params.Limit, params.Offset+params.Limit)
	}

	// A previous page exists whenever the current window is not the first.
	if params.Offset > 0 {
		previousOffset := params.Offset - params.Limit
		if previousOffset < 0 {
			previousOffset = 0
		}
		envelope.Previous = pageLink(r, params.Limit, previousOffset)
	}

	return envelope
}

// pageLink rebuilds the request URL with the given limit and offset.
func pageLink(r *http.Request, limit, offset int) *string {
	link := *r.URL
	query := link.Query()
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	link.RawQuery = query.Encode()

	result := link.String()
	return &result
}
