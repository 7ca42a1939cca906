package providers

import (
	"context"
)

// SearchRequest is the normalized request sent to external search providers
type SearchRequest struct {
	Query          string
	Location       string
	Country        string
	SearchLang     string
	TimeWindowDays int
	Count          int
}

// SearchResult is one normalized, provider-agnostic hit
type SearchResult struct {
	Title       string
	URL         string
	Description string
	Source      string
	Published   string
}

// SearchProvider is the pluggable external search backend. Additional
// providers are added by implementing this interface, never by branching
// inside the pipeline.
type SearchProvider interface {
	// Name returns the provider identifier used in logs and failover policy
	Name() string

	// Search executes a query and returns normalized results. Transport,
	// timeout, and non-2xx failures are returned as provider errors.
	Search(ctx context.Context, request SearchRequest) ([]SearchResult, error)
}
