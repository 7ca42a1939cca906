package search

import (
	"context"
	"fmt"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

// MockAdapter returns deterministic results for local development and tests.
type MockAdapter struct {
	maxResults int
}

// NewMockAdapter creates a mock search provider.
func NewMockAdapter() providers.SearchProvider {
	return &MockAdapter{maxResults: 3}
}

// Name returns the provider identifier.
func (m *MockAdapter) Name() string {
	return "mock"
}

// Search returns sample event listings shaped like real hits.
func (m *MockAdapter) Search(ctx context.Context, request providers.SearchRequest) ([]providers.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := request.Count
	if count <= 0 || count > m.maxResults {
		count = m.maxResults
	}

	samples := []providers.SearchResult{
		{
			Title:       "Community Jazz Night",
			URL:         "https://example.com/events/jazz-night",
			Description: "Free live jazz in the park, drop-in welcome, no registration",
			Source:      "Example Events",
		},
		{
			Title:       "Gallery Opening Reception",
			URL:         "https://example.com/events/gallery-opening",
			Description: "Open to the public, complimentary refreshments",
			Source:      "Example Arts",
		},
		{
			Title:       "Tech Meetup: Intro to Go",
			URL:         "https://example.com/events/go-meetup",
			Description: "Open to everyone, RSVP appreciated but not required",
			Source:      "Example Tech",
		},
	}

	if count < len(samples) {
		samples = samples[:count]
	}

	results := make([]providers.SearchResult, len(samples))
	for i, s := range samples {
		s.Description = fmt.Sprintf("%s. Matched query: %s", s.Description, request.Query)
		results[i] = s
	}

	return results, nil
}
