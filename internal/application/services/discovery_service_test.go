package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
	apperrors "github.com/eventfinder-ai/backend/pkg/errors"
)

type stubSearchProvider struct {
	results  []providers.SearchResult
	err      error
	requests []providers.SearchRequest
}

func (p *stubSearchProvider) Name() string { return "stub" }

func (p *stubSearchProvider) Search(ctx context.Context, request providers.SearchRequest) ([]providers.SearchResult, error) {
	p.requests = append(p.requests, request)
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

func floatPtr(v float64) *float64 { return &v }

func TestBuildQuery_LocationTakesPrecedence(t *testing.T) {
	intent := entities.ResolvedIntent{
		Location:       "Boston, MA",
		Latitude:       floatPtr(41.8781),
		Longitude:      floatPtr(-87.6298),
		TimeWindowDays: 7,
	}

	built := BuildQuery("free jazz events", intent)

	assert.Contains(t, built, "Boston, MA")
	assert.NotContains(t, built, "near")
	assert.Contains(t, built, "this week")
}

func TestBuildQuery_CoordinateHint(t *testing.T) {
	intent := entities.ResolvedIntent{
		Latitude:       floatPtr(41.8781),
		Longitude:      floatPtr(-87.6298),
		TimeWindowDays: 7,
	}

	built := BuildQuery("free jazz events", intent)

	assert.Contains(t, built, "near 41.8781, -87.6298")
}

func TestBuildQuery_TimeWindowPhrases(t *testing.T) {
	tests := []struct {
		days   int
		phrase string
	}{
		{1, "today"},
		{3, "this weekend"},
		{7, "this week"},
		{14, "next 14 days"},
	}

	for _, tc := range tests {
		built := BuildQuery("free events", entities.ResolvedIntent{TimeWindowDays: tc.days})
		assert.Contains(t, built, tc.phrase)
	}
}

func TestDiscover_MapsResultsToEvents(t *testing.T) {
	provider := &stubSearchProvider{
		results: []providers.SearchResult{
			{Title: "Jazz Night", URL: "https://example.com/jazz", Description: "Live jazz, drop-in welcome"},
			{Title: "", URL: ""},
			{Title: "Poetry Slam", URL: "https://example.com/poetry", Description: "Open mic"},
		},
	}
	svc := NewDiscoveryService(provider, NewQueryFormattingService(), 10)

	result, err := svc.Discover(context.Background(), entities.ResolvedIntent{
		Query:          "jazz shows",
		Location:       "Chicago",
		TimeWindowDays: 7,
	})

	require.NoError(t, err)
	require.Len(t, result.Events, 2)
	assert.Equal(t, entities.EventID("https://example.com/jazz", "Jazz Night"), result.Events[0].ID)
	assert.Equal(t, "Chicago", result.Events[0].Location)
	assert.Equal(t, "Free", result.Events[0].Price)
	assert.True(t, result.Events[0].IsDropIn)
	assert.False(t, result.Events[1].IsDropIn)
}

func TestDiscover_PropagatesProviderError(t *testing.T) {
	provider := &stubSearchProvider{err: errors.New("connection refused")}
	svc := NewDiscoveryService(provider, NewQueryFormattingService(), 10)

	_, err := svc.Discover(context.Background(), entities.ResolvedIntent{Query: "jazz"})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
}

func TestDiscover_PassesNormalizedRequest(t *testing.T) {
	provider := &stubSearchProvider{}
	svc := NewDiscoveryService(provider, NewQueryFormattingService(), 5)

	_, err := svc.Discover(context.Background(), entities.ResolvedIntent{
		Query:          "jazz",
		Location:       "Boston, MA",
		Country:        "US",
		SearchLang:     "en",
		TimeWindowDays: 3,
	})

	require.NoError(t, err)
	require.Len(t, provider.requests, 1)
	request := provider.requests[0]
	assert.Equal(t, "Boston, MA", request.Location)
	assert.Equal(t, "US", request.Country)
	assert.Equal(t, "en", request.SearchLang)
	assert.Equal(t, 3, request.TimeWindowDays)
	assert.Equal(t, 5, request.Count)
	assert.Contains(t, request.Query, "free")
	assert.Contains(t, request.Query, "Boston, MA")
	assert.Contains(t, request.Query, "this weekend")
}
