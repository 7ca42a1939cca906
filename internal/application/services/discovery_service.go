package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
	apperrors "github.com/eventfinder-ai/backend/pkg/errors"
)

const searchCacheTTLSeconds = 300

// DiscoveryService runs the search pipeline: format the raw query, build the
// provider query string, call the search provider, and normalize hits into
// candidate events. The pipeline is provider-agnostic; the concrete backend
// is injected.
type DiscoveryService struct {
	provider  providers.SearchProvider
	formatter *QueryFormattingService
	cache     providers.CacheProvider
	count     int
}

// DiscoveryResult carries the pipeline's intermediate strings alongside the
// discovered events.
type DiscoveryResult struct {
	FormattedQuery string
	BuiltQuery     string
	Events         []entities.Event
}

// NewDiscoveryService creates a new discovery service.
func NewDiscoveryService(provider providers.SearchProvider, formatter *QueryFormattingService, count int) *DiscoveryService {
	if count <= 0 {
		count = 10
	}
	return &DiscoveryService{
		provider:  provider,
		formatter: formatter,
		count:     count,
	}
}

// SetCache enables caching of provider responses per built query.
func (s *DiscoveryService) SetCache(cache providers.CacheProvider) {
	s.cache = cache
}

// Discover executes the three pipeline stages for the given intent. The
// formatting and query-building stages never fail; provider failures are
// returned as provider errors for the orchestrator to record.
func (s *DiscoveryService) Discover(ctx context.Context, intent entities.ResolvedIntent) (*DiscoveryResult, error) {
	formatted := s.formatter.Format(intent.Query)
	built := BuildQuery(formatted, intent)

	request := providers.SearchRequest{
		Query:          built,
		Location:       intent.Location,
		Country:        intent.Country,
		SearchLang:     intent.SearchLang,
		TimeWindowDays: intent.TimeWindowDays,
		Count:          s.count,
	}

	results, err := s.searchWeb(ctx, request)
	if err != nil {
		return nil, apperrors.NewProviderError(fmt.Sprintf("search provider %s failed", s.provider.Name()), err)
	}

	return &DiscoveryResult{
		FormattedQuery: formatted,
		BuiltQuery:     built,
		Events:         mapResults(results, intent),
	}, nil
}

// BuildQuery composes the formatted query with a location or coordinate hint
// and a time-window phrase. A location label takes precedence over
// coordinates when both are present.
func BuildQuery(formatted string, intent entities.ResolvedIntent) string {
	parts := []string{formatted}

	if intent.Location != "" {
		parts = append(parts, intent.Location)
	} else if intent.HasCoordinates() {
		parts = append(parts, fmt.Sprintf("near %.4f, %.4f", *intent.Latitude, *intent.Longitude))
	}

	if phrase := timeWindowPhrase(intent.TimeWindowDays); phrase != "" {
		parts = append(parts, phrase)
	}

	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func timeWindowPhrase(days int) string {
	switch {
	case days <= 1:
		return "today"
	case days <= 3:
		return "this weekend"
	case days <= 7:
		return "this week"
	default:
		return fmt.Sprintf("next %d days", days)
	}
}

func (s *DiscoveryService) searchWeb(ctx context.Context, request providers.SearchRequest) ([]providers.SearchResult, error) {
	cacheKey := searchCacheKey(request)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			var cached []providers.SearchResult
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	results, err := s.provider.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(results); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, searchCacheTTLSeconds)
		}
	}

	return results, nil
}

func searchCacheKey(request providers.SearchRequest) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%d", request.Query, request.Country, request.SearchLang, request.Count)))
	return "search:v1:" + hex.EncodeToString(sum[:])[:24]
}

func mapResults(results []providers.SearchResult, intent entities.ResolvedIntent) []entities.Event {
	events := make([]entities.Event, 0, len(results))
	for _, r := range results {
		if r.Title == "" && r.URL == "" {
			continue
		}
		events = append(events, entities.Event{
			ID:          entities.EventID(r.URL, r.Title),
			Title:       r.Title,
			Location:    intent.Location,
			Date:        r.Published,
			Description: r.Description,
			URL:         r.URL,
			Price:       "Free",
			IsDropIn:    isDropInDescription(r.Description),
		})
	}
	return events
}

func isDropInDescription(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "drop-in") || strings.Contains(d, "drop in")
}
