package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

const braveFixture = `{
	"web": {
		"results": [
			{
				"title": "Free Jazz in the Park",
				"url": "https://example.com/jazz",
				"description": "Weekly outdoor jazz series",
				"page_age": "2026-08-20",
				"profile": {"name": "Example", "long_name": "Example Events"}
			},
			{
				"title": "",
				"url": "https://example.com/untitled"
			},
			{
				"title": "Poetry Night",
				"url": "https://example.com/poetry",
				"snippet": "Open mic poetry"
			}
		]
	}
}`

func TestBraveAdapter_Search(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Subscription-Token")
		gotQuery = map[string]string{
			"q":           r.URL.Query().Get("q"),
			"count":       r.URL.Query().Get("count"),
			"country":     r.URL.Query().Get("country"),
			"search_lang": r.URL.Query().Get("search_lang"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(braveFixture))
	}))
	defer server.Close()

	adapter := NewBraveAdapter("test-key", server.URL+"/res/v1/web/search", 5*time.Second)

	results, err := adapter.Search(context.Background(), providers.SearchRequest{
		Query:      "free jazz events Chicago",
		Country:    "US",
		SearchLang: "en",
		Count:      10,
	})

	require.NoError(t, err)
	assert.Equal(t, "/res/v1/web/search", gotPath)
	assert.Equal(t, "test-key", gotToken)
	assert.Equal(t, "free jazz events Chicago", gotQuery["q"])
	assert.Equal(t, "10", gotQuery["count"])
	assert.Equal(t, "US", gotQuery["country"])
	assert.Equal(t, "en", gotQuery["search_lang"])

	// Untitled hit is skipped; snippet backfills a missing description.
	require.Len(t, results, 2)
	assert.Equal(t, "Free Jazz in the Park", results[0].Title)
	assert.Equal(t, "Example Events", results[0].Source)
	assert.Equal(t, "2026-08-20", results[0].Published)
	assert.Equal(t, "Open mic poetry", results[1].Description)
}

func TestBraveAdapter_OmitsEmptyLocaleParams(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"web": {"results": []}}`))
	}))
	defer server.Close()

	adapter := NewBraveAdapter("test-key", server.URL, 5*time.Second)

	_, err := adapter.Search(context.Background(), providers.SearchRequest{Query: "events", Count: 5})

	require.NoError(t, err)
	assert.NotContains(t, rawQuery, "country")
	assert.NotContains(t, rawQuery, "search_lang")
}

func TestBraveAdapter_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := NewBraveAdapter("test-key", server.URL, 5*time.Second)

	_, err := adapter.Search(context.Background(), providers.SearchRequest{Query: "events", Count: 5})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestBraveAdapter_Name(t *testing.T) {
	assert.Equal(t, "brave", NewBraveAdapter("k", "", 0).Name())
}
