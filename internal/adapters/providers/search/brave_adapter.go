package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

const braveDefaultBaseURL = "https://api.search.brave.com/res/v1/web/search"

// BraveAdapter implements SearchProvider against the Brave Search web API.
type BraveAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewBraveAdapter creates a Brave search adapter. baseURL is overridable for
// tests and proxies; empty means the public endpoint.
func NewBraveAdapter(apiKey, baseURL string, timeout time.Duration) providers.SearchProvider {
	if baseURL == "" {
		baseURL = braveDefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BraveAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider identifier.
func (a *BraveAdapter) Name() string {
	return "brave"
}

// Search queries Brave and normalizes the web results. Hits without a title
// or URL are skipped.
func (a *BraveAdapter) Search(ctx context.Context, request providers.SearchRequest) ([]providers.SearchResult, error) {
	params := url.Values{}
	params.Set("q", request.Query)
	params.Set("count", strconv.Itoa(request.Count))
	if request.Country != "" {
		params.Set("country", request.Country)
	}
	if request.SearchLang != "" {
		params.Set("search_lang", request.SearchLang)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	// Accept-Encoding is left to the transport so gzip responses are
	// decompressed transparently.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave api error: status %d", resp.StatusCode)
	}

	var result struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				Snippet     string `json:"snippet"`
				PageAge     string `json:"page_age"`
				Profile     *struct {
					Name     string `json:"name"`
					LongName string `json:"long_name"`
				} `json:"profile"`
			} `json:"results"`
		} `json:"web"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var normalized []providers.SearchResult
	for _, item := range result.Web.Results {
		if item.Title == "" || item.URL == "" {
			continue
		}

		description := item.Description
		if description == "" {
			description = item.Snippet
		}

		source := ""
		if item.Profile != nil {
			source = item.Profile.LongName
			if source == "" {
				source = item.Profile.Name
			}
		}

		normalized = append(normalized, providers.SearchResult{
			Title:       item.Title,
			URL:         item.URL,
			Description: description,
			Source:      source,
			Published:   item.PageAge,
		})
	}

	return normalized, nil
}
