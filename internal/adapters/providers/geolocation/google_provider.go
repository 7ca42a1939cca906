package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

const (
	googleGeocodeURL       = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultReverseCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// GoogleGeolocationProvider reverse-geocodes coordinates via the Google Maps
// Geocoding API. Results are cached for 30 days; city boundaries do not move.
type GoogleGeolocationProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleGeolocationProvider creates a new Google geolocation provider.
func NewGoogleGeolocationProvider(apiKey string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewGoogleGeolocationProviderWithOptions(apiKey, cache, googleGeocodeURL, nil)
}

// NewGoogleGeolocationProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleGeolocationProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// ReverseGeocode converts coordinates to an address.
func (g *GoogleGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	cacheKey := "geo:v1:reverse:" + hashKey(fmt.Sprintf("%.5f,%.5f", lat, lon))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var address providers.GeocodedAddress
			if err := json.Unmarshal(cached, &address); err == nil && address.City != "" {
				return &address, nil
			}
		}
	}

	resp, err := g.doGeocodeRequest(ctx, url.Values{"latlng": []string{fmt.Sprintf("%f,%f", lat, lon)}})
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("no results for coordinates")
	}

	result := resp.Results[0]
	address := providers.GeocodedAddress{
		FormattedAddress: result.FormattedAddress,
		City:             componentLong(result.AddressComponents, "locality", "administrative_area_level_2"),
		State:            componentShort(result.AddressComponents, "administrative_area_level_1"),
		Country:          componentLong(result.AddressComponents, "country"),
		CountryCode:      componentShort(result.AddressComponents, "country"),
		Coordinates: providers.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
	}

	if g.cache != nil {
		if payload, err := json.Marshal(address); err == nil {
			_ = g.cache.Set(ctx, cacheKey, payload, defaultReverseCacheTTL)
		}
	}

	return &address, nil
}

func (g *GoogleGeolocationProvider) doGeocodeRequest(ctx context.Context, params url.Values) (*googleGeocodeResponse, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("google maps api key is required")
	}

	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode request returned status %d", resp.StatusCode)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("geocode request failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("geocode request failed: %s", payload.Status)
	}

	return &payload, nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

func componentLong(components []googleAddressComponent, primary string, fallback ...string) string {
	for _, comp := range components {
		if containsType(comp.Types, primary) {
			return comp.LongName
		}
	}
	for _, alt := range fallback {
		for _, comp := range components {
			if containsType(comp.Types, alt) {
				return comp.LongName
			}
		}
	}
	return ""
}

func componentShort(components []googleAddressComponent, target string) string {
	for _, comp := range components {
		if containsType(comp.Types, target) {
			return comp.ShortName
		}
	}
	return ""
}

func containsType(types []string, target string) bool {
	for _, t := range types {
		if t == target {
			return true
		}
	}
	return false
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress  string                   `json:"formatted_address"`
	AddressComponents []googleAddressComponent `json:"address_components"`
	Geometry          googleGeometry           `json:"geometry"`
}

type googleAddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
