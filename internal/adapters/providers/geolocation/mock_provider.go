package geolocation

import (
	"context"
	"fmt"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

// MockGeolocationProvider returns canned city labels for known coordinate
// ranges. Used for local development and tests.
type MockGeolocationProvider struct{}

// NewMockGeolocationProvider creates a new mock geolocation provider.
func NewMockGeolocationProvider() providers.GeolocationProvider {
	return &MockGeolocationProvider{}
}

type mockCity struct {
	lat, lon    float64
	city, state string
}

var mockCities = []mockCity{
	{40.7128, -74.0060, "New York", "NY"},
	{34.0522, -118.2437, "Los Angeles", "CA"},
	{41.8781, -87.6298, "Chicago", "IL"},
	{29.7604, -95.3698, "Houston", "TX"},
	{37.7749, -122.4194, "San Francisco", "CA"},
}

// ReverseGeocode matches coordinates to the nearest known city within about
// one degree, falling back to San Francisco.
func (m *MockGeolocationProvider) ReverseGeocode(ctx context.Context, lat, lon float64) (*providers.GeocodedAddress, error) {
	city := mockCities[len(mockCities)-1]
	for _, c := range mockCities {
		if abs(c.lat-lat) < 1 && abs(c.lon-lon) < 1 {
			city = c
			break
		}
	}

	return &providers.GeocodedAddress{
		FormattedAddress: fmt.Sprintf("%s, %s, USA", city.city, city.state),
		City:             city.city,
		State:            city.state,
		Country:          "United States",
		CountryCode:      "US",
		Coordinates: providers.Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
