package providers

import (
	"context"
)

// GeolocationProvider defines the interface for reverse-geocoding services
type GeolocationProvider interface {
	// ReverseGeocode converts coordinates to an address; best-effort, both
	// label and country may come back empty
	ReverseGeocode(ctx context.Context, lat, lon float64) (*GeocodedAddress, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// GeocodedAddress represents a reverse-geocoded location
type GeocodedAddress struct {
	FormattedAddress string
	City             string
	State            string
	Country          string
	CountryCode      string
	Coordinates      Coordinates
}
