package providers

import (
	"context"
)

// Routing profiles understood by the travel-time provider
const (
	TravelModeDriving = "driving-car"
	TravelModeWalking = "foot-walking"
	TravelModeCycling = "cycling-regular"
)

// RoutesProvider defines the interface for travel-time services used when
// enforcing transit budgets
type RoutesProvider interface {
	// TravelTimeMinutes returns the travel time between two points
	TravelTimeMinutes(ctx context.Context, from, to Coordinates, mode string) (int, error)
}
