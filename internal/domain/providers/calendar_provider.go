package providers

import (
	"context"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
)

// CalendarProvider defines the interface for calendar availability services
// (Nylas, CalDAV, etc.)
type CalendarProvider interface {
	// Availability returns free windows for the given participants over the
	// coming week
	Availability(ctx context.Context, participants []string) ([]entities.AvailabilitySlot, error)
}
