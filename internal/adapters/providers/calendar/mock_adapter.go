package calendar

import (
	"context"
	"time"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

// MockAdapter returns deterministic evening gaps for local development.
type MockAdapter struct {
	slotDuration time.Duration
	maxSlots     int
	now          func() time.Time
}

// NewMockAdapter creates a mock calendar provider.
func NewMockAdapter() providers.CalendarProvider {
	return &MockAdapter{
		slotDuration: time.Hour,
		maxSlots:     3,
		now:          time.Now,
	}
}

// Availability returns one evening slot per upcoming day.
func (m *MockAdapter) Availability(ctx context.Context, participants []string) ([]entities.AvailabilitySlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := m.now().UTC()
	slots := make([]entities.AvailabilitySlot, 0, m.maxSlots)
	for i := 0; i < m.maxSlots; i++ {
		day := now.AddDate(0, 0, i+1)
		start := time.Date(day.Year(), day.Month(), day.Day(), 18, 0, 0, 0, time.UTC)
		slots = append(slots, entities.AvailabilitySlot{
			Start:  start,
			End:    start.Add(m.slotDuration),
			Emails: participants,
		})
	}

	return slots, nil
}
