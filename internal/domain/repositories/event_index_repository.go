package repositories

import (
	"context"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
)

// EventIndexRepository is the searchable index of verified events
type EventIndexRepository interface {
	// InitSchema creates the collection if it does not exist
	InitSchema(ctx context.Context) error

	// Index upserts a verified event
	Index(ctx context.Context, event *entities.Event) error

	// Suggest returns indexed events matching a text prefix
	Suggest(ctx context.Context, query string, limit int) ([]*entities.Event, error)
}
