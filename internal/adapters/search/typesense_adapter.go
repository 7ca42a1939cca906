package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/repositories"
	tsclient "github.com/eventfinder-ai/backend/internal/infrastructure/clients/typesense"
)

const collectionName = "events"

// TypesenseAdapter indexes verified free events for suggestion lookups.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.EventIndexRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter.
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the events collection exists.
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "title", Type: "string"},
			{Name: "location", Type: "string", Facet: pointer.True()},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "url", Type: "string", Optional: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "is_drop_in", Type: "bool"},
			{Name: "indexed_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("indexed_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a verified event.
func (a *TypesenseAdapter) Index(ctx context.Context, event *entities.Event) error {
	document := map[string]interface{}{
		"id":          event.ID,
		"title":       event.Title,
		"location":    event.Location,
		"description": event.Description,
		"url":         event.URL,
		"category":    event.Category,
		"is_drop_in":  event.IsDropIn,
		"indexed_at":  time.Now().Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index event: %w", err)
	}

	return nil
}

// Suggest returns indexed events matching a text prefix.
func (a *TypesenseAdapter) Suggest(ctx context.Context, query string, limit int) ([]*entities.Event, error) {
	if limit <= 0 {
		limit = 10
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("title,description,location"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	events := []*entities.Event{}
	if result.Hits == nil {
		return events, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		event := &entities.Event{}
		if val, ok := doc["id"].(string); ok {
			event.ID = val
		}
		if val, ok := doc["title"].(string); ok {
			event.Title = val
		}
		if val, ok := doc["location"].(string); ok {
			event.Location = val
		}
		if val, ok := doc["description"].(string); ok {
			event.Description = val
		}
		if val, ok := doc["url"].(string); ok {
			event.URL = val
		}
		if val, ok := doc["category"].(string); ok {
			event.Category = val
		}
		if val, ok := doc["is_drop_in"].(bool); ok {
			event.IsDropIn = val
		}
		event.Price = "Free"

		events = append(events, event)
	}

	return events, nil
}
