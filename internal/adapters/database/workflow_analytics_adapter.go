package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/repositories"
	"github.com/eventfinder-ai/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/eventfinder-ai/backend/pkg/errors"
)

// WorkflowAnalyticsAdapter persists completed workflow runs in Postgres.
type WorkflowAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewWorkflowAnalyticsAdapter creates a new workflow analytics adapter.
func NewWorkflowAnalyticsAdapter(client *postgres.Client) repositories.WorkflowAnalyticsRepository {
	return &WorkflowAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent records one finished run.
func (a *WorkflowAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.WorkflowEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":                  event.ID,
		"run_id":              event.RunID,
		"event_type":          string(event.EventType),
		"query":               event.Query,
		"formatted_query":     event.FormattedQuery,
		"location":            event.Location,
		"discovered_count":    event.DiscoveredCount,
		"verified_count":      event.VerifiedCount,
		"relaxation_attempts": event.RelaxationAttempts,
		"success":             event.Success,
		"terminal_error":      event.TerminalError,
		"latency_ms":          event.LatencyMs,
		"created_at":          event.CreatedAt,
	}

	query, args, err := a.db.Insert("workflow_analytics").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build workflow event insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log workflow event", err)
	}

	return nil
}

// GetZeroResultQueries returns recent runs that verified nothing, newest first.
func (a *WorkflowAnalyticsAdapter) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.WorkflowEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	query, args, err := a.db.From("workflow_analytics").
		Select(
			"id", "run_id", "event_type", "query", "formatted_query", "location",
			"discovered_count", "verified_count", "relaxation_attempts",
			"success", "terminal_error", "latency_ms", "created_at",
		).
		Where(goqu.C("verified_count").Eq(0)).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build zero result query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get zero result queries", err)
	}
	defer rows.Close()

	var events []*entities.WorkflowEvent
	for rows.Next() {
		e := &entities.WorkflowEvent{}
		err := rows.Scan(
			&e.ID,
			&e.RunID,
			&e.EventType,
			&e.Query,
			&e.FormattedQuery,
			&e.Location,
			&e.DiscoveredCount,
			&e.VerifiedCount,
			&e.RelaxationAttempts,
			&e.Success,
			&e.TerminalError,
			&e.LatencyMs,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan workflow event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read workflow events", err)
	}

	return events, nil
}
