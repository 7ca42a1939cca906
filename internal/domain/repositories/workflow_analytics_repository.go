package repositories

import (
	"context"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
)

// WorkflowAnalyticsRepository persists completed workflow runs
type WorkflowAnalyticsRepository interface {
	// LogEvent records one finished run
	LogEvent(ctx context.Context, event *entities.WorkflowEvent) error

	// GetZeroResultQueries returns recent runs that verified nothing, newest
	// first; used to tune the relaxation policy
	GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.WorkflowEvent, error)
}
