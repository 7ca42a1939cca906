package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/repositories"
)

// WorkflowAnalyticsService records completed runs without blocking the
// request path.
type WorkflowAnalyticsService struct {
	repo repositories.WorkflowAnalyticsRepository
}

// NewWorkflowAnalyticsService creates a new workflow analytics service.
func NewWorkflowAnalyticsService(repo repositories.WorkflowAnalyticsRepository) *WorkflowAnalyticsService {
	return &WorkflowAnalyticsService{repo: repo}
}

// TrackRun logs the event in the background. A fresh context is used since
// the request context may already be cancelled.
func (s *WorkflowAnalyticsService) TrackRun(event *entities.WorkflowEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Warn().Err(err).Str("run_id", event.RunID).Msg("failed to log workflow event")
		}
	}()
}

// GetZeroResultQueries returns recent runs that verified no events.
func (s *WorkflowAnalyticsService) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.WorkflowEvent, error) {
	return s.repo.GetZeroResultQueries(ctx, limit)
}
