package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
	"github.com/eventfinder-ai/backend/internal/domain/repositories"
)

var (
	workflowMetricsOnce sync.Once
	runCounter          metric.Int64Counter
	relaxationCounter   metric.Int64Counter
)

// WorkflowService orchestrates the five-step event discovery workflow:
// ingestion, constraint check, discovery, verification, and bounded
// relaxation. One run per request; runs share no mutable state.
type WorkflowService struct {
	intents    *IntentService
	calendar   providers.CalendarProvider
	discovery  *DiscoveryService
	auditor    *AuditService
	relaxation *RelaxationService

	analytics *WorkflowAnalyticsService
	index     repositories.EventIndexRepository
	bus       providers.EventBus

	participants          []string
	maxRelaxationAttempts int
}

// NewWorkflowService creates the orchestrator. Calendar is optional; without
// it the constraint check records no gaps.
func NewWorkflowService(
	intents *IntentService,
	calendar providers.CalendarProvider,
	discovery *DiscoveryService,
	auditor *AuditService,
	relaxation *RelaxationService,
	participants []string,
	maxRelaxationAttempts int,
) *WorkflowService {
	if maxRelaxationAttempts < 0 {
		maxRelaxationAttempts = 0
	}
	return &WorkflowService{
		intents:               intents,
		calendar:              calendar,
		discovery:             discovery,
		auditor:               auditor,
		relaxation:            relaxation,
		participants:          participants,
		maxRelaxationAttempts: maxRelaxationAttempts,
	}
}

// SetAnalytics enables fire-and-forget run logging.
func (s *WorkflowService) SetAnalytics(analytics *WorkflowAnalyticsService) {
	s.analytics = analytics
}

// SetEventIndex enables indexing of verified events.
func (s *WorkflowService) SetEventIndex(index repositories.EventIndexRepository) {
	s.index = index
}

// SetEventBus enables publishing of completed runs.
func (s *WorkflowService) SetEventBus(bus providers.EventBus) {
	s.bus = bus
}

// RunWorkflow executes the complete workflow for one request. It always
// returns a structured result; internal errors become the run's terminal
// error instead of escaping to the caller.
func (s *WorkflowService) RunWorkflow(ctx context.Context, rawInput string, prefs *Preferences) entities.RunResult {
	started := time.Now()

	run := entities.WorkflowRun{
		ID:                    uuid.New().String(),
		RawInput:              rawInput,
		Step:                  entities.StepIngestion,
		MaxRelaxationAttempts: s.maxRelaxationAttempts,
		StartedAt:             started,
	}

	var formattedQuery string

	func() {
		defer func() {
			if r := recover(); r != nil {
				run = run.WithTerminalError(fmt.Sprintf("workflow panic: %v", r))
			}
		}()
		run, formattedQuery = s.execute(ctx, run, prefs)
	}()

	s.finish(run, formattedQuery, time.Since(started))

	events := run.Verified
	if events == nil {
		events = []entities.Event{}
	}
	return entities.RunResult{
		Success:       run.Success(),
		Events:        events,
		TerminalError: run.TerminalError,
	}
}

func (s *WorkflowService) execute(ctx context.Context, run entities.WorkflowRun, prefs *Preferences) (entities.WorkflowRun, string) {
	// Step 1: ingestion. Structurally infallible; ambiguity becomes defaults.
	run = s.stepIngestion(ctx, run, prefs)

	if cancelled(ctx) {
		return run.WithTerminalError("run cancelled"), ""
	}

	// Step 2: constraint check, advisory only.
	run = s.stepConstraintCheck(ctx, run)

	if cancelled(ctx) {
		return run.WithTerminalError("run cancelled"), ""
	}

	// Step 3: discovery. Provider errors are terminal; relaxation reacts to
	// zero results, never to provider failure.
	run, formattedQuery, err := s.stepDiscovery(ctx, run)
	if err != nil {
		return run.WithTerminalError(err.Error()), formattedQuery
	}

	if cancelled(ctx) {
		return run.WithTerminalError("run cancelled"), formattedQuery
	}

	// Step 4: verification.
	run = s.stepVerification(run)

	// Step 5: bounded relaxation loop. The counter increments once per
	// relaxation entry, never per retry sub-step.
	for len(run.Verified) == 0 && run.RelaxationAttempts < run.MaxRelaxationAttempts {
		if cancelled(ctx) {
			return run.WithTerminalError("run cancelled"), formattedQuery
		}

		run = s.stepRelaxation(run)

		run, formattedQuery, err = s.stepDiscovery(ctx, run)
		if err != nil {
			return run.WithTerminalError(err.Error()), formattedQuery
		}
		run = s.stepVerification(run)
	}

	return run, formattedQuery
}

func (s *WorkflowService) stepIngestion(ctx context.Context, run entities.WorkflowRun, prefs *Preferences) entities.WorkflowRun {
	run = run.AtStep(entities.StepIngestion)
	return run.WithIntent(s.intents.Resolve(ctx, run.RawInput, prefs))
}

func (s *WorkflowService) stepConstraintCheck(ctx context.Context, run entities.WorkflowRun) entities.WorkflowRun {
	run = run.AtStep(entities.StepConstraintCheck)

	if s.calendar == nil {
		return run
	}

	gaps, err := s.calendar.Availability(ctx, s.participants)
	if err != nil {
		// Recorded, not enforced: calendar failures never block discovery.
		log.Warn().Err(err).Str("run_id", run.ID).Msg("calendar availability lookup failed")
		return run
	}

	next := run
	next.CalendarGaps = gaps
	return next
}

func (s *WorkflowService) stepDiscovery(ctx context.Context, run entities.WorkflowRun) (entities.WorkflowRun, string, error) {
	run = run.AtStep(entities.StepDiscovery)

	result, err := s.discovery.Discover(ctx, run.Intent)
	if err != nil {
		return run, "", err
	}

	next := run
	next.Discovered = result.Events
	return next, result.FormattedQuery, nil
}

func (s *WorkflowService) stepVerification(run entities.WorkflowRun) entities.WorkflowRun {
	run = run.AtStep(entities.StepVerification)

	verified := make([]entities.Event, 0, len(run.Discovered))
	for _, event := range run.Discovered {
		// Strict filter: CONDITIONAL and UNKNOWN are dropped, not surfaced
		// as "maybe".
		if s.auditor.Classify(event.Description) == entities.VerdictFree {
			verified = append(verified, event)
		}
	}

	next := run
	next.Verified = verified
	return next
}

func (s *WorkflowService) stepRelaxation(run entities.WorkflowRun) entities.WorkflowRun {
	run = run.AtStep(entities.StepRelaxation)

	next := run
	next.RelaxationAttempts = run.RelaxationAttempts + 1
	next.Intent = s.relaxation.RelaxForZeroResults(run.Intent)

	log.Info().
		Str("run_id", run.ID).
		Int("attempt", next.RelaxationAttempts).
		Int("radius_miles", next.Intent.RadiusMiles).
		Msg("relaxing search constraints")

	recordRelaxation()
	return next
}

func (s *WorkflowService) finish(run entities.WorkflowRun, formattedQuery string, latency time.Duration) {
	recordRun(run.Success())

	event := entities.NewWorkflowEvent(run, formattedQuery, latency)

	if s.analytics != nil {
		s.analytics.TrackRun(event)
	}

	if s.bus != nil {
		if err := s.bus.Publish(context.Background(), entities.WorkflowChannel, event); err != nil {
			log.Warn().Err(err).Str("run_id", run.ID).Msg("failed to publish workflow event")
		}
	}

	if s.index != nil && run.Success() {
		go s.indexVerified(run)
	}
}

func (s *WorkflowService) indexVerified(run entities.WorkflowRun) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := range run.Verified {
		if err := s.index.Index(ctx, &run.Verified[i]); err != nil {
			log.Warn().Err(err).Str("event_id", run.Verified[i].ID).Msg("failed to index verified event")
			return
		}
	}
}

func cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

func initWorkflowMetrics() {
	workflowMetricsOnce.Do(func() {
		meter := otel.Meter("github.com/eventfinder-ai/backend")
		if counter, err := meter.Int64Counter(
			"workflow.run.count",
			metric.WithDescription("Number of completed workflow runs"),
		); err == nil {
			runCounter = counter
		}
		if counter, err := meter.Int64Counter(
			"workflow.relaxation.count",
			metric.WithDescription("Number of relaxation entries across runs"),
		); err == nil {
			relaxationCounter = counter
		}
	})
}

func recordRun(success bool) {
	initWorkflowMetrics()
	if runCounter != nil {
		runCounter.Add(context.Background(), 1, metric.WithAttributes(attribute.Bool("success", success)))
	}
}

func recordRelaxation() {
	initWorkflowMetrics()
	if relaxationCounter != nil {
		relaxationCounter.Add(context.Background(), 1)
	}
}
