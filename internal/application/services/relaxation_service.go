package services

import (
	"github.com/eventfinder-ai/backend/internal/domain/entities"
)

// FailureMode categorizes the ways a workflow run can come up short
type FailureMode string

const (
	FailureZeroResults      FailureMode = "zero_results"
	FailureScheduleConflict FailureMode = "schedule_conflict"
	FailureHiddenCosts      FailureMode = "hidden_costs"
	FailureAPITimeout       FailureMode = "api_timeout"
)

// RelaxationStrategy is one corrective action for a failure mode
type RelaxationStrategy struct {
	FailureMode FailureMode
	Action      string
	Description string
}

// Static failover pairs for timed-out providers. Callers must treat
// "unknown" as "no failover available", not as a valid provider.
var failoverProviders = map[string]string{
	"tavily":      "exa",
	"exa":         "tavily",
	"google_maps": "open_routes",
	"nylas":       "caldav",
}

// RelaxationService maps failure categories to corrective parameter
// transforms. Table-driven and side-effect-free so policies can be audited
// and tested independently of the orchestrator's control flow.
type RelaxationService struct {
	strategies     map[FailureMode][]RelaxationStrategy
	maxRadiusMiles int
}

// NewRelaxationService creates a relaxation service with the given radius
// ceiling.
func NewRelaxationService(maxRadiusMiles int) *RelaxationService {
	if maxRadiusMiles <= 0 {
		maxRadiusMiles = 50
	}
	return &RelaxationService{
		maxRadiusMiles: maxRadiusMiles,
		strategies: map[FailureMode][]RelaxationStrategy{
			FailureZeroResults: {
				{FailureZeroResults, "expand_radius", "Expand search radius (e.g., 5mi -> 15mi)"},
				{FailureZeroResults, "broaden_category", "Broaden category (e.g., 'Jazz' -> 'Live Music')"},
			},
			FailureScheduleConflict: {
				{FailureScheduleConflict, "find_dropins", "Look for 'Drop-in' events where being 30 minutes late is acceptable"},
			},
			FailureAPITimeout: {
				{FailureAPITimeout, "failover_search", "Failover to secondary search engine"},
			},
		},
	}
}

// RelaxForZeroResults returns a new intent with the search radius tripled,
// clamped to the ceiling. Repeated application converges to the ceiling and
// stays there.
func (s *RelaxationService) RelaxForZeroResults(intent entities.ResolvedIntent) entities.ResolvedIntent {
	radius := intent.RadiusMiles * 3
	if radius > s.maxRadiusMiles {
		radius = s.maxRadiusMiles
	}
	return intent.WithRadius(radius)
}

// IsAcceptableDespiteConflict reports whether a schedule conflict is
// waivable: only drop-in events tolerate a late arrival.
func (s *RelaxationService) IsAcceptableDespiteConflict(event entities.Event, calendarEvents []entities.AvailabilitySlot) bool {
	return event.IsDropIn
}

// FailoverProvider returns the secondary provider for a failed one, or
// "unknown" when no mapping exists.
func (s *RelaxationService) FailoverProvider(failedProvider string) string {
	if failover, ok := failoverProviders[failedProvider]; ok {
		return failover
	}
	return "unknown"
}

// StrategiesFor returns the available relaxation strategies for a failure
// mode.
func (s *RelaxationService) StrategiesFor(mode FailureMode) []RelaxationStrategy {
	return s.strategies[mode]
}
