package entities

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowEventType represents the type of workflow event
type WorkflowEventType string

const (
	WorkflowEventTypeRunCompleted WorkflowEventType = "run_completed"
	WorkflowEventTypeRunFailed    WorkflowEventType = "run_failed"
)

// WorkflowEvent is one completed workflow run recorded for analytics and
// published on the event bus. Zero-result rows feed relaxation-policy tuning.
type WorkflowEvent struct {
	ID                 string            `json:"id" db:"id"`
	RunID              string            `json:"run_id" db:"run_id"`
	EventType          WorkflowEventType `json:"event_type" db:"event_type"`
	Query              string            `json:"query" db:"query"`
	FormattedQuery     string            `json:"formatted_query" db:"formatted_query"`
	Location           string            `json:"location,omitempty" db:"location"`
	DiscoveredCount    int               `json:"discovered_count" db:"discovered_count"`
	VerifiedCount      int               `json:"verified_count" db:"verified_count"`
	RelaxationAttempts int               `json:"relaxation_attempts" db:"relaxation_attempts"`
	Success            bool              `json:"success" db:"success"`
	TerminalError      string            `json:"terminal_error,omitempty" db:"terminal_error"`
	LatencyMs          int               `json:"latency_ms" db:"latency_ms"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
}

// NewWorkflowEvent builds an analytics event from a finished run.
func NewWorkflowEvent(run WorkflowRun, formattedQuery string, latency time.Duration) *WorkflowEvent {
	eventType := WorkflowEventTypeRunCompleted
	if run.TerminalError != "" {
		eventType = WorkflowEventTypeRunFailed
	}

	return &WorkflowEvent{
		ID:                 uuid.New().String(),
		RunID:              run.ID,
		EventType:          eventType,
		Query:              run.RawInput,
		FormattedQuery:     formattedQuery,
		Location:           run.Intent.Location,
		DiscoveredCount:    len(run.Discovered),
		VerifiedCount:      len(run.Verified),
		RelaxationAttempts: run.RelaxationAttempts,
		Success:            run.Success(),
		TerminalError:      run.TerminalError,
		LatencyMs:          int(latency.Milliseconds()),
		CreatedAt:          time.Now(),
	}
}

// WorkflowChannel is the pub/sub channel carrying workflow events
const WorkflowChannel = "workflow:runs"
