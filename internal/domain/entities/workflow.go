package entities

import (
	"time"
)

// WorkflowStep identifies a step in the event discovery workflow
type WorkflowStep string

const (
	StepIngestion       WorkflowStep = "ingestion"
	StepConstraintCheck WorkflowStep = "constraint_check"
	StepDiscovery       WorkflowStep = "discovery"
	StepVerification    WorkflowStep = "verification"
	StepRelaxation      WorkflowStep = "relaxation"
)

// AvailabilitySlot is one free window reported by the calendar collaborator
type AvailabilitySlot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Emails []string  `json:"emails"`
}

// WorkflowRun is the orchestration state for one request. Each step returns a
// new snapshot rather than advancing the run in place, which keeps concurrent
// runs safe without locks and makes single transitions testable.
type WorkflowRun struct {
	ID                    string
	RawInput              string
	Step                  WorkflowStep
	Intent                ResolvedIntent
	CalendarGaps          []AvailabilitySlot
	Discovered            []Event
	Verified              []Event
	RelaxationAttempts    int
	MaxRelaxationAttempts int
	TerminalError         string
	StartedAt             time.Time
}

// Success reports whether the run produced at least one verified event.
func (r WorkflowRun) Success() bool {
	return r.TerminalError == "" && len(r.Verified) > 0
}

// AtStep returns a copy of the run positioned at the given step.
func (r WorkflowRun) AtStep(step WorkflowStep) WorkflowRun {
	next := r
	next.Step = step
	return next
}

// WithIntent returns a copy of the run carrying a replacement intent.
func (r WorkflowRun) WithIntent(intent ResolvedIntent) WorkflowRun {
	next := r
	next.Intent = intent
	return next
}

// WithTerminalError returns a copy of the run marked as terminally failed.
func (r WorkflowRun) WithTerminalError(msg string) WorkflowRun {
	next := r
	next.TerminalError = msg
	return next
}

// RunResult is the structured outcome returned to the caller. The workflow
// contract is "always a result, never an escaping fault".
type RunResult struct {
	Success       bool    `json:"success"`
	Events        []Event `json:"events"`
	TerminalError string  `json:"terminal_error,omitempty"`
}
