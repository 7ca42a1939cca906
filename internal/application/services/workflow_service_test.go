package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfinder-ai/backend/internal/domain/entities"
	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

type stubCalendarProvider struct {
	slots []entities.AvailabilitySlot
	err   error
}

func (p *stubCalendarProvider) Availability(ctx context.Context, participants []string) ([]entities.AvailabilitySlot, error) {
	return p.slots, p.err
}

func newTestWorkflow(provider providers.SearchProvider, calendar providers.CalendarProvider) *WorkflowService {
	formatter := NewQueryFormattingService()
	return NewWorkflowService(
		NewIntentService(workflowDefaults(), nil),
		calendar,
		NewDiscoveryService(provider, formatter, 10),
		NewAuditService(),
		NewRelaxationService(50),
		[]string{"user@example.com"},
		3,
	)
}

func TestRunWorkflow_SuccessOnFirstPass(t *testing.T) {
	provider := &stubSearchProvider{
		results: []providers.SearchResult{
			{Title: "Free Jazz Night", URL: "https://example.com/jazz", Description: "Live jazz, all welcome"},
			{Title: "Ticketed Gala", URL: "https://example.com/gala", Description: "Tickets required, $50"},
		},
	}
	svc := newTestWorkflow(provider, nil)

	result := svc.RunWorkflow(context.Background(), "find me jazz shows", nil)

	assert.True(t, result.Success)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Free Jazz Night", result.Events[0].Title)
	assert.Empty(t, result.TerminalError)
	assert.Len(t, provider.requests, 1)
}

func TestRunWorkflow_RelaxationBound(t *testing.T) {
	// Every pass verifies zero FREE events: the run must relax exactly
	// MaxRelaxationAttempts times and then stop.
	provider := &stubSearchProvider{
		results: []providers.SearchResult{
			{Title: "Paid Show", URL: "https://example.com/paid", Description: "Admission $20"},
		},
	}
	svc := newTestWorkflow(provider, nil)

	result := svc.RunWorkflow(context.Background(), "jazz", nil)

	assert.False(t, result.Success)
	assert.Empty(t, result.Events)
	assert.Empty(t, result.TerminalError)
	// Initial discovery plus one per relaxation entry.
	assert.Len(t, provider.requests, 4)
}

func TestRunWorkflow_RadiusWidensAndClamps(t *testing.T) {
	provider := &stubSearchProvider{}
	svc := newTestWorkflow(provider, nil)

	radius := 5
	svc.RunWorkflow(context.Background(), "jazz", &Preferences{RadiusMiles: &radius})

	// Radius is invisible in the built query, but each relaxed intent is a
	// replacement, so the request count tracks the bounded loop.
	assert.Len(t, provider.requests, 4)
}

func TestRunWorkflow_ProviderErrorIsTerminal(t *testing.T) {
	provider := &stubSearchProvider{err: errors.New("upstream timeout")}
	svc := newTestWorkflow(provider, nil)

	result := svc.RunWorkflow(context.Background(), "jazz", nil)

	assert.False(t, result.Success)
	assert.Empty(t, result.Events)
	assert.NotEmpty(t, result.TerminalError)
	// Provider failure never triggers relaxation.
	assert.Len(t, provider.requests, 1)
}

func TestRunWorkflow_CalendarIsAdvisory(t *testing.T) {
	provider := &stubSearchProvider{
		results: []providers.SearchResult{
			{Title: "Street Fair", URL: "https://example.com/fair", Description: "Outdoor fun"},
		},
	}
	calendar := &stubCalendarProvider{err: errors.New("nylas unavailable")}
	svc := newTestWorkflow(provider, calendar)

	result := svc.RunWorkflow(context.Background(), "fairs", nil)

	assert.True(t, result.Success)
}

func TestRunWorkflow_CancelledContext(t *testing.T) {
	provider := &stubSearchProvider{}
	svc := newTestWorkflow(provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := svc.RunWorkflow(ctx, "jazz", nil)

	assert.False(t, result.Success)
	assert.Equal(t, "run cancelled", result.TerminalError)
	assert.Empty(t, provider.requests)
}

func TestRunWorkflow_AlwaysReturnsResult(t *testing.T) {
	provider := &stubSearchProvider{}
	svc := newTestWorkflow(provider, nil)

	done := make(chan entities.RunResult, 1)
	go func() {
		done <- svc.RunWorkflow(context.Background(), "", nil)
	}()

	select {
	case result := <-done:
		assert.NotNil(t, result.Events)
	case <-time.After(5 * time.Second):
		t.Fatal("workflow did not return")
	}
}
