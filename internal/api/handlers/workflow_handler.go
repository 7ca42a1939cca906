package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventfinder-ai/backend/internal/application/services"
)

// WorkflowHandler exposes the event discovery workflow over HTTP.
type WorkflowHandler struct {
	workflows *services.WorkflowService
	analytics *services.WorkflowAnalyticsService
}

// NewWorkflowHandler creates a new workflow handler. Analytics is optional.
func NewWorkflowHandler(workflows *services.WorkflowService, analytics *services.WorkflowAnalyticsService) *WorkflowHandler {
	return &WorkflowHandler{
		workflows: workflows,
		analytics: analytics,
	}
}

type searchRequest struct {
	Query       string                `json:"query"`
	Preferences *services.Preferences `json:"preferences,omitempty"`
}

// SearchEvents handles POST /api/search
func (h *WorkflowHandler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	var payload searchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(payload.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "query is required")
		return
	}

	result := h.workflows.RunWorkflow(r.Context(), payload.Query, payload.Preferences)

	message := "Search completed successfully"
	if !result.Success {
		message = "No events found"
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": result.Success,
		"events":  result.Events,
		"message": message,
	})
}

// GetZeroResultQueries handles GET /api/analytics/zero-result-queries
func (h *WorkflowHandler) GetZeroResultQueries(w http.ResponseWriter, r *http.Request) {
	if h.analytics == nil {
		respondWithError(w, http.StatusServiceUnavailable, "analytics is not configured")
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.analytics.GetZeroResultQueries(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to get zero result queries")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"queries": events,
		"count":   len(events),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
