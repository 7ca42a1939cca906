package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/eventfinder-ai/backend/internal/domain/repositories"
)

// SuggestHandler serves typeahead lookups against the verified-event index.
type SuggestHandler struct {
	index repositories.EventIndexRepository
}

// NewSuggestHandler creates a new suggest handler.
func NewSuggestHandler(index repositories.EventIndexRepository) *SuggestHandler {
	return &SuggestHandler{index: index}
}

// SuggestEvents handles GET /api/events/suggest
func (h *SuggestHandler) SuggestEvents(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event index is not configured")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	events, err := h.index.Suggest(r.Context(), query, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to suggest events")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}
