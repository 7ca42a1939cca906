package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eventfinder-ai/backend/internal/application/services"
)

// VerifyHandler exposes the free/paid classifier as a standalone endpoint.
type VerifyHandler struct {
	auditor *services.AuditService
}

// NewVerifyHandler creates a new verify handler.
func NewVerifyHandler(auditor *services.AuditService) *VerifyHandler {
	return &VerifyHandler{auditor: auditor}
}

type verifyRequest struct {
	Description string `json:"description"`
}

// VerifyEvent handles POST /api/verify
func (h *VerifyHandler) VerifyEvent(w http.ResponseWriter, r *http.Request) {
	var payload verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	classification := h.auditor.ClassifyWithWarnings(payload.Description)

	warnings := classification.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   string(classification.Verdict),
		"warnings": warnings,
	})
}
