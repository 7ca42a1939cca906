package routes

import (
	"net/http"

	"github.com/eventfinder-ai/backend/internal/api/handlers"
	"github.com/eventfinder-ai/backend/internal/api/middleware"
	"github.com/eventfinder-ai/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	workflowHandler *handlers.WorkflowHandler
	verifyHandler   *handlers.VerifyHandler
	suggestHandler  *handlers.SuggestHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	workflowHandler *handlers.WorkflowHandler,
	verifyHandler *handlers.VerifyHandler,
	suggestHandler *handlers.SuggestHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		workflowHandler: workflowHandler,
		verifyHandler:   verifyHandler,
		suggestHandler:  suggestHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			return
		}
	})

	// Workflow endpoints
	r.mux.HandleFunc("POST /api/search", r.workflowHandler.SearchEvents)
	r.mux.HandleFunc("POST /api/verify", r.verifyHandler.VerifyEvent)

	// Verified-event index
	if r.suggestHandler != nil {
		r.mux.HandleFunc("GET /api/events/suggest", r.suggestHandler.SuggestEvents)
	}

	// Analytics endpoints
	r.mux.HandleFunc("GET /api/analytics/zero-result-queries", r.workflowHandler.GetZeroResultQueries)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so error responses also carry CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
