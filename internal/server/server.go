// Package server exposes the traceviz backend as an HTTP/JSON API: the graph
// visualization payload, search, work item patches, and relationship
// mutations.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alfredjeanlab/traceviz/internal/events"
	"github.com/alfredjeanlab/traceviz/internal/store"
)

// Server handles the traceviz HTTP API backed by the given store. Mutations
// are published to the event bus best-effort; publish failures are logged and
// never block the response.
type Server struct {
	store     store.Store
	publisher events.Publisher
	logger    *slog.Logger
}

// New returns a Server backed by the given store and publisher.
func New(s store.Store, p events.Publisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: s, publisher: p, logger: logger}
}

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/visualization", s.handleGetVisualization)
	mux.HandleFunc("GET /v1/search", s.handleSearch)
	mux.HandleFunc("GET /v1/items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /v1/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("POST /v1/relationships", s.handleCreateRelationship)
	mux.HandleFunc("DELETE /v1/relationships/{id}", s.handleDeleteRelationship)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// publish emits an event to the bus. Best-effort: failures are logged.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
