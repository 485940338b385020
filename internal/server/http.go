package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alfredjeanlab/traceviz/internal/events"
	"github.com/alfredjeanlab/traceviz/internal/idgen"
	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/store"
)

// handleGetVisualization handles GET /v1/visualization.
// Query params: root_id (optional), depth (optional, hops from root_id),
// limit (optional, node cap for whole-graph queries).
func (s *Server) handleGetVisualization(w http.ResponseWriter, r *http.Request) {
	req := model.VisualizationRequest{
		RootID: r.URL.Query().Get("root_id"),
	}
	var err error
	if req.Depth, err = intParam(r, "depth"); err != nil {
		writeError(w, http.StatusBadRequest, "depth must be an integer")
		return
	}
	if req.Limit, err = intParam(r, "limit"); err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	resp, err := s.buildVisualization(r.Context(), req)
	if err != nil {
		s.logger.Error("failed to build visualization", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build visualization")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearch handles GET /v1/search?q=. The query matches id and title
// case-insensitively as a substring. An empty query returns no results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := []model.SearchResult{}
	if query != "" {
		items, err := s.store.SearchWorkItems(r.Context(), query, defaultLimit)
		if err != nil {
			s.logger.Error("search failed", "query", query, "error", err)
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		for _, item := range items {
			results = append(results, model.SearchResult{
				ID:         item.ID,
				Type:       string(item.Type),
				Label:      item.Title,
				Properties: item.Properties,
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleGetItem handles GET /v1/items/{id}.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, err := s.store.GetWorkItem(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "work item not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to get work item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get work item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleUpdateItem handles PATCH /v1/items/{id}. The body is a partial
// update; omitted fields are left untouched.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.WorkItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid status: "+patch.Status.String())
		return
	}

	item, err := s.store.UpdateWorkItem(r.Context(), id, patch)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "work item not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to update work item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update work item")
		return
	}

	s.publish(r.Context(), events.TopicItemUpdated, events.ItemUpdated{
		Item:    item,
		Changes: patchChanges(patch),
	})
	writeJSON(w, http.StatusOK, item)
}

type createRelationshipRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
	Type   string `json:"type"`
	Label  string `json:"label,omitempty"`
}

// handleCreateRelationship handles POST /v1/relationships.
func (s *Server) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req createRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.FromID == "" || req.ToID == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "from_id, to_id and type are required")
		return
	}
	if req.FromID == req.ToID {
		writeError(w, http.StatusBadRequest, "relationship endpoints must differ")
		return
	}

	id, err := idgen.NewRelationshipID()
	if err != nil {
		s.logger.Error("failed to generate relationship id", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create relationship")
		return
	}
	rel := &model.Relationship{
		ID:        id,
		FromID:    req.FromID,
		ToID:      req.ToID,
		Type:      model.RelationshipType(req.Type),
		Label:     req.Label,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateRelationship(r.Context(), rel); err != nil {
		s.logger.Error("failed to create relationship", "from", req.FromID, "to", req.ToID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create relationship")
		return
	}

	s.publish(r.Context(), events.TopicRelationshipCreated, events.RelationshipCreated{Relationship: rel})
	writeJSON(w, http.StatusCreated, rel)
}

// handleDeleteRelationship handles DELETE /v1/relationships/{id}.
func (s *Server) handleDeleteRelationship(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.store.DeleteRelationship(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "relationship not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to delete relationship", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete relationship")
		return
	}

	s.publish(r.Context(), events.TopicRelationshipDeleted, events.RelationshipDeleted{RelationshipID: id})
	w.WriteHeader(http.StatusNoContent)
}

// intParam parses an optional integer query parameter, returning zero when
// the parameter is absent.
func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// patchChanges lists the fields a patch actually sets, for the event payload.
func patchChanges(patch model.WorkItemPatch) map[string]any {
	changes := make(map[string]any)
	if patch.Title != nil {
		changes["title"] = *patch.Title
	}
	if patch.Description != nil {
		changes["description"] = *patch.Description
	}
	if patch.Status != nil {
		changes["status"] = patch.Status.String()
	}
	if patch.Priority != nil {
		changes["priority"] = *patch.Priority
	}
	return changes
}
