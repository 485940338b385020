package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	// captured from the request
	method      string
	path        string
	query       string
	body        string
	contentType string
	authHeader  string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.authHeader = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

// newTestClient creates an HTTPClient pointed at a test server with the given handler.
func newTestClient(t *testing.T, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "")
}

func TestHTTPClient_GetVisualization(t *testing.T) {
	h := &testHandler{
		responseBody: `{
			"nodes": [
				{"id": "wi-1", "type": "requirement", "label": "Login flow", "position": {"x": 10, "y": 20}},
				{"id": "wi-2", "type": "task", "label": "Build form"}
			],
			"edges": [
				{"id": "rel-1", "source": "wi-2", "target": "wi-1", "type": "IMPLEMENTS"}
			]
		}`,
	}
	c := newTestClient(t, h)

	resp, err := c.GetVisualization(context.Background(), model.VisualizationRequest{RootID: "wi-1", Depth: 2, Limit: 500})
	if err != nil {
		t.Fatalf("GetVisualization() error: %v", err)
	}
	if h.method != http.MethodGet || h.path != "/v1/visualization" {
		t.Errorf("request was %s %s", h.method, h.path)
	}
	for _, want := range []string{"root_id=wi-1", "depth=2", "limit=500"} {
		if !strings.Contains(h.query, want) {
			t.Errorf("query %q missing %q", h.query, want)
		}
	}
	if len(resp.Nodes) != 2 || len(resp.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(resp.Nodes), len(resp.Edges))
	}
	if resp.Nodes[0].Position == nil || resp.Nodes[0].Position.X != 10 {
		t.Errorf("node position not decoded: %+v", resp.Nodes[0].Position)
	}
	if resp.Nodes[1].Position != nil {
		t.Errorf("absent position should decode to nil, got %+v", resp.Nodes[1].Position)
	}
}

func TestHTTPClient_GetVisualization_OmitsEmptyParams(t *testing.T) {
	h := &testHandler{responseBody: `{"nodes": [], "edges": []}`}
	c := newTestClient(t, h)

	if _, err := c.GetVisualization(context.Background(), model.VisualizationRequest{}); err != nil {
		t.Fatalf("GetVisualization() error: %v", err)
	}
	if h.query != "" {
		t.Errorf("expected no query params, got %q", h.query)
	}
}

func TestHTTPClient_Search(t *testing.T) {
	h := &testHandler{
		responseBody: `{"results": [{"id": "wi-1", "type": "risk", "label": ""}]}`,
	}
	c := newTestClient(t, h)

	results, err := c.Search(context.Background(), "data loss")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if h.path != "/v1/search" || !strings.Contains(h.query, "q=data+loss") {
		t.Errorf("request was %s?%s", h.path, h.query)
	}
	if len(results) != 1 || results[0].ID != "wi-1" || results[0].Label != "" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestHTTPClient_GetWorkItem(t *testing.T) {
	h := &testHandler{
		responseBody: `{"id": "wi-1", "type": "requirement", "title": "Login flow", "status": "open", "priority": 1}`,
	}
	c := newTestClient(t, h)

	item, err := c.GetWorkItem(context.Background(), "wi-1")
	if err != nil {
		t.Fatalf("GetWorkItem() error: %v", err)
	}
	if h.method != http.MethodGet || h.path != "/v1/items/wi-1" {
		t.Errorf("request was %s %s", h.method, h.path)
	}
	if item.ID != "wi-1" || item.Type != model.TypeRequirement || item.Status != model.StatusOpen {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestHTTPClient_CreateRelationship(t *testing.T) {
	h := &testHandler{statusCode: http.StatusCreated, responseBody: `{}`}
	c := newTestClient(t, h)

	if err := c.CreateRelationship(context.Background(), "wi-1", "wi-2", model.RelDependsOn); err != nil {
		t.Fatalf("CreateRelationship() error: %v", err)
	}
	if h.method != http.MethodPost || h.path != "/v1/relationships" {
		t.Errorf("request was %s %s", h.method, h.path)
	}
	for _, want := range []string{`"from_id":"wi-1"`, `"to_id":"wi-2"`, `"type":"DEPENDS_ON"`} {
		if !strings.Contains(h.body, want) {
			t.Errorf("body %q missing %q", h.body, want)
		}
	}
}

func TestHTTPClient_DeleteRelationship(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	c := newTestClient(t, h)

	if err := c.DeleteRelationship(context.Background(), "rel-9"); err != nil {
		t.Fatalf("DeleteRelationship() error: %v", err)
	}
	if h.method != http.MethodDelete || h.path != "/v1/relationships/rel-9" {
		t.Errorf("request was %s %s", h.method, h.path)
	}
}

func TestHTTPClient_UpdateWorkItem_OmitsNilFields(t *testing.T) {
	h := &testHandler{responseBody: `{}`}
	c := newTestClient(t, h)

	title := "New title"
	if err := c.UpdateWorkItem(context.Background(), "wi-1", model.WorkItemPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateWorkItem() error: %v", err)
	}
	if h.method != http.MethodPatch || h.path != "/v1/items/wi-1" {
		t.Errorf("request was %s %s", h.method, h.path)
	}
	if !strings.Contains(h.body, `"title":"New title"`) {
		t.Errorf("body %q missing title", h.body)
	}
	if strings.Contains(h.body, "status") || strings.Contains(h.body, "priority") {
		t.Errorf("nil fields should be omitted from the patch body: %q", h.body)
	}
}

func TestHTTPClient_ErrorResponse(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNotFound, responseBody: `{"error": "work item not found"}`}
	c := newTestClient(t, h)

	_, err := c.GetVisualization(context.Background(), model.VisualizationRequest{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "work item not found" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestHTTPClient_AuthToken(t *testing.T) {
	h := &testHandler{responseBody: `{"status": "ok"}`}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewHTTPClient(srv.URL, "sekrit")

	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if h.authHeader != "Bearer sekrit" {
		t.Errorf("Authorization header = %q", h.authHeader)
	}
}
