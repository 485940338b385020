package graphstore

import (
	"context"
	"sync"

	"github.com/alfredjeanlab/traceviz/internal/client"
	"github.com/alfredjeanlab/traceviz/internal/model"
)

// mockService is an in-memory client.Service for store tests.
type mockService struct {
	mu sync.Mutex

	resp      model.VisualizationResponse
	visErr    error
	updateErr error
	createErr error
	deleteErr error

	visCalls    []model.VisualizationRequest
	updateCalls []string
	createCalls [][3]string
	deleteCalls []string

	// visHook, when set, replaces the canned response for one lookup. It is
	// called outside the mock's lock so tests can block inside it.
	visHook func(req model.VisualizationRequest) (*model.VisualizationResponse, error)
}

var _ client.Service = (*mockService)(nil)

func (m *mockService) GetVisualization(_ context.Context, req model.VisualizationRequest) (*model.VisualizationResponse, error) {
	m.mu.Lock()
	m.visCalls = append(m.visCalls, req)
	hook := m.visHook
	resp := m.resp
	err := m.visErr
	m.mu.Unlock()

	if hook != nil {
		return hook(req)
	}
	if err != nil {
		return nil, err
	}
	out := resp
	return &out, nil
}

func (m *mockService) Search(_ context.Context, query string) ([]model.RawNode, error) {
	return nil, nil
}

func (m *mockService) GetWorkItem(_ context.Context, id string) (*model.WorkItem, error) {
	return nil, nil
}

func (m *mockService) CreateRelationship(_ context.Context, fromID, toID string, relType model.RelationshipType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls = append(m.createCalls, [3]string{fromID, toID, relType.String()})
	return m.createErr
}

func (m *mockService) DeleteRelationship(_ context.Context, edgeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls = append(m.deleteCalls, edgeID)
	return m.deleteErr
}

func (m *mockService) UpdateWorkItem(_ context.Context, id string, _ model.WorkItemPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls = append(m.updateCalls, id)
	return m.updateErr
}

func (m *mockService) Health(context.Context) (string, error) { return "ok", nil }

func (m *mockService) Close() error { return nil }

// chainGraph is the three-node fixture used across tests:
// A(requirement) -RELATES_TO-> B(task) -RELATES_TO-> C(test).
func chainGraph() model.VisualizationResponse {
	return model.VisualizationResponse{
		Nodes: []model.RawNode{
			{ID: "A", Type: "requirement", Label: "Login requirement", Position: &model.Position2D{X: 0, Y: 0}},
			{ID: "B", Type: "task", Label: "Build login form", Position: &model.Position2D{X: 100, Y: 0}},
			{ID: "C", Type: "test", Label: "Login form test", Position: &model.Position2D{X: 200, Y: 0}},
		},
		Edges: []model.RawEdge{
			{ID: "rel-ab", Source: "A", Target: "B", Type: "RELATES_TO"},
			{ID: "rel-bc", Source: "B", Target: "C", Type: "RELATES_TO"},
		},
	}
}

// loadedStore returns a store pre-loaded with the chain fixture.
func loadedStore(t testingT, svc *mockService) *Store {
	t.Helper()
	if svc.resp.Nodes == nil {
		svc.resp = chainGraph()
	}
	s := New(svc)
	if err := s.LoadGraph(context.Background(), "", 0); err != nil {
		t.Fatalf("LoadGraph() error: %v", err)
	}
	return s
}

// testingT is the subset of *testing.T the helpers need.
type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}
