package graphstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

func TestLoadGraph_ReplacesSnapshot(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)

	if got := len(s.Nodes()); got != 3 {
		t.Fatalf("got %d nodes, want 3", got)
	}
	if got := len(s.Edges()); got != 2 {
		t.Fatalf("got %d edges, want 2", got)
	}
	if s.Error() != "" {
		t.Errorf("unexpected error after load: %q", s.Error())
	}
	if s.IsLoading() {
		t.Error("IsLoading should be false after the load returns")
	}
}

func TestLoadGraph_AssignsFallbackPositions(t *testing.T) {
	svc := &mockService{resp: model.VisualizationResponse{
		Nodes: []model.RawNode{{ID: "wi-nopos", Type: "task", Label: "floating"}},
	}}
	s := loadedStore(t, svc)

	n := s.Nodes()[0]
	if n.Position == (model.Position2D{}) {
		t.Error("node without a backend position should get a fallback placement")
	}
	rec, ok := s.PositionRecordFor("wi-nopos")
	if !ok {
		t.Fatal("position record missing")
	}
	if rec.Position2D != n.Position {
		t.Errorf("record 2D = %+v, node position = %+v", rec.Position2D, n.Position)
	}
	if rec.IsUserPositioned {
		t.Error("a load-time placement must not count as user-positioned")
	}
}

func TestLoadGraph_FailureKeepsPreviousSnapshot(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)

	svc.mu.Lock()
	svc.visErr = errors.New("backend unavailable")
	svc.mu.Unlock()

	err := s.LoadGraph(context.Background(), "", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(s.Nodes()); got != 3 {
		t.Errorf("failed load must keep last-known-good data, got %d nodes", got)
	}
	if s.Error() == "" {
		t.Error("error message should be recorded")
	}
	if s.Error() != err.Error() {
		t.Errorf("stored error %q differs from returned error %q", s.Error(), err.Error())
	}
	if s.IsLoading() {
		t.Error("IsLoading stuck true after a failed load")
	}

	// A subsequent success clears the stale error.
	svc.mu.Lock()
	svc.visErr = nil
	svc.mu.Unlock()
	if err := s.LoadGraph(context.Background(), "", 0); err != nil {
		t.Fatalf("LoadGraph() error: %v", err)
	}
	if s.Error() != "" {
		t.Errorf("error should be cleared on success, got %q", s.Error())
	}
}

func TestLoadGraph_UpdatesCenterAndDepth(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)

	if err := s.LoadGraph(context.Background(), "B", 5); err != nil {
		t.Fatalf("LoadGraph() error: %v", err)
	}
	if s.CenterNodeID() != "B" || s.Depth() != 5 {
		t.Errorf("center=%q depth=%d, want B/5", s.CenterNodeID(), s.Depth())
	}
	last := svc.visCalls[len(svc.visCalls)-1]
	if last.RootID != "B" || last.Depth != 5 || last.Limit != DefaultLimit {
		t.Errorf("request = %+v", last)
	}
}

func TestLoadGraph_StaleCompletionDiscarded(t *testing.T) {
	svc := &mockService{}
	s := New(svc)

	release := make(chan struct{})
	firstIssued := make(chan struct{})
	old := model.VisualizationResponse{Nodes: []model.RawNode{{ID: "old", Type: "task", Label: "old"}}}
	fresh := chainGraph()

	var calls int
	var callsMu sync.Mutex
	svc.visHook = func(req model.VisualizationRequest) (*model.VisualizationResponse, error) {
		callsMu.Lock()
		calls++
		mine := calls
		callsMu.Unlock()
		if mine == 1 {
			close(firstIssued)
			<-release // resolves last
			out := old
			return &out, nil
		}
		out := fresh
		return &out, nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.LoadGraph(context.Background(), "", 0)
	}()
	<-firstIssued
	if err := s.LoadGraph(context.Background(), "", 0); err != nil {
		t.Fatalf("second LoadGraph() error: %v", err)
	}
	close(release)
	wg.Wait()

	nodes := s.Nodes()
	if len(nodes) != 3 || nodes[0].ID == "old" {
		t.Errorf("stale load overwrote the newer snapshot: %+v", nodes)
	}
}

func TestSelectNode(t *testing.T) {
	s := loadedStore(t, &mockService{})

	s.SelectNode("B")
	if sel := s.SelectedNode(); sel == nil || sel.ID != "B" {
		t.Fatalf("SelectedNode() = %+v, want B", sel)
	}

	s.SelectNode("nope")
	if sel := s.SelectedNode(); sel == nil || sel.ID != "B" {
		t.Errorf("selecting an unknown id must be a no-op, got %+v", sel)
	}

	s.SelectNode("")
	if sel := s.SelectedNode(); sel != nil {
		t.Errorf("empty id should clear the selection, got %+v", sel)
	}
}

func TestSelection_SurvivesReloadOfSameNode(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)
	s.SelectNode("B")

	// Same id, changed content.
	svc.mu.Lock()
	svc.resp.Nodes[1].Label = "Build login form v2"
	svc.mu.Unlock()
	if err := s.LoadGraph(context.Background(), "", 0); err != nil {
		t.Fatalf("LoadGraph() error: %v", err)
	}

	sel := s.SelectedNode()
	if sel == nil || sel.ID != "B" {
		t.Fatalf("selection dropped across reload: %+v", sel)
	}
	if sel.Data.Label != "Build login form v2" {
		t.Errorf("selection should point at the refreshed node, got label %q", sel.Data.Label)
	}
}

func TestSelection_ClearedWhenNodeVanishes(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)
	s.SelectNode("B")

	svc.mu.Lock()
	svc.resp = model.VisualizationResponse{
		Nodes: svc.resp.Nodes[:1], // only A remains
	}
	svc.mu.Unlock()
	if err := s.LoadGraph(context.Background(), "", 0); err != nil {
		t.Fatalf("LoadGraph() error: %v", err)
	}
	if sel := s.SelectedNode(); sel != nil {
		t.Errorf("selection should be nil after its node vanished, got %+v", sel)
	}
}

func TestUpdateNode_ReloadsAfterMutation(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)
	before := len(svc.visCalls)

	title := "Renamed"
	if err := s.UpdateNode(context.Background(), "B", model.WorkItemPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateNode() error: %v", err)
	}
	if len(svc.updateCalls) != 1 || svc.updateCalls[0] != "B" {
		t.Errorf("update calls = %v", svc.updateCalls)
	}
	if len(svc.visCalls) != before+1 {
		t.Errorf("expected exactly one reload after the mutation, got %d", len(svc.visCalls)-before)
	}
	if s.IsLoading() {
		t.Error("IsLoading stuck true")
	}
}

func TestUpdateNode_FailureSkipsReload(t *testing.T) {
	svc := &mockService{updateErr: errors.New("boom")}
	s := loadedStore(t, svc)
	before := len(svc.visCalls)

	err := s.UpdateNode(context.Background(), "B", model.WorkItemPatch{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(s.Error(), "boom") {
		t.Errorf("stored error = %q", s.Error())
	}
	if len(svc.visCalls) != before {
		t.Error("a failed mutation must not trigger a reload")
	}
	if s.IsLoading() {
		t.Error("IsLoading stuck true")
	}
}

func TestCreateRelationship_ReloadUsesPostMutationParams(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)
	s.SetCenterNode("C")
	s.SetDepth(7)

	if err := s.CreateRelationship(context.Background(), "A", "C", model.RelDependsOn); err != nil {
		t.Fatalf("CreateRelationship() error: %v", err)
	}
	if len(svc.createCalls) != 1 {
		t.Fatalf("create calls = %v", svc.createCalls)
	}
	last := svc.visCalls[len(svc.visCalls)-1]
	if last.RootID != "C" || last.Depth != 7 {
		t.Errorf("reload used stale params: %+v", last)
	}
}

func TestDeleteRelationship_Optimistic(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)
	before := len(svc.visCalls)

	if err := s.DeleteRelationship(context.Background(), "rel-ab"); err != nil {
		t.Fatalf("DeleteRelationship() error: %v", err)
	}
	if len(s.Edges()) != 1 {
		t.Errorf("edge not removed locally: %+v", s.Edges())
	}
	if len(svc.visCalls) != before {
		t.Error("deleteRelationship must not trigger a full reload")
	}
	if len(svc.deleteCalls) != 1 || svc.deleteCalls[0] != "rel-ab" {
		t.Errorf("delete calls = %v", svc.deleteCalls)
	}
}

func TestDeleteRelationship_FailureRestoresEdge(t *testing.T) {
	svc := &mockService{deleteErr: errors.New("conflict")}
	s := loadedStore(t, svc)

	err := s.DeleteRelationship(context.Background(), "rel-ab")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(s.Edges()) != 2 {
		t.Errorf("edge should be restored on failure, got %+v", s.Edges())
	}
	if s.Error() == "" {
		t.Error("error should be recorded")
	}
}

func TestDeleteRelationship_UnknownEdgeIsNoop(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)

	if err := s.DeleteRelationship(context.Background(), "rel-zzz"); err != nil {
		t.Fatalf("unknown edge should be a silent no-op, got %v", err)
	}
	if len(svc.deleteCalls) != 0 {
		t.Error("no backend call expected for an unknown edge")
	}
}

func TestSetDepth_Clamps(t *testing.T) {
	s := New(&mockService{})
	for _, tc := range []struct{ in, want int }{
		{0, 1},
		{-5, 1},
		{1, 1},
		{10, 10},
		{15, 10},
	} {
		s.SetDepth(tc.in)
		if got := s.Depth(); got != tc.want {
			t.Errorf("SetDepth(%d): depth = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClearError(t *testing.T) {
	svc := &mockService{visErr: errors.New("nope")}
	s := New(svc)
	_ = s.LoadGraph(context.Background(), "", 0)
	if s.Error() == "" {
		t.Fatal("expected a stored error")
	}
	s.ClearError()
	if s.Error() != "" {
		t.Error("ClearError did not clear")
	}
}

func TestReset(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)
	s.SelectNode("A")
	s.SetViewMode(View3D)
	s.ToggleNodeTypeFilter(model.TypeRisk)

	s.Reset()

	if len(s.Nodes()) != 0 || s.SelectedNode() != nil {
		t.Error("Reset should drop the snapshot and selection")
	}
	if s.ViewMode() != View2D {
		t.Errorf("ViewMode after reset = %q", s.ViewMode())
	}
	if !s.TypeFilter()[model.TypeRisk] {
		t.Error("type filter should be reseeded to all-visible")
	}
	if vp := s.GetViewport(); vp.Zoom != 1 {
		t.Errorf("viewport after reset = %+v", vp)
	}
}

func TestConcurrentActionsDoNotCorruptState(t *testing.T) {
	svc := &mockService{}
	s := loadedStore(t, svc)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.LoadGraph(context.Background(), "", 0)
			s.SelectNode("B")
			s.ToggleNodeTypeFilter(model.TypeTask)
			s.SetViewMode(View3D)
			s.SetViewMode(View2D)
			_ = s.FilteredNodes()
			_ = s.FilteredEdges()
		}()
	}
	wg.Wait()

	if got := len(s.Nodes()); got != 3 {
		t.Errorf("snapshot corrupted: %d nodes", got)
	}
	if s.IsLoading() {
		t.Error("IsLoading stuck true after all actions settled")
	}
}
