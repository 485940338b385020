// Package graphstore holds the client-side state shared by the 2D and 3D
// graph renderers: the loaded node/edge snapshot, selection, type filters,
// isolation mode, search, per-node dual-coordinate position records, and the
// active view mode. Both renderers read the same store, so they always render
// the same logical graph.
//
// The store is the only shared mutable resource. All mutations go through its
// action methods and are atomic with respect to readers; read accessors
// return copies that callers must treat as immutable snapshots. Network
// round-trips are the only suspension points and never hold the state lock.
package graphstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alfredjeanlab/traceviz/internal/client"
	"github.com/alfredjeanlab/traceviz/internal/layout"
	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/transform"
)

// Depth bounds for neighborhood loads.
const (
	MinDepth = 1
	MaxDepth = 10
)

// DefaultLimit caps the number of nodes requested per load.
const DefaultLimit = 1000

const defaultDepth = 3

// Store is the single source of truth backing both graph views.
type Store struct {
	mu     sync.RWMutex
	svc    client.Service
	logger *slog.Logger
	scale  float64
	limit  int

	// graph snapshot, replaced wholesale on every successful load
	nodes    []model.Node
	edges    []model.Edge
	selected *model.Node

	// load parameters
	centerNodeID string
	depth        int

	// view coordination
	viewMode           ViewMode
	viewport           Viewport
	isTransitioning    bool
	lastViewModeChange int64 // unix millis; zero until the first switch
	transitionGen      uint64

	// visibility
	typeFilter map[model.NodeType]bool
	isolation  isolationState

	// positions, one record per node id
	positions map[string]*positionRecord

	// search
	searchQuery   string
	searchResults []model.SearchResult
	isSearching   bool

	// async bookkeeping. loading counts in-flight actions; loadSeq orders
	// loads so a stale completion can never overwrite a newer snapshot.
	loading     int
	errMsg      string
	loadSeq     uint64
	loadApplied uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithScale overrides the 2D/3D coordinate scale factor.
func WithScale(scale float64) Option {
	return func(s *Store) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithLimit overrides the per-load node cap.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// New creates an empty store backed by the given service.
func New(svc client.Service, opts ...Option) *Store {
	s := &Store{
		svc:    svc,
		logger: slog.Default(),
		scale:  transform.DefaultScale,
		limit:  DefaultLimit,
	}
	s.resetLocked()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resetLocked restores initial state. Caller holds the lock (or is New).
func (s *Store) resetLocked() {
	s.nodes = nil
	s.edges = nil
	s.selected = nil
	s.centerNodeID = ""
	s.depth = defaultDepth
	s.viewMode = View2D
	s.viewport = Viewport{Zoom: 1}
	s.isTransitioning = false
	s.lastViewModeChange = 0
	s.typeFilter = defaultTypeFilter()
	s.isolation = isolationState{}
	s.positions = make(map[string]*positionRecord)
	s.searchQuery = ""
	s.searchResults = nil
	s.isSearching = false
	s.errMsg = ""
}

// Reset restores the store to its initial empty state. In-flight requests
// keep their sequence numbers, so a load completing after a reset is treated
// as stale and discarded.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.loadApplied = s.loadSeq
}

// LoadGraph fetches the graph from the backend and replaces the snapshot.
// A non-empty centerID re-centers the graph on that node; a positive depth
// (clamped to [MinDepth, MaxDepth]) bounds the neighborhood. Zero values
// reuse the current parameters. On failure the previous snapshot is left
// untouched and the error is both recorded and returned.
func (s *Store) LoadGraph(ctx context.Context, centerID string, depth int) error {
	s.mu.Lock()
	if centerID != "" {
		s.centerNodeID = centerID
	}
	if depth > 0 {
		s.depth = clampDepth(depth)
	}
	req := model.VisualizationRequest{
		RootID: s.centerNodeID,
		Depth:  s.depth,
		Limit:  s.limit,
	}
	s.loadSeq++
	seq := s.loadSeq
	s.loading++
	s.mu.Unlock()

	resp, err := s.svc.GetVisualization(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	if err != nil {
		s.errMsg = fmt.Sprintf("load graph: %v", err)
		return fmt.Errorf("load graph: %w", err)
	}
	if seq <= s.loadApplied {
		// A newer load already completed; keep its snapshot.
		s.logger.Debug("discarding stale graph load", "seq", seq, "applied", s.loadApplied)
		return nil
	}
	s.loadApplied = seq
	s.applyGraphLocked(resp)
	s.errMsg = ""
	return nil
}

// applyGraphLocked replaces the node/edge snapshot with a fresh load,
// carrying position records and selection forward by node id.
func (s *Store) applyGraphLocked(resp *model.VisualizationResponse) {
	nodes := make([]model.Node, 0, len(resp.Nodes))
	positions := make(map[string]*positionRecord, len(resp.Nodes))
	for _, raw := range resp.Nodes {
		pos := layout.Resolve(raw)
		nodes = append(nodes, model.Node{
			ID:       raw.ID,
			Type:     model.NodeType(raw.Type),
			Position: pos,
			Data: model.NodeData{
				Label:      raw.Label,
				Type:       raw.Type,
				Properties: raw.Properties,
			},
		})
		if rec, ok := s.positions[raw.ID]; ok {
			// Surviving node: keep its placement and staleness.
			positions[raw.ID] = rec
		} else {
			positions[raw.ID] = &positionRecord{
				pos2D: pos,
				pos3D: transform.To3D(pos, s.scale),
			}
		}
	}
	// Nodes carry their remembered 2D placement, not the load-time one.
	for i := range nodes {
		if rec := positions[nodes[i].ID]; rec.userPositioned && !rec.stale2D {
			nodes[i].Position = rec.pos2D
		}
	}

	edges := make([]model.Edge, 0, len(resp.Edges))
	for _, raw := range resp.Edges {
		edges = append(edges, model.Edge{
			ID:     raw.ID,
			Source: raw.Source,
			Target: raw.Target,
			Type:   model.RelationshipType(raw.Type),
			Label:  raw.Label,
		})
	}

	s.nodes = nodes
	s.edges = edges
	s.positions = positions

	// Selection survives a reload when its node does; a vanished node clears
	// it silently.
	if s.selected != nil {
		s.selected = s.findNodeLocked(s.selected.ID)
	}

	// Same for the isolation root.
	if s.isolation.active {
		if s.findNodeLocked(s.isolation.nodeID) == nil {
			s.isolation = isolationState{}
		} else {
			s.recomputeIsolationLocked()
		}
	}
}

// SelectNode sets the current selection. An empty id clears it; an unknown
// id is a no-op so stale clicks from a re-rendering view cannot corrupt
// state.
func (s *Store) SelectNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.selected = nil
		return
	}
	if n := s.findNodeLocked(id); n != nil {
		s.selected = n
	}
}

// SelectedNode returns a copy of the current selection, or nil.
func (s *Store) SelectedNode() *model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	n := *s.selected
	return &n
}

// UpdateNode patches a work item on the backend, then reloads the graph so
// every derived view reflects the change. The reload uses the center/depth
// in effect after the mutation completes.
func (s *Store) UpdateNode(ctx context.Context, id string, patch model.WorkItemPatch) error {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	err := s.svc.UpdateWorkItem(ctx, id, patch)

	s.mu.Lock()
	s.loading--
	if err != nil {
		s.errMsg = fmt.Sprintf("update work item %s: %v", id, err)
		s.mu.Unlock()
		return fmt.Errorf("update work item %s: %w", id, err)
	}
	s.errMsg = ""
	s.mu.Unlock()

	return s.LoadGraph(ctx, "", 0)
}

// CreateRelationship links two nodes on the backend, then reloads the graph.
func (s *Store) CreateRelationship(ctx context.Context, fromID, toID string, relType model.RelationshipType) error {
	s.mu.Lock()
	s.loading++
	s.mu.Unlock()

	err := s.svc.CreateRelationship(ctx, fromID, toID, relType)

	s.mu.Lock()
	s.loading--
	if err != nil {
		s.errMsg = fmt.Sprintf("create relationship: %v", err)
		s.mu.Unlock()
		return fmt.Errorf("create relationship: %w", err)
	}
	s.errMsg = ""
	s.mu.Unlock()

	return s.LoadGraph(ctx, "", 0)
}

// DeleteRelationship removes an edge. The edge is removed from the local
// snapshot immediately (the backend confirms rather than redefines the edge
// set); on failure it is restored. Deleting an unknown edge id is a no-op.
func (s *Store) DeleteRelationship(ctx context.Context, edgeID string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.edges {
		if s.edges[i].ID == edgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	removed := s.edges[idx]
	edges := make([]model.Edge, 0, len(s.edges)-1)
	edges = append(edges, s.edges[:idx]...)
	edges = append(edges, s.edges[idx+1:]...)
	s.edges = edges
	if s.isolation.active {
		s.recomputeIsolationLocked()
	}
	s.loading++
	s.mu.Unlock()

	err := s.svc.DeleteRelationship(ctx, edgeID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
	if err != nil {
		s.edges = append(s.edges, removed)
		if s.isolation.active {
			s.recomputeIsolationLocked()
		}
		s.errMsg = fmt.Sprintf("delete relationship %s: %v", edgeID, err)
		return fmt.Errorf("delete relationship %s: %w", edgeID, err)
	}
	s.errMsg = ""
	return nil
}

// SetCenterNode sets the node the next load centers on.
func (s *Store) SetCenterNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.centerNodeID = id
}

// SetDepth sets the neighborhood depth for loads, clamped to [MinDepth, MaxDepth].
func (s *Store) SetDepth(depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.depth = clampDepth(depth)
}

// CenterNodeID returns the current load center.
func (s *Store) CenterNodeID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.centerNodeID
}

// Depth returns the current load depth.
func (s *Store) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.depth
}

// Nodes returns a copy of the full (unfiltered) node snapshot.
func (s *Store) Nodes() []model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns a copy of the full (unfiltered) edge snapshot.
func (s *Store) Edges() []model.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// IsLoading reports whether any async action is in flight. It communicates
// "busy" to the UI; it does not block other actions from being dispatched.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading > 0
}

// Error returns the message of the most recent failed action, or "". It is
// independent of IsLoading so the UI can show a stale error banner while a
// newer action is in flight.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// ClearError discards the stored error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// findNodeLocked returns a pointer into the snapshot for the given id, or nil.
func (s *Store) findNodeLocked(id string) *model.Node {
	for i := range s.nodes {
		if s.nodes[i].ID == id {
			return &s.nodes[i]
		}
	}
	return nil
}

func clampDepth(d int) int {
	if d < MinDepth {
		return MinDepth
	}
	if d > MaxDepth {
		return MaxDepth
	}
	return d
}
