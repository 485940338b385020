package graphstore

import "github.com/alfredjeanlab/traceviz/internal/model"

// isolationState is the neighborhood-isolation filter. visible is derived,
// recomputed whenever the root, depth, or edge set changes.
type isolationState struct {
	active  bool
	nodeID  string
	depth   int
	visible map[string]struct{}
}

// IsolationState is the read-only projection of the isolation filter.
type IsolationState struct {
	Active         bool
	IsolatedNodeID string
	Depth          int
	VisibleNodeIDs []string
}

func defaultTypeFilter() map[model.NodeType]bool {
	f := make(map[model.NodeType]bool)
	for _, t := range model.KnownNodeTypes() {
		f[t] = true
	}
	return f
}

// SetNodeTypeFilters applies a partial update to the type-filter table.
// Keys absent from patch are left untouched; patch keys outside the seeded
// table are accepted and become known types.
func (s *Store) SetNodeTypeFilters(patch map[model.NodeType]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, visible := range patch {
		s.typeFilter[t] = visible
	}
}

// ToggleNodeTypeFilter flips one type's visibility. Toggling a type not yet
// in the table hides it (it was implicitly visible).
func (s *Store) ToggleNodeTypeFilter(t model.NodeType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if visible, known := s.typeFilter[t]; known {
		s.typeFilter[t] = !visible
	} else {
		s.typeFilter[t] = false
	}
}

// TypeFilter returns a copy of the type-filter table.
func (s *Store) TypeFilter() map[model.NodeType]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.NodeType]bool, len(s.typeFilter))
	for t, v := range s.typeFilter {
		out[t] = v
	}
	return out
}

// EnterIsolationMode restricts visibility to the neighborhood of the given
// node at the current (or default) isolation depth. Unknown ids are a no-op.
func (s *Store) EnterIsolationMode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findNodeLocked(id) == nil {
		return
	}
	depth := s.isolation.depth
	if !s.isolation.active {
		depth = 1
	}
	s.isolation = isolationState{active: true, nodeID: id, depth: depth}
	s.recomputeIsolationLocked()
}

// ExitIsolationMode restores full (type-filtered) visibility.
func (s *Store) ExitIsolationMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isolation = isolationState{}
}

// UpdateIsolationDepth changes the hop bound and recomputes the visible set.
// Calling it while isolation is inactive is a no-op. Negative depths clamp
// to zero (the isolated node alone).
func (s *Store) UpdateIsolationDepth(depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isolation.active {
		return
	}
	if depth < 0 {
		depth = 0
	}
	s.isolation.depth = depth
	s.recomputeIsolationLocked()
}

// Isolation returns the read-only projection of the isolation state.
func (s *Store) Isolation() IsolationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := IsolationState{
		Active:         s.isolation.active,
		IsolatedNodeID: s.isolation.nodeID,
		Depth:          s.isolation.depth,
	}
	for id := range s.isolation.visible {
		out.VisibleNodeIDs = append(out.VisibleNodeIDs, id)
	}
	return out
}

// recomputeIsolationLocked rebuilds the visible set from scratch: an
// unweighted BFS over the edge list treated as undirected, bounded by the
// isolation depth. The root is always included.
func (s *Store) recomputeIsolationLocked() {
	adjacency := make(map[string][]string, len(s.nodes))
	for _, e := range s.edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
		adjacency[e.Target] = append(adjacency[e.Target], e.Source)
	}

	visible := map[string]struct{}{s.isolation.nodeID: {}}
	frontier := []string{s.isolation.nodeID}
	for hop := 0; hop < s.isolation.depth && len(frontier) > 0; hop++ {
		var next []string
		for _, id := range frontier {
			for _, neighbor := range adjacency[id] {
				if _, seen := visible[neighbor]; seen {
					continue
				}
				visible[neighbor] = struct{}{}
				next = append(next, neighbor)
			}
		}
		frontier = next
	}
	s.isolation.visible = visible
}

// FilteredNodes returns the nodes visible under the type filter, intersected
// with the isolation neighborhood when isolation is active.
func (s *Store) FilteredNodes() []model.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Node, 0, len(s.nodes))
	for i := range s.nodes {
		if !s.nodeVisibleLocked(&s.nodes[i]) {
			continue
		}
		out = append(out, s.nodes[i])
	}
	return out
}

// FilteredEdges returns exactly the edges whose source and target are both
// currently visible. An edge with a hidden endpoint never appears.
func (s *Store) FilteredEdges() []model.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visible := make(map[string]struct{}, len(s.nodes))
	for i := range s.nodes {
		if s.nodeVisibleLocked(&s.nodes[i]) {
			visible[s.nodes[i].ID] = struct{}{}
		}
	}
	out := make([]model.Edge, 0, len(s.edges))
	for _, e := range s.edges {
		if _, ok := visible[e.Source]; !ok {
			continue
		}
		if _, ok := visible[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *Store) nodeVisibleLocked(n *model.Node) bool {
	if !s.typeVisibleLocked(n) {
		return false
	}
	if s.isolation.active {
		if _, ok := s.isolation.visible[n.ID]; !ok {
			return false
		}
	}
	return true
}

// typeVisibleLocked applies the type filter. Unrecognized types default to
// visible (fail-open) so newly-introduced backend types are never silently
// hidden. A structural wrapper passes when either its outer type or its
// nested properties subtype passes; a wrapper without a subtype is decided
// by the outer type alone.
func (s *Store) typeVisibleLocked(n *model.Node) bool {
	outer := n.EffectiveType()
	if outer.IsStructuralWrapper() {
		if sub := n.Subtype(); sub != "" {
			return s.typeEnabledLocked(outer) || s.typeEnabledLocked(sub)
		}
	}
	return s.typeEnabledLocked(outer)
}

func (s *Store) typeEnabledLocked(t model.NodeType) bool {
	visible, known := s.typeFilter[t]
	if !known {
		return true
	}
	return visible
}
