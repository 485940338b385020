package graphstore

import (
	"github.com/alfredjeanlab/traceviz/internal/model"
	"github.com/alfredjeanlab/traceviz/internal/transform"
)

// positionRecord is the per-node dual-coordinate bookkeeping entry. A move
// in one view marks the other view's coordinates stale; the stale side is
// re-derived lazily at the next view-mode switch, not eagerly mid-drag.
type positionRecord struct {
	pos2D          model.Position2D
	pos3D          model.Position3D
	userPositioned bool
	stale2D        bool
	stale3D        bool
}

// PositionRecord is the read-only projection of a node's position record.
type PositionRecord struct {
	Position2D       model.Position2D
	Position3D       model.Position3D
	IsUserPositioned bool
}

// ViewPosition is a node's placement in one view's coordinate space. The
// coordinate set matching Mode is the meaningful one.
type ViewPosition struct {
	Mode  ViewMode
	Pos2D model.Position2D
	Pos3D model.Position3D
}

// UpdateNodePosition records an explicit 2D move. The 3D coordinates are
// left stale until the next switch into the 3D view. Unknown ids are a
// no-op.
func (s *Store) UpdateNodePosition(id string, pos model.Position2D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.positions[id]
	if !ok {
		return
	}
	rec.pos2D = pos
	rec.userPositioned = true
	rec.stale2D = false
	rec.stale3D = true
	if n := s.findNodeLocked(id); n != nil {
		n.Position = pos
	}
}

// UpdateNodePosition3D records an explicit 3D move; the 2D coordinates stay
// stale until the next switch back to 2D. Unknown ids are a no-op.
func (s *Store) UpdateNodePosition3D(id string, pos model.Position3D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.positions[id]
	if !ok {
		return
	}
	rec.pos3D = pos
	rec.userPositioned = true
	rec.stale3D = false
	rec.stale2D = true
}

// NodePositionForView returns the node's placement in the given view's
// coordinate space. ok is false for unknown ids.
func (s *Store) NodePositionForView(id string, mode ViewMode) (ViewPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, found := s.positions[id]
	if !found {
		return ViewPosition{}, false
	}
	return ViewPosition{Mode: mode, Pos2D: rec.pos2D, Pos3D: rec.pos3D}, true
}

// PositionRecordFor returns the full dual-coordinate record for a node.
// ok is false for unknown ids.
func (s *Store) PositionRecordFor(id string) (PositionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, found := s.positions[id]
	if !found {
		return PositionRecord{}, false
	}
	return PositionRecord{
		Position2D:       rec.pos2D,
		Position3D:       rec.pos3D,
		IsUserPositioned: rec.userPositioned,
	}, true
}

// resyncPositionsLocked re-derives the stale coordinate space of every
// user-positioned record when entering the given mode. Switching into 2D
// also writes the resynced value back onto the node's canonical position so
// 2D renderers pick it up immediately.
func (s *Store) resyncPositionsLocked(entering ViewMode) {
	for id, rec := range s.positions {
		if !rec.userPositioned {
			continue
		}
		switch entering {
		case View3D:
			if rec.stale3D {
				rec.pos3D = transform.To3D(rec.pos2D, s.scale)
				rec.stale3D = false
			}
		case View2D:
			if rec.stale2D {
				rec.pos2D = transform.To2D(rec.pos3D, s.scale)
				rec.stale2D = false
				if n := s.findNodeLocked(id); n != nil {
					n.Position = rec.pos2D
				}
			}
		}
	}
}
