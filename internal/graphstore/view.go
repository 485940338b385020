package graphstore

import "time"

// ViewMode identifies which renderer is active.
type ViewMode string

const (
	View2D ViewMode = "2d"
	View3D ViewMode = "3d"
)

// IsValid reports whether the mode is one of the two known views.
func (m ViewMode) IsValid() bool {
	return m == View2D || m == View3D
}

// transitionDuration is how long the cosmetic transition flag stays set
// after a view switch. It never gates the correctness of any operation.
const transitionDuration = 500 * time.Millisecond

// Viewport is the zoom/pan state shared by both views. Switching views never
// resets or copies it.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
	PanZ float64
}

// ViewportPatch is a partial viewport update; nil fields are left untouched.
type ViewportPatch struct {
	Zoom *float64
	PanX *float64
	PanY *float64
	PanZ *float64
}

// SetViewMode switches the active renderer. Switching to the current mode
// (or an unknown one) is a silent no-op. On a real switch, every
// user-positioned node whose target coordinate space is stale is resynced
// through the coordinate transform before the mode changes, so the entering
// view immediately sees consistent placements. Filters and the viewport are
// shared between views and are not touched.
func (s *Store) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !mode.IsValid() || mode == s.viewMode {
		return
	}

	s.resyncPositionsLocked(mode)
	s.viewMode = mode
	s.lastViewModeChange = time.Now().UnixMilli()
	s.isTransitioning = true
	s.transitionGen++
	gen := s.transitionGen

	time.AfterFunc(transitionDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A later switch owns the flag now.
		if s.transitionGen == gen {
			s.isTransitioning = false
		}
	})
}

// ViewMode returns the active view mode.
func (s *Store) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// IsTransitioning reports whether a view switch animation is in progress.
// Strictly cosmetic.
func (s *Store) IsTransitioning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isTransitioning
}

// LastViewModeChange returns when the mode last changed, or the zero time if
// it never has.
func (s *Store) LastViewModeChange() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastViewModeChange == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.lastViewModeChange)
}

// SetViewport applies a partial update to the shared viewport. Non-positive
// zoom values are ignored; pan values are unrestricted.
func (s *Store) SetViewport(patch ViewportPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Zoom != nil && *patch.Zoom > 0 {
		s.viewport.Zoom = *patch.Zoom
	}
	if patch.PanX != nil {
		s.viewport.PanX = *patch.PanX
	}
	if patch.PanY != nil {
		s.viewport.PanY = *patch.PanY
	}
	if patch.PanZ != nil {
		s.viewport.PanZ = *patch.PanZ
	}
}

// GetViewport returns the shared viewport.
func (s *Store) GetViewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}
