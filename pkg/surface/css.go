// Package surface provides render-surface implementations for the viewport
// engine. The engine itself only speaks the viewport.Surface interface; these
// types connect it to a real content node (via CSS transform strings pushed to
// a remote view) or to nothing at all (for tests and headless sessions).
package surface

import (
	"fmt"
	"sync"
)

// Sink receives rendered CSS transform strings for the content node.
type Sink func(transform string)

// CSSSurface renders the viewport transform as a CSS transform string and
// hands it to a sink, typically a function that patches the style of the one
// content element in a remote view. The viewport size is pushed in by the
// view (resize reports) and read live by the engine.
type CSSSurface struct {
	mu     sync.RWMutex
	sink   Sink
	width  float64
	height float64
}

// NewCSSSurface creates a surface delivering transforms to sink.
func NewCSSSurface(sink Sink) *CSSSurface {
	return &CSSSurface{sink: sink}
}

// SetViewportSize records the current viewport dimensions as reported by the
// view.
func (s *CSSSurface) SetViewportSize(width, height float64) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.mu.Unlock()
}

// ViewportSize returns the last reported viewport dimensions.
func (s *CSSSurface) ViewportSize() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// ApplyTransform renders and delivers the transform for the content node.
func (s *CSSSurface) ApplyTransform(scale, panX, panY float64) {
	s.mu.RLock()
	sink := s.sink
	s.mu.RUnlock()
	if sink != nil {
		sink(Transform(scale, panX, panY))
	}
}

// Transform renders the center-origin affine transform for the given scale
// and pan as a CSS transform value.
func Transform(scale, panX, panY float64) string {
	return fmt.Sprintf("translate(%gpx, %gpx) scale(%g)", panX, panY, scale)
}
