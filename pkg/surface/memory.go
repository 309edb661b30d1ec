package surface

import "sync"

// MemorySurface records applied transforms without rendering anything. It
// backs engine tests and bridge sessions before a view has registered a real
// sink.
type MemorySurface struct {
	mu      sync.RWMutex
	width   float64
	height  float64
	scale   float64
	panX    float64
	panY    float64
	applied int
}

// NewMemorySurface creates a memory surface with the given viewport size.
func NewMemorySurface(width, height float64) *MemorySurface {
	return &MemorySurface{width: width, height: height, scale: 1}
}

// SetViewportSize updates the viewport dimensions.
func (s *MemorySurface) SetViewportSize(width, height float64) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.mu.Unlock()
}

// ViewportSize returns the current viewport dimensions.
func (s *MemorySurface) ViewportSize() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// ApplyTransform records the transform.
func (s *MemorySurface) ApplyTransform(scale, panX, panY float64) {
	s.mu.Lock()
	s.scale = scale
	s.panX = panX
	s.panY = panY
	s.applied++
	s.mu.Unlock()
}

// Last returns the most recently applied transform.
func (s *MemorySurface) Last() (scale, panX, panY float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scale, s.panX, s.panY
}

// AppliedCount returns how many transforms have been applied. Tests use it to
// verify that no-op operations skip the apply step entirely.
func (s *MemorySurface) AppliedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}
