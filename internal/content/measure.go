// Package content handles the document side of the viewport lifecycle: the
// settle-delayed capture of the content's natural size, and the file watcher
// that triggers a re-capture on explicit reload.
package content

import (
	"sync"
	"time"
)

// Measurer schedules the capture of the content's natural size. Layout can
// still be reflowing right after a (re)load, so the capture runs after a
// short settle delay; rescheduling before it fires replaces the pending
// capture instead of stacking a second one.
type Measurer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewMeasurer creates a measurer with the given settle delay.
func NewMeasurer(delay time.Duration) *Measurer {
	return &Measurer{delay: delay}
}

// Schedule arms capture to run after the settle delay, replacing any pending
// capture.
func (m *Measurer) Schedule(capture func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.delay, capture)
}

// Cancel drops any pending capture.
func (m *Measurer) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
