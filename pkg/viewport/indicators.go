package viewport

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// Axis identifies one scroll axis of the viewport.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Timer is a cancelable deferred callback used for indicator auto-hide. It is
// injected rather than ambient so tests can drive it deterministically.
type Timer interface {
	// Reset cancels any pending callback and arms a new one.
	Reset(d time.Duration, fn func())
	// Stop cancels any pending callback.
	Stop()
}

type systemTimer struct {
	mu sync.Mutex
	t  *time.Timer
}

// NewTimer returns a Timer backed by time.AfterFunc.
func NewTimer() Timer {
	return &systemTimer{}
}

func (st *systemTimer) Reset(d time.Duration, fn func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.t != nil {
		st.t.Stop()
	}
	st.t = time.AfterFunc(d, fn)
}

func (st *systemTimer) Stop() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.t != nil {
		st.t.Stop()
		st.t = nil
	}
}

// Thumb is the derived geometry of one scrollbar-style indicator, in track
// pixels.
type Thumb struct {
	Extent   float64 // thumb length along the track
	Position float64 // offset of the thumb start from the track start
}

// View is the derived indicator state: both thumbs, the zoom label text, and
// the shared visibility flag. All three indicators show and hide together.
type View struct {
	Vertical   Thumb
	Horizontal Thumb
	ZoomLabel  string
	Visible    bool
}

// Indicators derives the indicator view from the viewport state and manages
// the shared show/auto-hide cycle. Every update makes the indicators visible
// and re-arms the single hide timer; a pending timer is restarted, never
// stacked. The timer callback only hides — it never touches viewport state.
type Indicators struct {
	mu       sync.Mutex
	cfg      Config
	timer    Timer
	view     View
	onChange func(View)
}

func newIndicators(cfg Config, timer Timer) *Indicators {
	return &Indicators{cfg: cfg, timer: timer}
}

// OnChange registers a callback invoked with the new view whenever the
// indicators change, including the auto-hide transition.
func (ic *Indicators) OnChange(fn func(View)) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.onChange = fn
}

// View returns the current indicator view.
func (ic *Indicators) View() View {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return ic.view
}

// Update recomputes the indicator geometry for the given state and viewport
// size, shows the indicators, and re-arms the auto-hide timer.
func (ic *Indicators) Update(s State, viewportW, viewportH float64) {
	ic.mu.Lock()
	vext, vpos := ThumbGeometry(viewportH, s.ScaledHeight(), viewportH, positionRatioY(s, viewportH), ic.cfg.MinThumbPx)
	hext, hpos := ThumbGeometry(viewportW, s.ScaledWidth(), viewportW, positionRatioX(s, viewportW), ic.cfg.MinThumbPx)
	ic.view = View{
		Vertical:   Thumb{Extent: vext, Position: vpos},
		Horizontal: Thumb{Extent: hext, Position: hpos},
		ZoomLabel:  fmt.Sprintf("%d%%", int(math.Round(s.ZoomPercent))),
		Visible:    true,
	}
	fn := ic.onChange
	view := ic.view
	ic.mu.Unlock()

	if fn != nil {
		fn(view)
	}
	ic.timer.Reset(ic.cfg.IndicatorHideDelay, ic.hide)
}

func (ic *Indicators) hide() {
	ic.mu.Lock()
	ic.view.Visible = false
	fn := ic.onChange
	view := ic.view
	ic.mu.Unlock()

	if fn != nil {
		fn(view)
	}
}

// ThumbGeometry computes the thumb extent and position for one axis. The
// extent never drops below minThumb so the thumb stays grabbable at extreme
// zoom-out, and a content-fits-viewport axis short-circuits to a full-track
// thumb at position 0 rather than dividing by zero.
func ThumbGeometry(viewportExtent, scaledExtent, trackExtent, positionRatio, minThumb float64) (extent, position float64) {
	visibleRatio := 1.0
	if scaledExtent > 0 && viewportExtent < scaledExtent {
		visibleRatio = viewportExtent / scaledExtent
	}
	extent = trackExtent * visibleRatio
	if extent < minThumb {
		extent = minThumb
	}
	if extent > trackExtent {
		extent = trackExtent
	}
	position = positionRatio * (trackExtent - extent)
	return extent, position
}

// positionRatioY maps the vertical pan to [0, 1] along the track: 0 at the
// top edge (pan 0), 1 at the bottom edge (pan -overflow).
func positionRatioY(s State, viewportH float64) float64 {
	scrollable := s.ScaledHeight() - viewportH
	if scrollable <= 0 {
		return 0
	}
	return math.Abs(s.PanY) / scrollable
}

// positionRatioX maps the horizontal pan to [0, 1]: 0 with the left edge
// visible (pan +overflow/2), 1 with the right edge visible (pan -overflow/2).
func positionRatioX(s State, viewportW float64) float64 {
	scrollable := s.ScaledWidth() - viewportW
	if scrollable <= 0 {
		return 0
	}
	return (scrollable/2 - s.PanX) / scrollable
}
