package viewport

import (
	"math"
	"testing"
	"time"
)

// testSurface records applied transforms and serves a fixed viewport size.
type testSurface struct {
	width, height float64
	scale         float64
	panX, panY    float64
	applied       int
}

func (s *testSurface) ApplyTransform(scale, panX, panY float64) {
	s.scale = scale
	s.panX = panX
	s.panY = panY
	s.applied++
}

func (s *testSurface) ViewportSize() (float64, float64) {
	return s.width, s.height
}

// fakeTimer never fires on its own; tests trigger the callback by hand.
type fakeTimer struct {
	resets int
	delay  time.Duration
	fn     func()
}

func (ft *fakeTimer) Reset(d time.Duration, fn func()) {
	ft.resets++
	ft.delay = d
	ft.fn = fn
}

func (ft *fakeTimer) Stop() { ft.fn = nil }

func newTestEngine(viewportW, viewportH, contentW, contentH float64) (*Engine, *testSurface) {
	surf := &testSurface{width: viewportW, height: viewportH}
	e := NewEngineWithTimer(surf, nil, &fakeTimer{})
	e.SetContentSize(contentW, contentH)
	return e, surf
}

func TestEngine_Defaults(t *testing.T) {
	surf := &testSurface{width: 800, height: 600}
	e := NewEngineWithTimer(surf, nil, &fakeTimer{})

	s := e.State()
	if s.ZoomPercent != 100 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("initial state = %+v, want zoom 100, pan (0, 0)", s)
	}
}

func TestEngine_ZoomAnchoring(t *testing.T) {
	// Zoom 100% -> 110% anchored at a cursor position with a known prior
	// pan: the recomputed pan must satisfy
	//   newPan = centerOffset - (centerOffset - oldPan) * ratio
	// on both axes within floating point tolerance.
	e, _ := newTestEngine(800, 600, 2000, 3000)
	e.Pan(-100, -200) // establish a non-trivial prior pan

	prior := e.State()
	cursorX, cursorY := 500.0, 150.0
	e.Zoom(10, cursorX, cursorY)

	got := e.State()
	if got.ZoomPercent != 110 {
		t.Fatalf("zoom = %v, want 110", got.ZoomPercent)
	}

	ratio := 110.0 / 100.0
	offsetX := cursorX - 400
	offsetY := cursorY - 300
	wantX := offsetX - (offsetX-prior.PanX)*ratio
	wantY := offsetY - (offsetY-prior.PanY)*ratio

	// The expected values are well inside the legal range at 110%, so the
	// clamp must not disturb them.
	if math.Abs(got.PanX-wantX) > 1e-6 {
		t.Errorf("panX = %v, want %v", got.PanX, wantX)
	}
	if math.Abs(got.PanY-wantY) > 1e-6 {
		t.Errorf("panY = %v, want %v", got.PanY, wantY)
	}
}

func TestEngine_ZoomAtBoundIsNoOp(t *testing.T) {
	e, surf := newTestEngine(800, 600, 2000, 3000)

	// Walk down to the minimum.
	for i := 0; i < 20; i++ {
		e.Zoom(-10, 400, 300)
	}
	if got := e.State().ZoomPercent; got != 10 {
		t.Fatalf("zoom after repeated zoom-out = %v, want 10", got)
	}

	applied := surf.applied
	pan := e.State()
	var reported int
	e.OnStateChange(func(State) { reported++ })

	e.Zoom(-10, 400, 300)

	if surf.applied != applied {
		t.Error("zoom-out at minimum reapplied the transform")
	}
	if reported != 0 {
		t.Error("zoom-out at minimum notified listeners")
	}
	if got := e.State(); got.PanX != pan.PanX || got.PanY != pan.PanY {
		t.Errorf("zoom-out at minimum altered pan: %+v -> %+v", pan, got)
	}
}

func TestEngine_ZoomBoundsUnderSequences(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)

	deltas := []float64{10, -10, 10, 10, -10, 10}
	for i := 0; i < 300; i++ {
		e.Zoom(deltas[i%len(deltas)], float64(i%800), float64(i%600))
		z := e.State().ZoomPercent
		if z < 10 || z > 1000 {
			t.Fatalf("zoom left bounds after %d steps: %v", i+1, z)
		}
	}
	for i := 0; i < 200; i++ {
		e.Zoom(10, 400, 300)
	}
	if got := e.State().ZoomPercent; got != 1000 {
		t.Errorf("zoom = %v, want max 1000", got)
	}
}

func TestEngine_FitInvariantAfterOperations(t *testing.T) {
	// Scenario B: content 400x200 in an 800x600 viewport fits entirely at
	// any zoom from 10 to 100 percent, so pan stays (0, 0) whatever the
	// operation.
	e, _ := newTestEngine(800, 600, 400, 200)

	e.Zoom(-10, 10, 10)
	e.Pan(500, -500)
	e.Zoom(-10, 790, 590)
	e.Pan(-1e9, 1e9)

	s := e.State()
	if s.PanX != 0 || s.PanY != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0) while content fits", s.PanX, s.PanY)
	}
}

func TestEngine_ScenarioA(t *testing.T) {
	// Content 2000x3000 at 100% in 800x600; zoom +10 at the viewport
	// center leaves pan at the centered/top position, now with the larger
	// legal range.
	e, _ := newTestEngine(800, 600, 2000, 3000)
	e.Zoom(10, 400, 300)

	s := e.State()
	if s.ZoomPercent != 110 {
		t.Errorf("zoom = %v, want 110", s.ZoomPercent)
	}
	if s.PanX != 0 || s.PanY != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0) for center-anchored zoom from rest", s.PanX, s.PanY)
	}
	// panY must sit inside the new legal range [-2700, 0].
	if s.PanY < -(s.ScaledHeight()-600) || s.PanY > 0 {
		t.Errorf("panY = %v outside legal range [%v, 0]", s.PanY, -(s.ScaledHeight() - 600))
	}
}

func TestEngine_Reset(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)
	e.Zoom(10, 650, 120)
	e.Pan(-300, -900)

	e.Reset()

	s := e.State()
	if s.ZoomPercent != 100 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("state after Reset = %+v, want (100, 0, 0)", s)
	}
}

func TestEngine_FitToWidth(t *testing.T) {
	// Scenario C: content width 1600 in an 800px viewport fits at 50%.
	e, _ := newTestEngine(800, 600, 1600, 2000)
	e.Pan(-100, -100)

	e.FitToWidth()

	s := e.State()
	if s.ZoomPercent != 50 {
		t.Errorf("zoom = %v, want 50", s.ZoomPercent)
	}
	if s.PanX != 0 || s.PanY != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0)", s.PanX, s.PanY)
	}
}

func TestEngine_FitToWidthWithoutContentIsNoOp(t *testing.T) {
	surf := &testSurface{width: 800, height: 600}
	e := NewEngineWithTimer(surf, nil, &fakeTimer{})

	e.FitToWidth()

	if got := e.State().ZoomPercent; got != 100 {
		t.Errorf("zoom = %v, want 100 when content size is unknown", got)
	}
}

func TestEngine_Restore(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)

	e.Restore(150, -100, -500)
	s := e.State()
	if s.ZoomPercent != 150 || s.PanX != -100 || s.PanY != -500 {
		t.Errorf("state after Restore = %+v, want (150, -100, -500)", s)
	}

	// Out-of-range values clamp, never reject.
	e.Restore(99999, 1e9, 1e9)
	s = e.State()
	if s.ZoomPercent != 1000 {
		t.Errorf("zoom = %v, want clamped 1000", s.ZoomPercent)
	}
	if s.PanY != 0 {
		t.Errorf("panY = %v, want clamped 0", s.PanY)
	}

	// Non-finite values fall back to the defaults.
	e.Restore(math.NaN(), math.Inf(1), math.NaN())
	s = e.State()
	if s.ZoomPercent != 100 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("state after non-finite Restore = %+v, want (100, 0, 0)", s)
	}
}

func TestEngine_ScrollTopBottom(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)

	e.ScrollToBottom()
	if got := e.State().PanY; got != -2400 {
		t.Errorf("panY after ScrollToBottom = %v, want -2400", got)
	}

	e.ScrollToTop()
	if got := e.State().PanY; got != 0 {
		t.Errorf("panY after ScrollToTop = %v, want 0", got)
	}

	// When the content fits, bottom is the same as top.
	small, _ := newTestEngine(800, 600, 400, 200)
	small.ScrollToBottom()
	if got := small.State().PanY; got != 0 {
		t.Errorf("panY after ScrollToBottom with fitting content = %v, want 0", got)
	}
}

func TestEngine_ScrollPage(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)

	e.ScrollPage(-1)
	if got := e.State().PanY; got != -480 {
		t.Errorf("panY after page down = %v, want -480", got)
	}
	e.ScrollPage(1)
	if got := e.State().PanY; got != 0 {
		t.Errorf("panY after page up = %v, want 0", got)
	}
}

func TestEngine_StateChangeNotification(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)

	var reports []State
	e.OnStateChange(func(s State) { reports = append(reports, s) })

	e.Zoom(10, 400, 300)
	e.Pan(0, -100)
	e.Reset()

	if len(reports) != 3 {
		t.Fatalf("got %d state reports, want 3", len(reports))
	}
	if reports[0].ZoomPercent != 110 {
		t.Errorf("first report zoom = %v, want 110", reports[0].ZoomPercent)
	}
	if reports[2].ZoomPercent != 100 || reports[2].PanY != 0 {
		t.Errorf("final report = %+v, want reset state", reports[2])
	}
}

func TestEngine_SetContentSizeResetsState(t *testing.T) {
	e, _ := newTestEngine(800, 600, 2000, 3000)
	e.Zoom(10, 100, 100)
	e.Pan(-50, -700)

	e.SetContentSize(1500, 2500)

	s := e.State()
	if s.ZoomPercent != 100 || s.PanX != 0 || s.PanY != 0 {
		t.Errorf("state after re-capture = %+v, want (100, 0, 0)", s)
	}
	if s.ContentWidth != 1500 || s.ContentHeight != 2500 {
		t.Errorf("content size = %vx%v, want 1500x2500", s.ContentWidth, s.ContentHeight)
	}
}
