package viewport

import "math"

// Surface abstracts the render surface the engine drives. Exactly one content
// node receives the transform per ApplyTransform call; the viewport size is
// read live each time geometry is needed, never cached by the engine.
type Surface interface {
	// ApplyTransform applies a center-origin affine transform equivalent to
	// CSS "translate(panX, panY) scale(scale)" to the content node.
	ApplyTransform(scale, panX, panY float64)

	// ViewportSize returns the current viewport dimensions in pixels.
	ViewportSize() (width, height float64)
}

// Engine owns the viewport state for one open document view. It is
// constructed once per view and destroyed with it; operations run
// synchronously on the calling goroutine and either apply atomically or are a
// clean no-op. The Engine is not safe for concurrent use — it is confined to
// the session loop that owns the view.
type Engine struct {
	cfg        Config
	state      State
	surface    Surface
	indicators *Indicators
	listeners  []func(State)
}

// NewEngine creates an engine bound to the given surface. A nil cfg uses
// defaults.
func NewEngine(surface Surface, cfg *Config) *Engine {
	return NewEngineWithTimer(surface, cfg, NewTimer())
}

// NewEngineWithTimer is NewEngine with an injected indicator auto-hide timer.
func NewEngineWithTimer(surface Surface, cfg *Config, timer Timer) *Engine {
	c := cfg.withDefaults()
	return &Engine{
		cfg:        c,
		state:      DefaultState(),
		surface:    surface,
		indicators: newIndicators(c, timer),
	}
}

// State returns a copy of the current viewport state.
func (e *Engine) State() State {
	return e.state
}

// Config returns the engine configuration after defaulting.
func (e *Engine) Config() Config {
	return e.cfg
}

// Indicators returns the indicator controller for this view.
func (e *Engine) Indicators() *Indicators {
	return e.indicators
}

// OnStateChange registers a listener invoked after every successful
// (non-no-op) mutating operation with the post-clamp state.
func (e *Engine) OnStateChange(fn func(State)) {
	e.listeners = append(e.listeners, fn)
}

// SetContentSize captures the natural (unscaled) content dimensions and
// resets the viewport state, as happens on initial load and on explicit
// re-layout/reload.
func (e *Engine) SetContentSize(width, height float64) {
	e.state = DefaultState()
	e.state.ContentWidth = width
	e.state.ContentHeight = height
	e.commit()
}

// Zoom changes the zoom level by deltaPercent, anchored at the viewport
// coordinates (cursorX, cursorY): the document point under the cursor stays
// under the same screen point after the zoom. Already being at a zoom bound
// makes this a clean no-op with no transform reapplication, indicator update,
// or listener notification.
func (e *Engine) Zoom(deltaPercent, cursorX, cursorY float64) {
	oldZoom := e.state.ZoomPercent
	newZoom := clampZoom(oldZoom+deltaPercent, e.cfg.ZoomMin, e.cfg.ZoomMax)
	if math.Abs(newZoom-oldZoom) < 0.01 {
		return
	}

	vw, vh := e.surface.ViewportSize()

	// With a center-origin transform the anchor math works on the cursor's
	// offset from viewport center: the content point under the cursor sits at
	// centerOffset - oldPan in pre-scale units times the old scale, so the
	// new pan that keeps it fixed is
	//   newPan = centerOffset - (centerOffset - oldPan) * newScale/oldScale
	// independently per axis, for arbitrary prior pan values.
	ratio := newZoom / oldZoom
	offsetX := cursorX - vw/2
	offsetY := cursorY - vh/2
	e.state.PanX = offsetX - (offsetX-e.state.PanX)*ratio
	e.state.PanY = offsetY - (offsetY-e.state.PanY)*ratio
	e.state.ZoomPercent = newZoom
	e.commit()
}

// ZoomAtCenter zooms anchored at the viewport center, as keyboard-triggered
// zoom does when no cursor position is available.
func (e *Engine) ZoomAtCenter(deltaPercent float64) {
	vw, vh := e.surface.ViewportSize()
	e.Zoom(deltaPercent, vw/2, vh/2)
}

// Pan shifts the content by (deltaX, deltaY) viewport pixels. No scale
// interaction; the result is clamped to the legal pan range.
func (e *Engine) Pan(deltaX, deltaY float64) {
	e.state.PanX += deltaX
	e.state.PanY += deltaY
	e.commit()
}

// Reset restores zoom 100% and pan (0, 0).
func (e *Engine) Reset() {
	e.state.ZoomPercent = 100
	e.state.PanX = 0
	e.state.PanY = 0
	e.commit()
}

// FitToWidth sets the zoom so the content width exactly fills the viewport
// width, and resets the pan. A zero content width is a no-op.
func (e *Engine) FitToWidth() {
	if e.state.ContentWidth <= 0 {
		return
	}
	vw, _ := e.surface.ViewportSize()
	e.state.ZoomPercent = clampZoom(vw/e.state.ContentWidth*100, e.cfg.ZoomMin, e.cfg.ZoomMax)
	e.state.PanX = 0
	e.state.PanY = 0
	e.commit()
}

// Restore replaces the state wholesale with host-provided values, e.g. when a
// view is brought back after a tab switch. Values are clamped, never
// rejected; non-finite inputs fall back to the defaults (zoom 100, pan 0).
// No cursor-anchoring math is involved.
func (e *Engine) Restore(zoom, panX, panY float64) {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		zoom = 100
	}
	if math.IsNaN(panX) || math.IsInf(panX, 0) {
		panX = 0
	}
	if math.IsNaN(panY) || math.IsInf(panY, 0) {
		panY = 0
	}
	e.state.ZoomPercent = zoom
	e.state.PanX = panX
	e.state.PanY = panY
	e.commit()
}

// ScrollToTop jumps to the top edge of the content (Home).
func (e *Engine) ScrollToTop() {
	e.state.PanY = 0
	e.commit()
}

// ScrollToBottom jumps to the bottom edge of the content (End). When the
// content fits the viewport vertically this is pan 0.
func (e *Engine) ScrollToBottom() {
	_, vh := e.surface.ViewportSize()
	overflow := e.state.ScaledHeight() - vh
	if overflow <= 0 {
		e.state.PanY = 0
	} else {
		e.state.PanY = -overflow
	}
	e.commit()
}

// ScrollPage pans vertically by direction (+1 up, -1 down) times the
// configured fraction of the viewport height.
func (e *Engine) ScrollPage(direction float64) {
	_, vh := e.surface.ViewportSize()
	e.Pan(0, direction*e.cfg.PageScrollFraction*vh)
}

// ScrollTo sets the pan on one axis directly (thumb drag and track-click
// jumps), leaving the other axis untouched.
func (e *Engine) ScrollTo(axis Axis, pan float64) {
	switch axis {
	case AxisHorizontal:
		e.state.PanX = pan
	case AxisVertical:
		e.state.PanY = pan
	}
	e.commit()
}

// commit clamps the state, applies the transform to the surface, updates the
// indicators, and notifies listeners. Every mutating operation funnels
// through here so the invariants hold at every observable point.
func (e *Engine) commit() {
	vw, vh := e.surface.ViewportSize()
	e.state = Clamp(e.state, vw, vh, e.cfg)
	e.surface.ApplyTransform(e.state.Scale(), e.state.PanX, e.state.PanY)
	e.indicators.Update(e.state, vw, vh)
	for _, fn := range e.listeners {
		fn(e.state)
	}
}
