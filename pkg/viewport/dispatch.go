package viewport

// Input event classification. The dispatcher maps raw wheel/keyboard/mouse
// events onto engine operations and owns the gesture session state machine.
// Handlers return true when the event was consumed, so the embedder can
// suppress the platform's native scroll/zoom for that event — the engine is
// the sole source of truth for viewport position.

// WheelEvent is a raw wheel event in viewport-relative coordinates.
type WheelEvent struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Ctrl, Shift    bool
}

// Key identifies the keyboard keys the dispatcher reacts to.
type Key int

const (
	KeyNone Key = iota
	KeyPlus     // '+' or '='
	KeyMinus
	KeyZero
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// KeyEvent is a raw keydown event.
type KeyEvent struct {
	Key  Key
	Ctrl bool
}

// MouseButton numbering follows the DOM convention.
type MouseButton int

const (
	MouseLeft   MouseButton = 0
	MouseMiddle MouseButton = 1
	MouseRight  MouseButton = 2
)

// MouseTarget identifies what the mouse event landed on.
type MouseTarget int

const (
	TargetContent MouseTarget = iota
	TargetThumbVertical
	TargetThumbHorizontal
	TargetTrackVertical
	TargetTrackHorizontal
)

// MouseEvent is a raw mouse event in viewport-relative coordinates.
type MouseEvent struct {
	X, Y   float64
	Button MouseButton
	Target MouseTarget
}

// Dispatcher classifies raw input events into engine operations.
type Dispatcher struct {
	engine  *Engine
	session Session
}

// NewDispatcher creates a dispatcher for the given engine.
func NewDispatcher(e *Engine) *Dispatcher {
	return &Dispatcher{engine: e}
}

// Session returns the current interaction session.
func (d *Dispatcher) Session() Session {
	return d.session
}

// Wheel handles a wheel event. Ctrl-wheel zooms one step anchored at the
// cursor (wheel-up in, wheel-down out); shift-wheel repurposes the vertical
// wheel as horizontal pan; an unmodified wheel pans.
func (d *Dispatcher) Wheel(ev WheelEvent) bool {
	switch {
	case ev.Ctrl:
		step := d.engine.cfg.ZoomStep
		if ev.DeltaY > 0 {
			step = -step
		}
		d.engine.Zoom(step, ev.X, ev.Y)
	case ev.Shift:
		d.engine.Pan(-ev.DeltaY, 0)
	default:
		d.engine.Pan(-ev.DeltaX, -ev.DeltaY)
	}
	return true
}

// KeyDown handles a keydown event per the shortcut table: ctrl +/- zoom at
// viewport center, ctrl 0 reset, arrows pan one step, PageUp/PageDown pan a
// viewport-height fraction, Home/End jump to the top/bottom edge.
func (d *Dispatcher) KeyDown(ev KeyEvent) bool {
	if ev.Ctrl {
		switch ev.Key {
		case KeyPlus:
			d.engine.ZoomAtCenter(d.engine.cfg.ZoomStep)
		case KeyMinus:
			d.engine.ZoomAtCenter(-d.engine.cfg.ZoomStep)
		case KeyZero:
			d.engine.Reset()
		default:
			return false
		}
		return true
	}

	step := d.engine.cfg.ArrowPanStep
	switch ev.Key {
	case KeyArrowUp:
		d.engine.Pan(0, step)
	case KeyArrowDown:
		d.engine.Pan(0, -step)
	case KeyArrowLeft:
		d.engine.Pan(step, 0)
	case KeyArrowRight:
		d.engine.Pan(-step, 0)
	case KeyPageUp:
		d.engine.ScrollPage(1)
	case KeyPageDown:
		d.engine.ScrollPage(-1)
	case KeyHome:
		d.engine.ScrollToTop()
	case KeyEnd:
		d.engine.ScrollToBottom()
	default:
		return false
	}
	return true
}

// MouseDown begins a gesture session or performs a track-click jump. A
// mousedown while another session is active is ignored.
func (d *Dispatcher) MouseDown(ev MouseEvent) bool {
	if d.session.Kind != SessionNone {
		return false
	}

	if ev.Button == MouseMiddle {
		d.session = Session{Kind: SessionMiddleDrag, LastX: ev.X, LastY: ev.Y}
		return true
	}
	if ev.Button != MouseLeft {
		return false
	}

	switch ev.Target {
	case TargetThumbVertical:
		d.session = Session{
			Kind:       SessionThumbDrag,
			Axis:       AxisVertical,
			StartCoord: ev.Y,
			StartPan:   d.engine.state.PanY,
		}
	case TargetThumbHorizontal:
		d.session = Session{
			Kind:       SessionThumbDrag,
			Axis:       AxisHorizontal,
			StartCoord: ev.X,
			StartPan:   d.engine.state.PanX,
		}
	case TargetTrackVertical:
		d.trackJump(AxisVertical, ev.Y)
	case TargetTrackHorizontal:
		d.trackJump(AxisHorizontal, ev.X)
	default:
		return false
	}
	return true
}

// MouseMove advances the active drag session, if any.
func (d *Dispatcher) MouseMove(ev MouseEvent) {
	switch d.session.Kind {
	case SessionMiddleDrag:
		dx := ev.X - d.session.LastX
		dy := ev.Y - d.session.LastY
		d.session.LastX = ev.X
		d.session.LastY = ev.Y
		d.engine.Pan(dx, dy)

	case SessionThumbDrag:
		coord := ev.Y
		if d.session.Axis == AxisHorizontal {
			coord = ev.X
		}
		scrollable, maxTravel := d.axisExtents(d.session.Axis)
		if scrollable <= 0 || maxTravel <= 0 {
			return
		}
		panDelta := (coord - d.session.StartCoord) / maxTravel * scrollable
		d.engine.ScrollTo(d.session.Axis, d.session.StartPan-panDelta)
	}
}

// MouseUp ends the active session when its terminating button is released.
func (d *Dispatcher) MouseUp(ev MouseEvent) {
	switch d.session.Kind {
	case SessionMiddleDrag:
		if ev.Button == MouseMiddle {
			d.session = Session{}
		}
	case SessionThumbDrag:
		if ev.Button == MouseLeft {
			d.session = Session{}
		}
	}
}

// trackJump converts a click on the indicator track into a direct pan: the
// thumb center moves to the click coordinate.
func (d *Dispatcher) trackJump(axis Axis, coord float64) {
	scrollable, maxTravel := d.axisExtents(axis)
	if scrollable <= 0 || maxTravel <= 0 {
		return
	}
	extent, _ := d.thumbGeometry(axis)
	pos := coord - extent/2
	if pos < 0 {
		pos = 0
	}
	if pos > maxTravel {
		pos = maxTravel
	}
	ratio := pos / maxTravel
	if axis == AxisVertical {
		d.engine.ScrollTo(axis, -ratio*scrollable)
	} else {
		d.engine.ScrollTo(axis, scrollable/2-ratio*scrollable)
	}
}

// axisExtents returns the scrollable content extent and the maximum thumb
// travel for one axis. Both are 0 when the content fits the viewport on that
// axis, and callers must short-circuit rather than divide.
func (d *Dispatcher) axisExtents(axis Axis) (scrollable, maxTravel float64) {
	vw, vh := d.engine.surface.ViewportSize()
	s := d.engine.state
	if axis == AxisVertical {
		scrollable = s.ScaledHeight() - vh
	} else {
		scrollable = s.ScaledWidth() - vw
	}
	if scrollable <= 0 {
		return 0, 0
	}
	extent, _ := d.thumbGeometry(axis)
	track := vh
	if axis == AxisHorizontal {
		track = vw
	}
	return scrollable, track - extent
}

func (d *Dispatcher) thumbGeometry(axis Axis) (extent, position float64) {
	vw, vh := d.engine.surface.ViewportSize()
	s := d.engine.state
	if axis == AxisVertical {
		return ThumbGeometry(vh, s.ScaledHeight(), vh, positionRatioY(s, vh), d.engine.cfg.MinThumbPx)
	}
	return ThumbGeometry(vw, s.ScaledWidth(), vw, positionRatioX(s, vw), d.engine.cfg.MinThumbPx)
}
