package bridge

import (
	"encoding/json"
	"log"

	"github.com/recera/viewpane/pkg/viewport"
)

// SendFunc delivers a state report to the host.
type SendFunc func(StateReport)

// Bridge decodes host commands, drives the engine, and forwards state reports
// back to the host. Invalid values are clamped or defaulted, never rejected;
// a malformed or unknown message is logged and dropped so the dispatch loop
// never dies.
type Bridge struct {
	engine   *viewport.Engine
	send     SendFunc
	onResize func(width, height float64)
}

// New creates a bridge for the given engine. send may be nil for views that
// do not report state back to a host.
func New(engine *viewport.Engine, send SendFunc) *Bridge {
	b := &Bridge{engine: engine, send: send}
	engine.OnStateChange(func(s viewport.State) {
		if b.send != nil {
			b.send(StateReport{Zoom: s.ZoomPercent, PanX: s.PanX, PanY: s.PanY})
		}
	})
	return b
}

// OnResize registers a handler for "resize" reports from the view. The
// surface owns the viewport size, so the bridge only forwards it.
func (b *Bridge) OnResize(fn func(width, height float64)) {
	b.onResize = fn
}

// Handle decodes and executes one host message.
func (b *Bridge) Handle(data []byte) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		log.Printf("[Bridge] Dropping malformed message: %v", err)
		return
	}
	b.Dispatch(cmd)
}

// Dispatch executes one decoded host command.
func (b *Bridge) Dispatch(cmd Command) {
	switch cmd.Action {
	case ActionZoom:
		delta := valueOr(cmd.Delta, 0)
		if cmd.CursorX == nil || cmd.CursorY == nil {
			// Keyboard-style zoom: anchor at viewport center.
			b.engine.ZoomAtCenter(delta)
		} else {
			b.engine.Zoom(delta, *cmd.CursorX, *cmd.CursorY)
		}

	case ActionPan:
		b.engine.Pan(valueOr(cmd.DeltaX, 0), valueOr(cmd.DeltaY, 0))

	case ActionReset:
		b.engine.Reset()

	case ActionRestore:
		b.engine.Restore(valueOr(cmd.Zoom, 100), valueOr(cmd.PanX, 0), valueOr(cmd.PanY, 0))

	case ActionFitToWidth:
		b.engine.FitToWidth()

	case ActionScrollTop:
		b.engine.ScrollToTop()

	case ActionScrollBottom:
		b.engine.ScrollToBottom()

	case ActionResize:
		if b.onResize != nil {
			b.onResize(valueOr(cmd.Width, 0), valueOr(cmd.Height, 0))
		}

	case ActionMeasure:
		b.engine.SetContentSize(valueOr(cmd.Width, 0), valueOr(cmd.Height, 0))

	default:
		log.Printf("[Bridge] Ignoring unknown action %q", cmd.Action)
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
