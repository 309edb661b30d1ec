// Package bridge connects a viewport engine to an external host over a
// JSON message channel. The bridge owns only the payload contract; the
// transport is pluggable, with a reference websocket server in this package.
package bridge

// Host command actions. Each command is a discriminated JSON message with an
// "action" field; unknown actions are logged and dropped, never fatal.
const (
	ActionZoom         = "zoom"
	ActionPan          = "pan"
	ActionReset        = "reset"
	ActionRestore      = "restore"
	ActionFitToWidth   = "fitToWidth"
	ActionScrollTop    = "scrollTop"
	ActionScrollBottom = "scrollBottom"

	// View reports: the view pushes its viewport size and the natural
	// (unscaled) content size through the same channel.
	ActionResize  = "resize"
	ActionMeasure = "measure"
)

// Command is a host-to-engine message. Fields are pointers so missing values
// are distinguishable from zero values and can default independently.
type Command struct {
	Action string `json:"action"`

	// zoom
	Delta   *float64 `json:"delta,omitempty"`
	CursorX *float64 `json:"cursorX,omitempty"`
	CursorY *float64 `json:"cursorY,omitempty"`

	// pan
	DeltaX *float64 `json:"deltaX,omitempty"`
	DeltaY *float64 `json:"deltaY,omitempty"`

	// restore
	Zoom *float64 `json:"zoom,omitempty"`
	PanX *float64 `json:"panX,omitempty"`
	PanY *float64 `json:"panY,omitempty"`

	// resize / measure
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// StateReport is the engine-to-host message emitted after every successful
// non-no-op mutating operation. The host owns any persistence; the engine
// never persists state itself.
type StateReport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}
