package viewport

// SessionKind discriminates the active interaction session.
type SessionKind int

const (
	SessionNone SessionKind = iota
	SessionMiddleDrag
	SessionThumbDrag
)

// Session is the transient state of one in-flight gesture. At most one
// session is active at a time; attempts to start another kind while one is
// active are ignored until the terminating mouse-up is observed.
type Session struct {
	Kind SessionKind

	// MiddleDrag: last observed mouse position. Panning is incremental
	// (movement since the previous event, not since drag start), so this is
	// advanced on every mousemove.
	LastX float64
	LastY float64

	// ThumbDrag: axis being dragged, the mouse coordinate on that axis at
	// drag start, and the pan value on that axis at drag start.
	Axis       Axis
	StartCoord float64
	StartPan   float64
}
