// Package viewport implements the zoom/pan state engine for a rendered
// document surface. It owns the viewport state, converts input gestures into
// state mutations, keeps the state within legal bounds, and derives the
// scrollbar-style indicator geometry shown while the view moves.
package viewport

import "time"

// State holds the viewport transform state for one document view.
// It is owned by the Engine and mutated only through Engine operations.
type State struct {
	// ZoomPercent is the current zoom level, always within
	// [Config.ZoomMin, Config.ZoomMax] after any operation.
	ZoomPercent float64

	// PanX and PanY are the translation applied to the content surface,
	// in viewport pixels.
	PanX float64
	PanY float64

	// ContentWidth and ContentHeight are the unscaled natural size of the
	// rendered content, captured once after initial layout settles.
	ContentWidth  float64
	ContentHeight float64
}

// DefaultState returns the state a freshly opened document view starts with.
func DefaultState() State {
	return State{ZoomPercent: 100}
}

// Scale returns the zoom level as a scale factor (100% -> 1.0).
func (s State) Scale() float64 {
	return s.ZoomPercent / 100
}

// ScaledWidth returns the content width at the current zoom level.
func (s State) ScaledWidth() float64 {
	return s.ContentWidth * s.ZoomPercent / 100
}

// ScaledHeight returns the content height at the current zoom level.
func (s State) ScaledHeight() float64 {
	return s.ContentHeight * s.ZoomPercent / 100
}

// Config configures the engine behavior and indicator timing
type Config struct {
	// Zoom limits and step, in percent
	ZoomMin  float64 // default 10
	ZoomMax  float64 // default 1000
	ZoomStep float64 // default 10

	// Keyboard panning
	ArrowPanStep       float64 // default 40 (px per arrow key)
	PageScrollFraction float64 // default 0.8 (of viewport height)

	// Indicators
	MinThumbPx         float64       // default 20
	IndicatorHideDelay time.Duration // default 1.5s

	// Content measurement settle delay after (re)load
	SettleDelay time.Duration // default 150ms
}

func (c *Config) withDefaults() Config {
	d := Config{
		ZoomMin:            10,
		ZoomMax:            1000,
		ZoomStep:           10,
		ArrowPanStep:       40,
		PageScrollFraction: 0.8,
		MinThumbPx:         20,
		IndicatorHideDelay: 1500 * time.Millisecond,
		SettleDelay:        150 * time.Millisecond,
	}
	if c == nil {
		return d
	}
	if c.ZoomMin != 0 {
		d.ZoomMin = c.ZoomMin
	}
	if c.ZoomMax != 0 {
		d.ZoomMax = c.ZoomMax
	}
	if c.ZoomStep != 0 {
		d.ZoomStep = c.ZoomStep
	}
	if c.ArrowPanStep != 0 {
		d.ArrowPanStep = c.ArrowPanStep
	}
	if c.PageScrollFraction != 0 {
		d.PageScrollFraction = c.PageScrollFraction
	}
	if c.MinThumbPx != 0 {
		d.MinThumbPx = c.MinThumbPx
	}
	if c.IndicatorHideDelay != 0 {
		d.IndicatorHideDelay = c.IndicatorHideDelay
	}
	if c.SettleDelay != 0 {
		d.SettleDelay = c.SettleDelay
	}
	return d
}
