package viewport

// Boundary policy: content is horizontally centered and vertically
// top-aligned within the viewport at rest, so pan = (0, 0) is always a legal,
// content-visible position.
//
// Clamping is derived purely from (zoom, content size, viewport size); it
// never depends on clamp history and is idempotent.

func clampZoom(zoom, min, max float64) float64 {
	if zoom < min {
		return min
	}
	if zoom > max {
		return max
	}
	return zoom
}

// clampPanX constrains a horizontal pan. When the scaled content fits the
// viewport the pan is forced to 0 (centered); otherwise it may shift up to
// half the overflow either way, exposing the left or right edge exactly at
// the extremes.
func clampPanX(panX, scaledW, viewportW float64) float64 {
	overflow := scaledW - viewportW
	if overflow <= 0 {
		return 0
	}
	half := overflow / 2
	if panX > half {
		return half
	}
	if panX < -half {
		return -half
	}
	return panX
}

// clampPanY constrains a vertical pan. When the scaled content fits the
// viewport the pan is forced to 0 (top-aligned); otherwise the legal range is
// [-(overflow), 0] with the top edge visible at 0 and the bottom edge visible
// at the negative extreme.
func clampPanY(panY, scaledH, viewportH float64) float64 {
	overflow := scaledH - viewportH
	if overflow <= 0 {
		return 0
	}
	if panY > 0 {
		return 0
	}
	if panY < -overflow {
		return -overflow
	}
	return panY
}

// Clamp returns s with zoom and pan constrained to their legal ranges for the
// given viewport size.
func Clamp(s State, viewportW, viewportH float64, cfg Config) State {
	s.ZoomPercent = clampZoom(s.ZoomPercent, cfg.ZoomMin, cfg.ZoomMax)
	s.PanX = clampPanX(s.PanX, s.ScaledWidth(), viewportW)
	s.PanY = clampPanY(s.PanY, s.ScaledHeight(), viewportH)
	return s
}
