package surface

import "testing"

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		scale    float64
		panX     float64
		panY     float64
		expected string
	}{
		{"identity", 1, 0, 0, "translate(0px, 0px) scale(1)"},
		{"zoomed in with pan", 1.1, -120, -205, "translate(-120px, -205px) scale(1.1)"},
		{"zoomed out", 0.5, 0, 0, "translate(0px, 0px) scale(0.5)"},
		{"fractional pan", 2, 10.5, -0.25, "translate(10.5px, -0.25px) scale(2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transform(tt.scale, tt.panX, tt.panY); got != tt.expected {
				t.Errorf("Transform() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCSSSurface_DeliversToSink(t *testing.T) {
	var got []string
	s := NewCSSSurface(func(transform string) { got = append(got, transform) })
	s.SetViewportSize(800, 600)

	if w, h := s.ViewportSize(); w != 800 || h != 600 {
		t.Errorf("ViewportSize() = (%v, %v), want (800, 600)", w, h)
	}

	s.ApplyTransform(1.5, -30, -60)
	if len(got) != 1 || got[0] != "translate(-30px, -60px) scale(1.5)" {
		t.Errorf("sink received %v", got)
	}
}

func TestMemorySurface_Records(t *testing.T) {
	s := NewMemorySurface(800, 600)

	s.ApplyTransform(1.1, -10, -20)
	s.ApplyTransform(1.2, -15, -25)

	scale, panX, panY := s.Last()
	if scale != 1.2 || panX != -15 || panY != -25 {
		t.Errorf("Last() = (%v, %v, %v), want (1.2, -15, -25)", scale, panX, panY)
	}
	if got := s.AppliedCount(); got != 2 {
		t.Errorf("AppliedCount() = %d, want 2", got)
	}
}
