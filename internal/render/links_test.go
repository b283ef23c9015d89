package render

import (
	"math"
	"testing"

	"github.com/san-kum/plexus/internal/physics"
)

func TestOpacityThreshold(t *testing.T) {
	r := NewLinkRenderer(DefaultPalette)

	tests := []struct {
		name    string
		d       float64
		linked  bool
		opacity float64
	}{
		{"coincident", 0, true, 1},
		{"half", 90, true, 0.5},
		{"just inside", 179.999, true, 0.001 / 180},
		{"at max", 180, false, 0},
		{"beyond", 250, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opacity, ok := r.Opacity(tt.d)
			if ok != tt.linked {
				t.Fatalf("expected linked=%v, got %v", tt.linked, ok)
			}
			if math.Abs(opacity-tt.opacity) > 1e-9 {
				t.Errorf("expected opacity %g, got %g", tt.opacity, opacity)
			}
		})
	}
}

func TestRenderPairLinks(t *testing.T) {
	pool := physics.NewPool([]physics.Particle{
		{X: 0, Y: 0, Radius: 1},
		{X: 180, Y: 0, Radius: 1.5},
		{X: 0, Y: 179.999, Radius: 2},
	})
	r := NewLinkRenderer(DefaultPalette)
	dl := &DisplayList{}

	stats := r.Render(dl, pool)

	if stats.Particles != 3 || stats.PairChecks != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	// (0,1) is exactly 180 apart, (1,2) is ~254 apart; only (0,2) links
	if stats.Links != 1 || dl.Count(OpLine) != 1 {
		t.Fatalf("expected 1 link, got %d (%d ops)", stats.Links, dl.Count(OpLine))
	}
	if dl.Count(OpCircle) != 3 {
		t.Errorf("expected 3 circles, got %d", dl.Count(OpCircle))
	}

	var line Op
	for _, op := range dl.Ops {
		if op.Kind == OpLine {
			line = op
		}
	}
	want := DefaultPalette[(0+2)%3]
	if line.GlowColor != want {
		t.Errorf("expected glow colour %v, got %v", want, line.GlowColor)
	}
	if line.Color.R != want.R || line.Color.G != want.G || line.Color.B != want.B {
		t.Errorf("expected stroke colour %v, got %v", want, line.Color)
	}
	if math.Abs(line.Color.A-0.001/180*0.5) > 1e-9 {
		t.Errorf("expected alpha %g, got %g", 0.001/180*0.5, line.Color.A)
	}
	if line.GlowRadius != 15 || line.LineWidth != 1 {
		t.Errorf("expected glow 15 width 1, got glow %f width %f", line.GlowRadius, line.LineWidth)
	}
}

func TestRenderColours(t *testing.T) {
	particles := make([]physics.Particle, 5)
	for i := range particles {
		particles[i] = physics.Particle{X: float64(i), Y: 0, Radius: 1}
	}
	r := NewLinkRenderer(DefaultPalette)
	dl := &DisplayList{}
	r.Render(dl, physics.NewPool(particles))

	circle := 0
	pairs := [][2]int{}
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	line := 0
	for _, op := range dl.Ops {
		switch op.Kind {
		case OpCircle:
			if op.Color != DefaultPalette[circle%3] {
				t.Errorf("circle %d: expected %v, got %v", circle, DefaultPalette[circle%3], op.Color)
			}
			circle++
		case OpLine:
			i, j := pairs[line][0], pairs[line][1]
			if op.GlowColor != DefaultPalette[(i+j)%3] {
				t.Errorf("link (%d,%d): expected %v, got %v", i, j, DefaultPalette[(i+j)%3], op.GlowColor)
			}
			line++
		}
	}
	if line != 10 {
		t.Errorf("expected 10 links, got %d", line)
	}
}

func TestRenderEmptyPool(t *testing.T) {
	dl := &DisplayList{}
	stats := NewLinkRenderer(DefaultPalette).Render(dl, physics.NewPool(nil))
	if stats != (FrameStats{}) || len(dl.Ops) != 0 {
		t.Errorf("expected nothing drawn, got %+v", stats)
	}
}
