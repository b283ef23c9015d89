package physics

import (
	"math"
	"testing"
)

func TestForceCoincident(t *testing.T) {
	p := NewPointer(100, 100, DefaultPointerParams())
	fx, fy := p.ForceAt(100, 100)
	if fx != 0 || fy != 0 {
		t.Errorf("expected zero force, got (%f, %f)", fx, fy)
	}
	if math.IsNaN(fx) || math.IsNaN(fy) {
		t.Error("force must not be NaN")
	}
}

func TestForceMagnitude(t *testing.T) {
	p := NewPointer(0, 0, DefaultPointerParams())

	tests := []struct {
		name     string
		x, y     float64
		expected float64
	}{
		{"at radius", 250, 0, 0},
		{"beyond radius", 0, 300, 0},
		{"at 100", 100, 0, 0.03},
		{"at 100 diagonal", 60, 80, 0.03},
		{"near", 0, 1, 249.0 / 250.0 * 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx, fy := p.ForceAt(tt.x, tt.y)
			mag := math.Hypot(fx, fy)
			if math.Abs(mag-tt.expected) > 1e-12 {
				t.Errorf("expected magnitude %f, got %f", tt.expected, mag)
			}
			// directed away from the pointer
			if mag > 0 && fx*tt.x+fy*tt.y <= 0 {
				t.Errorf("force (%f, %f) not directed away from pointer", fx, fy)
			}
		})
	}
}

func TestForceDirection(t *testing.T) {
	p := NewPointer(500, 500, DefaultPointerParams())
	fx, fy := p.ForceAt(400, 500)
	if math.Abs(fx+0.03) > 1e-12 || fy != 0 {
		t.Errorf("expected (-0.03, 0), got (%f, %f)", fx, fy)
	}
}

func TestPointerUpdate(t *testing.T) {
	p := NewPointer(10, 20, DefaultPointerParams())
	p.Update(300, 400)
	if x, y := p.Position(); x != 300 || y != 400 {
		t.Errorf("expected (300, 400), got (%f, %f)", x, y)
	}
}

func TestCoincidentParticleStaysFinite(t *testing.T) {
	p := NewPointer(50, 50, DefaultPointerParams())
	pool := NewPool([]Particle{{X: 50, Y: 50, Radius: 1}})
	integ := DefaultIntegrator()
	vp := NewViewport(100, 100)

	for i := 0; i < 10; i++ {
		integ.Step(pool, p, vp)
	}
	q := pool.At(0)
	for _, v := range []float64{q.X, q.Y, q.VX, q.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("particle state corrupted: %+v", *q)
		}
	}
}
