package physics

import (
	"math/rand"
	"testing"
)

func TestCount(t *testing.T) {
	p := DefaultSeedParams()
	tests := []struct {
		name          string
		width, height int
		expected      int
	}{
		{"desktop", 1000, 750, 30},
		{"capped", 3000, 2000, 150},
		{"tiny", 100, 100, 0},
		{"zero width", 0, 750, 0},
		{"negative", -10, 750, 0},
		{"just below one", 249, 100, 0},
		{"exactly one", 250, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.width, tt.height, p); got != tt.expected {
				t.Errorf("expected %d particles, got %d", tt.expected, got)
			}
		})
	}
}

func TestSeedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := Seed(1000, 750, rng, DefaultSeedParams())

	if pool.Len() != 30 {
		t.Fatalf("expected 30 particles, got %d", pool.Len())
	}

	for i := 0; i < pool.Len(); i++ {
		p := pool.At(i)
		if p.X < 0 || p.X >= 1000 || p.Y < 0 || p.Y >= 750 {
			t.Errorf("particle %d out of bounds: (%f, %f)", i, p.X, p.Y)
		}
		if p.VX < -0.25 || p.VX > 0.25 || p.VY < -0.25 || p.VY > 0.25 {
			t.Errorf("particle %d velocity out of range: (%f, %f)", i, p.VX, p.VY)
		}
		if p.Radius < 1.0 || p.Radius >= 2.5 {
			t.Errorf("particle %d radius out of range: %f", i, p.Radius)
		}
	}
}

func TestSeedCapped(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pool := Seed(3000, 2000, rng, DefaultSeedParams())
	if pool.Len() != 150 {
		t.Errorf("expected 150 particles, got %d", pool.Len())
	}
}

func TestSeedDeterministic(t *testing.T) {
	a := Seed(800, 600, rand.New(rand.NewSource(42)), DefaultSeedParams())
	b := Seed(800, 600, rand.New(rand.NewSource(42)), DefaultSeedParams())

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("particle %d differs for the same seed", i)
		}
	}
}

func TestRadiusInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vp := NewViewport(1200, 800)
	scene := NewScene(vp, DefaultSeedParams(), DefaultPointerParams(), rng)
	radii := make([]float64, scene.Pool.Len())
	for i := range radii {
		radii[i] = scene.Pool.At(i).Radius
	}

	integ := DefaultIntegrator()
	for frame := 0; frame < 500; frame++ {
		if frame%50 == 0 {
			scene.Pointer.Update(rng.Float64()*1200, rng.Float64()*800)
		}
		integ.Step(scene.Pool, scene.Pointer, vp)
	}

	for i, r := range radii {
		if scene.Pool.At(i).Radius != r {
			t.Errorf("particle %d radius changed: %f -> %f", i, r, scene.Pool.At(i).Radius)
		}
	}
}

func TestResizeKeepsPool(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	vp := NewViewport(1000, 750)
	scene := NewScene(vp, DefaultSeedParams(), DefaultPointerParams(), rng)
	before := scene.Pool.Snapshot()

	vp.Resize(3000, 2000)

	if scene.Pool.Len() != len(before) {
		t.Fatalf("pool resampled on resize: %d -> %d", len(before), scene.Pool.Len())
	}
	for i := range before {
		if *scene.Pool.At(i) != before[i] {
			t.Errorf("particle %d moved on resize", i)
		}
	}
}

type fakeResizer struct{ w, h, calls int }

func (f *fakeResizer) Resize(w, h int) { f.w, f.h = w, h; f.calls++ }

func TestViewportResize(t *testing.T) {
	vp := NewViewport(640, 480)
	r := &fakeResizer{}
	vp.Attach(r)

	vp.Resize(1024, 768)
	if w, h := vp.Size(); w != 1024 || h != 768 {
		t.Errorf("expected 1024x768, got %dx%d", w, h)
	}
	if r.calls != 1 || r.w != 1024 || r.h != 768 {
		t.Errorf("surface not resized: %+v", r)
	}

	vp.Resize(-5, 10)
	if w, _ := vp.Size(); w != 0 {
		t.Errorf("expected negative width to clamp to 0, got %d", w)
	}

	if x, y := NewViewport(1000, 750).Center(); x != 500 || y != 375 {
		t.Errorf("expected centre (500, 375), got (%f, %f)", x, y)
	}
}

func TestMountThenSeed(t *testing.T) {
	vp := NewViewport(1000, 750)
	scene := Mount(vp, DefaultPointerParams())
	if scene.Pool.Len() != 0 {
		t.Fatalf("mounted scene has %d particles before seeding", scene.Pool.Len())
	}
	if x, y := scene.Pointer.Position(); x != 500 || y != 375 {
		t.Errorf("pointer at (%f, %f), want viewport centre", x, y)
	}

	vp.Resize(2000, 1500)
	scene.Seed(rand.New(rand.NewSource(1)), DefaultSeedParams())
	if want := Count(2000, 1500, DefaultSeedParams()); scene.Pool.Len() != want {
		t.Errorf("seeded %d particles, want %d for the current size", scene.Pool.Len(), want)
	}
}
