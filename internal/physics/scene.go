package physics

import "math/rand"

// Scene is the per-mount simulation context: the viewport, the pointer and
// the particles seeded from it. It replaces process-wide input state.
type Scene struct {
	Viewport *Viewport
	Pointer  *Pointer
	Pool     *Pool
}

// Mount centres the pointer in vp. The pool stays empty until Seed, so input
// listeners can be wired to the scene first.
func Mount(vp *Viewport, pointer PointerParams) *Scene {
	cx, cy := vp.Center()
	return &Scene{
		Viewport: vp,
		Pointer:  NewPointer(cx, cy, pointer),
		Pool:     NewPool(nil),
	}
}

// Seed replaces the pool with particles sampled for the viewport's current size.
func (s *Scene) Seed(rng *rand.Rand, params SeedParams) {
	w, h := s.Viewport.Size()
	s.Pool = Seed(w, h, rng, params)
}

// NewScene mounts a scene on vp and seeds it.
func NewScene(vp *Viewport, seed SeedParams, pointer PointerParams, rng *rand.Rand) *Scene {
	s := Mount(vp, pointer)
	s.Seed(rng, seed)
	return s
}

// KineticEnergy sums 0.5*|v|^2 over all particles (unit mass).
func (s *Scene) KineticEnergy() float64 {
	e := 0.0
	for i := range s.Pool.particles {
		p := &s.Pool.particles[i]
		e += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return e
}
