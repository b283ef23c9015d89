package physics

import (
	"math/rand"
)

const (
	DefaultDensity      = 25000.0
	DefaultMaxParticles = 150
	DefaultMaxSpeed     = 0.25
	DefaultMinRadius    = 1.0
	DefaultMaxRadius    = 2.5
)

// Particle is a single simulated point. Radius is fixed at creation.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// SeedParams controls how a pool is populated from a viewport.
type SeedParams struct {
	Density   float64 // surface area per particle
	Max       int
	MaxSpeed  float64
	MinRadius float64
	MaxRadius float64
}

func DefaultSeedParams() SeedParams {
	return SeedParams{
		Density:   DefaultDensity,
		Max:       DefaultMaxParticles,
		MaxSpeed:  DefaultMaxSpeed,
		MinRadius: DefaultMinRadius,
		MaxRadius: DefaultMaxRadius,
	}
}

// Count returns clamp(floor(width*height/density), 0, max).
func Count(width, height int, p SeedParams) int {
	if width <= 0 || height <= 0 || p.Density <= 0 {
		return 0
	}
	n := int(float64(width) * float64(height) / p.Density)
	if n > p.Max {
		n = p.Max
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Pool is the ordered particle collection. Its length and ordering are fixed
// once seeded; only particle state is mutated.
type Pool struct {
	particles []Particle
}

// Seed creates a pool sized for a width x height surface.
func Seed(width, height int, rng *rand.Rand, p SeedParams) *Pool {
	n := Count(width, height, p)
	pool := &Pool{particles: make([]Particle, n)}
	for i := range pool.particles {
		pool.particles[i] = Particle{
			X:      rng.Float64() * float64(width),
			Y:      rng.Float64() * float64(height),
			VX:     (rng.Float64()*2 - 1) * p.MaxSpeed,
			VY:     (rng.Float64()*2 - 1) * p.MaxSpeed,
			Radius: p.MinRadius + rng.Float64()*(p.MaxRadius-p.MinRadius),
		}
	}
	return pool
}

// NewPool wraps an explicit particle slice. The pool takes ownership of it.
func NewPool(particles []Particle) *Pool {
	return &Pool{particles: particles}
}

func (p *Pool) Len() int { return len(p.particles) }

// At returns a pointer to particle i for in-place updates.
func (p *Pool) At(i int) *Particle { return &p.particles[i] }

// Snapshot copies the current particle states.
func (p *Pool) Snapshot() []Particle {
	out := make([]Particle, len(p.particles))
	copy(out, p.particles)
	return out
}
