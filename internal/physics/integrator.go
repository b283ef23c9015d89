package physics

const (
	DefaultFriction = 0.98
	DefaultMargin   = 5.0
)

// Integrator advances particles one frame: force, displacement, damping, wrap.
type Integrator struct {
	Friction float64
	Margin   float64
}

func DefaultIntegrator() Integrator {
	return Integrator{Friction: DefaultFriction, Margin: DefaultMargin}
}

// Sizer reports the current bounds particles wrap within.
type Sizer interface {
	Size() (width, height int)
}

// Step advances every particle in index order. field may be nil.
func (in Integrator) Step(pool *Pool, field ForceField, bounds Sizer) {
	w, h := bounds.Size()
	for i := range pool.particles {
		in.Advance(&pool.particles[i], field, float64(w), float64(h))
	}
}

func (in Integrator) Advance(p *Particle, field ForceField, width, height float64) {
	if field != nil {
		fx, fy := field.ForceAt(p.X, p.Y)
		p.VX += fx
		p.VY += fy
	}

	p.X += p.VX
	p.Y += p.VY

	// damping applies after the velocity has been used for this frame's displacement
	p.VX *= in.Friction
	p.VY *= in.Friction

	p.X = wrap(p.X, width, in.Margin)
	p.Y = wrap(p.Y, height, in.Margin)
}

func wrap(v, extent, margin float64) float64 {
	if v > extent+margin {
		return -margin
	} else if v < -margin {
		return extent + margin
	}
	return v
}
