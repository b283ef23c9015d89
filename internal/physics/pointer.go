package physics

import (
	"math"
	"sync"
)

const (
	DefaultRepelRadius   = 250.0
	DefaultRepelStrength = 0.05
)

// ForceField yields the force applied to a particle at a given position.
type ForceField interface {
	ForceAt(x, y float64) (fx, fy float64)
}

type PointerParams struct {
	Radius   float64
	Strength float64
}

func DefaultPointerParams() PointerParams {
	return PointerParams{Radius: DefaultRepelRadius, Strength: DefaultRepelStrength}
}

// Pointer holds the most recent pointer coordinate and repels particles
// within Radius of it.
type Pointer struct {
	mu     sync.RWMutex
	x, y   float64
	params PointerParams
}

func NewPointer(x, y float64, params PointerParams) *Pointer {
	return &Pointer{x: x, y: y, params: params}
}

// Update replaces the pointer coordinate. No smoothing is applied.
func (p *Pointer) Update(x, y float64) {
	p.mu.Lock()
	p.x, p.y = x, y
	p.mu.Unlock()
}

func (p *Pointer) Position() (x, y float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.x, p.y
}

func (p *Pointer) Params() PointerParams { return p.params }

// ForceAt returns the repulsion on a particle at (px, py).
func (p *Pointer) ForceAt(px, py float64) (fx, fy float64) {
	x, y := p.Position()
	return repel(px-x, py-y, p.params)
}

func repel(dx, dy float64, params PointerParams) (float64, float64) {
	d := math.Sqrt(dx*dx + dy*dy)
	// coincident: no direction, no force
	if d == 0 || d >= params.Radius {
		return 0, 0
	}
	mag := (params.Radius - d) / params.Radius * params.Strength
	return dx / d * mag, dy / d * mag
}
