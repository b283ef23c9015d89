package metrics

import (
	"math"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

// Energy is the mean total kinetic energy per frame (unit mass per particle).
type Energy struct {
	name    string
	samples int
	total   float64
	last    float64
}

func NewEnergy() *Energy { return &Energy{name: "energy"} }

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(scene *physics.Scene, _ render.FrameStats) {
	e.last = scene.KineticEnergy()
	e.total += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

// Last returns the energy of the most recent frame.
func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.total, e.last = 0, 0
	e.samples = 0
}

// Speed is the mean particle speed of the most recent frame.
type Speed struct {
	name  string
	value float64
}

func NewSpeed() *Speed { return &Speed{name: "speed"} }

func (s *Speed) Name() string { return s.name }

func (s *Speed) Observe(scene *physics.Scene, _ render.FrameStats) {
	n := scene.Pool.Len()
	if n == 0 {
		s.value = 0
		return
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		p := scene.Pool.At(i)
		sum += math.Hypot(p.VX, p.VY)
	}
	s.value = sum / float64(n)
}

func (s *Speed) Value() float64 { return s.value }
func (s *Speed) Reset()         { s.value = 0 }
