package metrics

import (
	"math"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

// Links is the mean number of links drawn per frame.
type Links struct {
	name    string
	samples int
	total   int
}

func NewLinks() *Links { return &Links{name: "links"} }

func (l *Links) Name() string { return l.name }

func (l *Links) Observe(_ *physics.Scene, stats render.FrameStats) {
	l.total += stats.Links
	l.samples++
}

func (l *Links) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples)
}

func (l *Links) Reset() { l.total, l.samples = 0, 0 }

// Finite is the fraction of frames in which every particle's state was finite.
// Anything below 1 means a NaN or Inf leaked into the simulation.
type Finite struct {
	name       string
	violations int
	samples    int
}

func NewFinite() *Finite { return &Finite{name: "finite"} }

func (f *Finite) Name() string { return f.name }

func (f *Finite) Observe(scene *physics.Scene, _ render.FrameStats) {
	f.samples++
	for i := 0; i < scene.Pool.Len(); i++ {
		p := scene.Pool.At(i)
		if !finite(p.X) || !finite(p.Y) || !finite(p.VX) || !finite(p.VY) {
			f.violations++
			return
		}
	}
}

func (f *Finite) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.violations)/float64(f.samples)
}

func (f *Finite) Reset() { f.violations, f.samples = 0, 0 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
