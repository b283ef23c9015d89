package render

import (
	"math"

	"github.com/san-kum/plexus/internal/physics"
)

const (
	DefaultMaxDistance = 180.0
	DefaultLineWidth   = 1.0
	DefaultGlowRadius  = 15.0
	DefaultLinkAlpha   = 0.5
)

// FrameStats summarises one rendered frame.
type FrameStats struct {
	Particles  int
	Links      int
	PairChecks int
}

// LinkRenderer draws particles and the links between close pairs.
type LinkRenderer struct {
	Palette     Palette
	MaxDistance float64
	LineWidth   float64
	GlowRadius  float64
	LinkAlpha   float64 // alpha of a zero-length link
}

func NewLinkRenderer(p Palette) *LinkRenderer {
	return &LinkRenderer{
		Palette:     p,
		MaxDistance: DefaultMaxDistance,
		LineWidth:   DefaultLineWidth,
		GlowRadius:  DefaultGlowRadius,
		LinkAlpha:   DefaultLinkAlpha,
	}
}

// Opacity returns 1 - d/MaxDistance for linked pairs. ok is false when d is
// at or beyond MaxDistance.
func (r *LinkRenderer) Opacity(d float64) (opacity float64, ok bool) {
	if d >= r.MaxDistance {
		return 0, false
	}
	return 1 - d/r.MaxDistance, true
}

// Render draws the pool. Every pair is checked; the particle cap keeps this cheap.
func (r *LinkRenderer) Render(s Surface, pool *physics.Pool) FrameStats {
	n := pool.Len()
	stats := FrameStats{Particles: n}

	for i := 0; i < n; i++ {
		p := pool.At(i)
		s.FillCircle(p.X, p.Y, p.Radius, r.Palette.Particle(i))

		for j := i + 1; j < n; j++ {
			q := pool.At(j)
			stats.PairChecks++

			dx, dy := p.X-q.X, p.Y-q.Y
			opacity, ok := r.Opacity(math.Sqrt(dx*dx + dy*dy))
			if !ok {
				continue
			}
			stats.Links++

			c := r.Palette.Link(i, j)
			s.StrokeLine(p.X, p.Y, q.X, q.Y, c.WithAlpha(opacity*r.LinkAlpha), r.LineWidth, r.GlowRadius, c)
		}
	}
	return stats
}
