package metrics

import (
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

// Metric accumulates a scalar over rendered frames.
type Metric interface {
	Name() string
	Observe(scene *physics.Scene, stats render.FrameStats)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded by stats runs.
func Defaults() []Metric {
	return []Metric{NewLinks(), NewEnergy(), NewSpeed(), NewFinite()}
}
