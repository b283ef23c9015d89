package metrics

import (
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

// Recorder observes frames, feeding its metrics and keeping per-frame series
// of link count, kinetic energy and mean speed.
type Recorder struct {
	metrics []Metric
	frames  []int
	series  map[string][]float64
	energy  *Energy
	speed   *Speed
}

// SeriesNames lists the per-frame series a Recorder keeps, in column order.
var SeriesNames = []string{"links", "energy", "speed"}

func NewRecorder(ms ...Metric) *Recorder {
	r := &Recorder{
		metrics: ms,
		series:  make(map[string][]float64, len(SeriesNames)),
		energy:  NewEnergy(),
		speed:   NewSpeed(),
	}
	for _, m := range ms {
		m.Reset()
	}
	return r
}

// OnFrame satisfies sim.Observer.
func (r *Recorder) OnFrame(frame int, scene *physics.Scene, stats render.FrameStats) {
	for _, m := range r.metrics {
		m.Observe(scene, stats)
	}
	r.energy.Observe(scene, stats)
	r.speed.Observe(scene, stats)

	r.frames = append(r.frames, frame)
	r.series["links"] = append(r.series["links"], float64(stats.Links))
	r.series["energy"] = append(r.series["energy"], r.energy.Last())
	r.series["speed"] = append(r.series["speed"], r.speed.Value())
}

func (r *Recorder) Frames() []int { return r.frames }

// Series returns the recorded values for name, or nil.
func (r *Recorder) Series(name string) []float64 { return r.series[name] }

// Values returns the final value of every metric keyed by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
