package sim

import (
	"context"
	"math/rand"
	"time"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Listener is a registered input callback.
type Listener interface {
	Remove()
}

type ListenerFunc func()

func (f ListenerFunc) Remove() { f() }

// Host is the environment the backdrop is mounted into: it provides the
// surface, the input signals and the display's frame pacing.
type Host interface {
	// Acquire returns the drawing surface, or an error if none is available.
	Acquire() (render.Surface, error)
	Size() (width, height int)
	OnResize(fn func(width, height int)) Listener
	OnPointerMove(fn func(x, y float64)) Listener
	// NextFrame blocks until the host is ready for the next frame. Hosts
	// deliver pending input here. ErrHostClosed means no more frames.
	NextFrame(ctx context.Context) error
	// Present shows the frame drawn since the last NextFrame.
	Present() error
}

// Observer is notified after every presented frame.
type Observer interface {
	OnFrame(frame int, scene *physics.Scene, stats render.FrameStats)
}

type ObserverFunc func(frame int, scene *physics.Scene, stats render.FrameStats)

func (f ObserverFunc) OnFrame(frame int, scene *physics.Scene, stats render.FrameStats) {
	f(frame, scene, stats)
}

type Options struct {
	Seed       physics.SeedParams
	Pointer    physics.PointerParams
	Integrator physics.Integrator
	Renderer   *render.LinkRenderer
	Rand       *rand.Rand
}

// DefaultOptions returns the stock backdrop parameters. A zero seed picks a
// time-based one.
func DefaultOptions(seed int64) Options {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Options{
		Seed:       physics.DefaultSeedParams(),
		Pointer:    physics.DefaultPointerParams(),
		Integrator: physics.DefaultIntegrator(),
		Renderer:   render.NewLinkRenderer(render.DefaultPalette),
		Rand:       rand.New(rand.NewSource(seed)),
	}
}
