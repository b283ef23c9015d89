package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

type Scheduler struct {
	host Host
	opts Options

	mu          sync.Mutex
	state       State
	starting    bool
	disposer    *Disposer
	listeners   []Listener
	cancelFrame context.CancelFunc
	frameCtx    context.Context

	// stop token, checked by the loop and by listeners
	stopped atomic.Bool

	scene     *physics.Scene
	surface   render.Surface
	observers []Observer
	frame     int
}

func New(host Host, opts Options) *Scheduler {
	if opts.Renderer == nil {
		opts.Renderer = render.NewLinkRenderer(render.DefaultPalette)
	}
	if opts.Rand == nil {
		opts.Rand = DefaultOptions(0).Rand
	}
	return &Scheduler{
		host:      host,
		opts:      opts,
		observers: make([]Observer, 0),
	}
}

func (s *Scheduler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Scene returns the live simulation context, or nil before Start.
func (s *Scheduler) Scene() *physics.Scene { return s.scene }

// Frames returns how many frames have been presented.
func (s *Scheduler) Frames() int { return s.frame }

// Start mounts the backdrop: it acquires the surface, registers the input
// listeners, seeds the particles and enters Running. On failure everything
// acquired so far is released and the scheduler ends Stopped.
func (s *Scheduler) Start() (_ *Disposer, err error) {
	s.mu.Lock()
	if s.state != Idle || s.starting {
		s.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	s.starting = true
	d := newDisposer(s.teardown)
	s.disposer = d
	s.frameCtx, s.cancelFrame = context.WithCancel(context.Background())
	s.mu.Unlock()

	defer func() {
		if err != nil {
			log.Printf("plexus: backdrop disabled: %v", err)
			d.Release()
		}
	}()

	surface, err := s.host.Acquire()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
	}
	if surface == nil {
		return nil, ErrSurfaceUnavailable
	}
	s.surface = surface

	w, h := s.host.Size()
	vp := physics.NewViewport(w, h)
	if r, ok := surface.(physics.Resizer); ok {
		vp.Attach(r)
		r.Resize(w, h)
	}
	scene := physics.Mount(vp, s.opts.Pointer)

	s.addListener(s.host.OnResize(func(width, height int) {
		if s.stopped.Load() {
			return
		}
		vp.Resize(width, height)
	}))
	s.addListener(s.host.OnPointerMove(func(x, y float64) {
		if s.stopped.Load() {
			return
		}
		scene.Pointer.Update(x, y)
	}))

	scene.Seed(s.opts.Rand, s.opts.Seed)
	s.scene = scene

	s.mu.Lock()
	defer s.mu.Unlock()
	s.starting = false
	if s.stopped.Load() {
		return nil, ErrNotRunning
	}
	s.state = Running
	return d, nil
}

// addListener keeps l for teardown. Once teardown has run, l is removed at
// once instead.
func (s *Scheduler) addListener(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	if !s.stopped.Load() {
		s.listeners = append(s.listeners, l)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	l.Remove()
}

// Stop unmounts the backdrop. Calling it more than once, or before Start, is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	d := s.disposer
	s.mu.Unlock()
	d.Release()
}

func (s *Scheduler) teardown() {
	s.stopped.Store(true)

	s.mu.Lock()
	s.state = Stopped
	cancel, listeners := s.cancelFrame, s.listeners
	s.listeners = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, l := range listeners {
		l.Remove()
	}
}

// Run drives frames until Stop, the host closes, or ctx is cancelled. It
// returns nil when the loop ended through Stop or the host closing.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	state, frameCtx := s.state, s.frameCtx
	s.mu.Unlock()
	if state != Running {
		return ErrNotRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	unwatch := context.AfterFunc(frameCtx, cancel)
	defer unwatch()

	for {
		if s.stopped.Load() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			s.Stop()
			return err
		}

		if err := s.host.NextFrame(ctx); err != nil {
			if s.stopped.Load() {
				return nil
			}
			s.Stop()
			if errors.Is(err, ErrHostClosed) {
				return nil
			}
			return err
		}

		// Stop may have run while we were waiting for the frame
		if s.stopped.Load() {
			return nil
		}
		if err := s.tick(); err != nil {
			s.Stop()
			if errors.Is(err, ErrHostClosed) {
				return nil
			}
			return err
		}
	}
}

func (s *Scheduler) tick() error {
	w, h := s.scene.Viewport.Size()
	s.surface.Clear(w, h)
	s.opts.Integrator.Step(s.scene.Pool, s.scene.Pointer, s.scene.Viewport)
	stats := s.opts.Renderer.Render(s.surface, s.scene.Pool)

	if err := s.host.Present(); err != nil {
		return fmt.Errorf("present frame %d: %w", s.frame+1, err)
	}
	s.frame++

	for _, o := range s.observers {
		o.OnFrame(s.frame, s.scene, stats)
	}
	return nil
}
