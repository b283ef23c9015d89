package gui

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/sim"
)

const Title = "plexus"

var (
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

type Options struct {
	Width, Height int
	FPS           int
	Background    render.Color
	Opacity       float64
	// HUD starts with the frame counter visible; H toggles it.
	HUD bool
}

// Window is a raylib Host. Everything runs on the goroutine that called Run,
// which raylib requires to be the locked OS thread.
type Window struct {
	opts    Options
	surface *Surface

	nextID  int
	resize  map[int]func(int, int)
	pointer map[int]func(float64, float64)
	cursor  sim.Cursor
	hud     bool
	stats   render.FrameStats
}

func NewWindow(o Options) *Window {
	return &Window{
		opts:    o,
		surface: NewSurface(o.Background, o.Opacity),
		resize:  make(map[int]func(int, int)),
		pointer: make(map[int]func(float64, float64)),
		hud:     o.HUD,
	}
}

func (w *Window) Acquire() (render.Surface, error) {
	if !rl.IsWindowReady() {
		return nil, errors.New("raylib window not ready")
	}
	return w.surface, nil
}

func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (w *Window) OnResize(fn func(width, height int)) sim.Listener {
	id := w.nextID
	w.nextID++
	w.resize[id] = fn
	return sim.ListenerFunc(func() { delete(w.resize, id) })
}

func (w *Window) OnPointerMove(fn func(x, y float64)) sim.Listener {
	id := w.nextID
	w.nextID++
	w.pointer[id] = fn
	return sim.ListenerFunc(func() { delete(w.pointer, id) })
}

// NextFrame polls window events and delivers input. Drawing begins with the
// surface's Clear.
func (w *Window) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ) {
		return sim.ErrHostClosed
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.hud = !w.hud
	}

	if rl.IsWindowResized() {
		width, height := w.Size()
		for _, fn := range w.resize {
			fn(width, height)
		}
	}
	if m := rl.GetMousePosition(); w.cursor.Moved(float64(m.X), float64(m.Y)) {
		for _, fn := range w.pointer {
			fn(float64(m.X), float64(m.Y))
		}
	}
	return nil
}

func (w *Window) Present() error {
	if w.hud && w.surface.frame.open {
		w.drawHUD()
	}
	w.surface.frame.End()
	return nil
}

func (w *Window) drawHUD() {
	height := int32(rl.GetScreenHeight())
	rl.DrawText(Title, 30, 30, 20, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS  %d particles  %d links", rl.GetFPS(), w.stats.Particles, w.stats.Links), 30, height-30, 14, ColTextDim)
	rl.DrawText("[H] HUD  [Q] QUIT", 30, height-50, 14, ColTextDim)
}

func (w *Window) OnFrame(_ int, _ *physics.Scene, stats render.FrameStats) { w.stats = stats }

// Run opens the window and drives the backdrop until it is closed or ctx ends.
func Run(ctx context.Context, opts sim.Options, o Options, observers ...sim.Observer) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(o.Width), int32(o.Height), Title)
	defer rl.CloseWindow()
	if o.FPS > 0 {
		rl.SetTargetFPS(int32(o.FPS))
	}

	win := NewWindow(o)
	s := sim.New(win, opts)
	s.AddObserver(win)
	for _, obs := range observers {
		s.AddObserver(obs)
	}
	d, err := s.Start()
	if err != nil {
		return err
	}
	defer d.Release()

	err = s.Run(ctx)
	win.surface.frame.End()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var (
	_ sim.Host     = (*Window)(nil)
	_ sim.Observer = (*Window)(nil)
)
