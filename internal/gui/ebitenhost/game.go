// Package ebitenhost mounts the backdrop in an ebiten window.
//
// ebiten owns the main goroutine and calls Update, Draw and Layout; the
// scheduler runs on its own goroutine and records each frame into a
// render.FrameBuffer. Update paces the scheduler and Draw replays the newest
// complete frame.
package ebitenhost

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/sim"
)

type Options struct {
	Width, Height int
	FPS           int
	Background    render.Color
	Opacity       float64
	HUD           bool
}

type Game struct {
	opts Options
	fb   *render.FrameBuffer
	tick chan struct{}

	mu      sync.Mutex
	width   int
	height  int
	sized   bool
	cursor  sim.Cursor
	px, py  float64
	moved   bool
	nextID  int
	resize  map[int]func(int, int)
	pointer map[int]func(float64, float64)
	hud     bool
	stats   render.FrameStats

	closed    chan struct{}
	closeOnce sync.Once
}

func NewGame(o Options) *Game {
	return &Game{
		opts:    o,
		fb:      render.NewFrameBuffer(),
		tick:    make(chan struct{}, 1),
		width:   o.Width,
		height:  o.Height,
		resize:  make(map[int]func(int, int)),
		pointer: make(map[int]func(float64, float64)),
		hud:     o.HUD,
		closed:  make(chan struct{}),
	}
}

// Update runs on the ebiten goroutine once per tick.
func (g *Game) Update() error {
	select {
	case <-g.closed:
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.mu.Lock()
		g.hud = !g.hud
		g.mu.Unlock()
	}
	g.track(ebiten.CursorPosition())

	// wake the scheduler; a frame still pending is not doubled up
	select {
	case g.tick <- struct{}{}:
	default:
	}
	return nil
}

// track queues a pointer move for the next frame when the cursor has moved.
func (g *Game) track(x, y int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cursor.Moved(float64(x), float64(y)) {
		g.px, g.py = float64(x), float64(y)
		g.moved = true
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.fb.ReplayFront(&screenSurface{dst: screen, bg: g.opts.Background, opacity: g.opts.Opacity})

	g.mu.Lock()
	hud, stats := g.hud, g.stats
	g.mu.Unlock()
	if hud {
		status := fmt.Sprintf("plexus  %.0f FPS  %d particles  %d links\n[H] HUD  [Q] QUIT", ebiten.ActualFPS(), stats.Particles, stats.Links)
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.sized = true
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Acquire() (render.Surface, error) { return g.fb, nil }

func (g *Game) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

func (g *Game) OnResize(fn func(width, height int)) sim.Listener {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	g.resize[id] = fn
	return sim.ListenerFunc(func() {
		g.mu.Lock()
		delete(g.resize, id)
		g.mu.Unlock()
	})
}

func (g *Game) OnPointerMove(fn func(x, y float64)) sim.Listener {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	g.pointer[id] = fn
	return sim.ListenerFunc(func() {
		g.mu.Lock()
		delete(g.pointer, id)
		g.mu.Unlock()
	})
}

// NextFrame waits for the next ebiten tick and delivers input gathered since
// the last one.
func (g *Game) NextFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-g.closed:
		return sim.ErrHostClosed
	case <-g.tick:
	}

	g.mu.Lock()
	var resize []func(int, int)
	var pointer []func(float64, float64)
	w, h := g.width, g.height
	x, y := g.px, g.py
	if g.sized {
		for _, fn := range g.resize {
			resize = append(resize, fn)
		}
		g.sized = false
	}
	if g.moved {
		for _, fn := range g.pointer {
			pointer = append(pointer, fn)
		}
		g.moved = false
	}
	g.mu.Unlock()

	for _, fn := range resize {
		fn(w, h)
	}
	for _, fn := range pointer {
		fn(x, y)
	}
	return nil
}

// Present publishes the recorded frame to Draw.
func (g *Game) Present() error {
	g.fb.Swap()
	return nil
}

func (g *Game) OnFrame(_ int, _ *physics.Scene, stats render.FrameStats) {
	g.mu.Lock()
	g.stats = stats
	g.mu.Unlock()
}

// Close ends the frame stream and makes the next Update terminate the game.
func (g *Game) Close() {
	g.closeOnce.Do(func() { close(g.closed) })
}

// screenSurface replays display list ops onto an ebiten image.
type screenSurface struct {
	dst     *ebiten.Image
	bg      render.Color
	opacity float64
}

func (s *screenSurface) color(c render.Color) color.Color {
	return c.WithAlpha(c.A * s.opacity).RGBA()
}

func (s *screenSurface) Clear(_, _ int) {
	s.dst.Fill(s.bg.WithAlpha(1).RGBA())
}

func (s *screenSurface) FillCircle(x, y, radius float64, c render.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(radius), s.color(c), true)
}

func (s *screenSurface) StrokeLine(x1, y1, x2, y2 float64, c render.Color, width, glowRadius float64, glow render.Color) {
	for _, p := range render.Passes(width, glowRadius, c, glow) {
		vector.StrokeLine(s.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(p.Width), s.color(p.Color), true)
	}
}

var (
	_ ebiten.Game    = (*Game)(nil)
	_ sim.Host       = (*Game)(nil)
	_ sim.Observer   = (*Game)(nil)
	_ render.Surface = (*screenSurface)(nil)
)
