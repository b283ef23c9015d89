package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/sim"
	"github.com/san-kum/plexus/internal/viz"
)

const (
	DefaultFPS   = 30
	historyLen   = 60
	statusHeight = 1
)

// frameMsg carries a finished frame to the bubbletea program.
type frameMsg string

// Host runs the backdrop inside a terminal. The scheduler drives it from its
// own goroutine while bubbletea owns the terminal; input reaches the
// scheduler through NextFrame and frames leave through Present.
type Host struct {
	FPS int

	canvas *viz.Canvas
	theme  viz.Theme
	send   func(tea.Msg)

	mu        sync.Mutex
	cols      int
	rows      int
	nextID    int
	resize    map[int]func(int, int)
	pointer   map[int]func(float64, float64)
	sized     bool
	moved     bool
	px, py    float64
	lastStats render.FrameStats
	frames    uint64
	history   []float64
	closed    chan struct{}
	closeOnce sync.Once
	ticker    *time.Ticker
}

func newHost(cols, rows int, scale float64, theme viz.Theme, send func(tea.Msg)) *Host {
	h := &Host{
		FPS:     DefaultFPS,
		canvas:  viz.NewCanvas(0, 0, scale),
		theme:   theme,
		send:    send,
		resize:  make(map[int]func(int, int)),
		pointer: make(map[int]func(float64, float64)),
		closed:  make(chan struct{}),
	}
	h.setCells(cols, rows)
	return h
}

func (h *Host) setCells(cols, rows int) {
	h.cols = max(cols, 0)
	h.rows = max(rows-statusHeight, 0)
}

func (h *Host) surfaceSize() (int, int) {
	s := h.canvas.Scale
	return int(float64(h.cols*2) * s), int(float64(h.rows*4) * s)
}

func (h *Host) Acquire() (render.Surface, error) { return h.canvas, nil }

func (h *Host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.surfaceSize()
}

func (h *Host) OnResize(fn func(width, height int)) sim.Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.resize[id] = fn
	return sim.ListenerFunc(func() {
		h.mu.Lock()
		delete(h.resize, id)
		h.mu.Unlock()
	})
}

func (h *Host) OnPointerMove(fn func(x, y float64)) sim.Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.pointer[id] = fn
	return sim.ListenerFunc(func() {
		h.mu.Lock()
		delete(h.pointer, id)
		h.mu.Unlock()
	})
}

// windowSized records a terminal resize; it is delivered on the next frame.
func (h *Host) windowSized(cols, rows int) {
	h.mu.Lock()
	h.setCells(cols, rows)
	h.sized = true
	h.mu.Unlock()
}

// mouseMoved records the pointer at the centre of the given cell.
func (h *Host) mouseMoved(col, row int) {
	s := h.canvas.Scale
	h.mu.Lock()
	h.px = (float64(col*2) + 1) * s
	h.py = (float64(row*4) + 2) * s
	h.moved = true
	h.mu.Unlock()
}

func (h *Host) NextFrame(ctx context.Context) error {
	if h.FPS > 0 {
		if h.ticker == nil {
			h.ticker = time.NewTicker(time.Second / time.Duration(h.FPS))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.closed:
			return sim.ErrHostClosed
		case <-h.ticker.C:
		}
	}
	select {
	case <-h.closed:
		return sim.ErrHostClosed
	default:
	}

	h.mu.Lock()
	var resize []func(int, int)
	var pointer []func(float64, float64)
	w, hh := h.surfaceSize()
	x, y := h.px, h.py
	if h.sized {
		for _, fn := range h.resize {
			resize = append(resize, fn)
		}
		h.sized = false
	}
	if h.moved {
		for _, fn := range h.pointer {
			pointer = append(pointer, fn)
		}
		h.moved = false
	}
	h.mu.Unlock()

	for _, fn := range resize {
		fn(w, hh)
	}
	for _, fn := range pointer {
		fn(x, y)
	}
	return ctx.Err()
}

func (h *Host) Present() error {
	select {
	case <-h.closed:
		return sim.ErrHostClosed
	default:
	}

	h.mu.Lock()
	status := viz.Status{
		Frames:    h.frames,
		Particles: h.lastStats.Particles,
		Links:     h.lastStats.Links,
		Theme:     h.theme.Name,
		Links60:   append([]float64(nil), h.history...),
	}
	cols := h.cols
	h.mu.Unlock()

	view := h.canvas.Render(h.theme.Background) + "\n" + viz.StatusLine(status, h.theme.Accent, cols)
	h.send(frameMsg(view))
	return nil
}

// OnFrame keeps the counters shown in the status line.
func (h *Host) OnFrame(frame int, _ *physics.Scene, stats render.FrameStats) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames = uint64(frame)
	h.lastStats = stats
	h.history = append(h.history, float64(stats.Links))
	if len(h.history) > historyLen {
		h.history = h.history[len(h.history)-historyLen:]
	}
}

// Close makes the next NextFrame report ErrHostClosed.
func (h *Host) Close() {
	h.closeOnce.Do(func() {
		close(h.closed)
		if h.ticker != nil {
			h.ticker.Stop()
		}
	})
}

var (
	_ sim.Host     = (*Host)(nil)
	_ sim.Observer = (*Host)(nil)
)
