package sim

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/san-kum/plexus/internal/render"
)

// PointerPath scripts the pointer for headless runs. ok=false leaves it alone.
type PointerPath func(frame int) (x, y float64, ok bool)

// Orbit moves the pointer around (cx, cy) once every period frames.
func Orbit(cx, cy, radius float64, period int) PointerPath {
	if period <= 0 {
		period = 1
	}
	return func(frame int) (float64, float64, bool) {
		a := 2 * math.Pi * float64(frame%period) / float64(period)
		return cx + radius*math.Cos(a), cy + radius*math.Sin(a), true
	}
}

// Headless is a Host without a display. Frames are produced as fast as
// possible, or paced at FPS when it is positive, until Budget frames have
// been presented (0 means unbounded).
type Headless struct {
	Budget int
	FPS    int
	Path   PointerPath

	mu        sync.Mutex
	width     int
	height    int
	surface   render.Surface
	failure   error
	nextID    int
	resize    map[int]func(int, int)
	pointer   map[int]func(float64, float64)
	presented int
	ticker    *time.Ticker
}

func NewHeadless(width, height int, surface render.Surface) *Headless {
	if surface == nil {
		surface = render.Discard{}
	}
	return &Headless{
		width:   width,
		height:  height,
		surface: surface,
		resize:  make(map[int]func(int, int)),
		pointer: make(map[int]func(float64, float64)),
	}
}

// FailAcquire makes the next Acquire return err. Later calls succeed again.
func (h *Headless) FailAcquire(err error) { h.failure = err }

func (h *Headless) Acquire() (render.Surface, error) {
	if err := h.failure; err != nil {
		h.failure = nil
		return nil, err
	}
	return h.surface, nil
}

func (h *Headless) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *Headless) OnResize(fn func(width, height int)) Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.resize[id] = fn
	return ListenerFunc(func() {
		h.mu.Lock()
		delete(h.resize, id)
		h.mu.Unlock()
	})
}

func (h *Headless) OnPointerMove(fn func(x, y float64)) Listener {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.pointer[id] = fn
	return ListenerFunc(func() {
		h.mu.Lock()
		delete(h.pointer, id)
		h.mu.Unlock()
	})
}

// Listeners reports how many input listeners are registered.
func (h *Headless) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.resize) + len(h.pointer)
}

// Resize emits a resize signal to every registered listener.
func (h *Headless) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	fns := make([]func(int, int), 0, len(h.resize))
	for _, fn := range h.resize {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(width, height)
	}
}

// MovePointer emits a pointer-move signal to every registered listener.
func (h *Headless) MovePointer(x, y float64) {
	h.mu.Lock()
	fns := make([]func(float64, float64), 0, len(h.pointer))
	for _, fn := range h.pointer {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(x, y)
	}
}

func (h *Headless) NextFrame(ctx context.Context) error {
	if h.Budget > 0 && h.Presented() >= h.Budget {
		return ErrHostClosed
	}
	if h.FPS > 0 {
		if h.ticker == nil {
			h.ticker = time.NewTicker(time.Second / time.Duration(h.FPS))
		}
		select {
		case <-ctx.Done():
			h.ticker.Stop()
			return ctx.Err()
		case <-h.ticker.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	if h.Path != nil {
		if x, y, ok := h.Path(h.Presented()); ok {
			h.MovePointer(x, y)
		}
	}
	return nil
}

func (h *Headless) Present() error {
	h.mu.Lock()
	h.presented++
	h.mu.Unlock()
	return nil
}

// Presented returns how many frames have been shown.
func (h *Headless) Presented() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presented
}

// Close stops the pacing ticker, if any.
func (h *Headless) Close() error {
	if h.ticker != nil {
		h.ticker.Stop()
	}
	return nil
}

var _ Host = (*Headless)(nil)
