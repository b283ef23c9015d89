package physics

import "sync"

// Resizer is implemented by drawing surfaces that track the viewport size.
type Resizer interface {
	Resize(width, height int)
}

// Viewport tracks the drawable surface's pixel dimensions.
type Viewport struct {
	mu            sync.RWMutex
	width, height int
	surface       Resizer
}

func NewViewport(width, height int) *Viewport {
	v := &Viewport{}
	v.width, v.height = clampDim(width), clampDim(height)
	return v
}

// Attach binds a surface that is resized along with the viewport.
func (v *Viewport) Attach(r Resizer) {
	v.mu.Lock()
	v.surface = r
	v.mu.Unlock()
}

func (v *Viewport) Size() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Center returns the middle of the surface, the pointer's starting position.
func (v *Viewport) Center() (x, y float64) {
	w, h := v.Size()
	return float64(w) / 2, float64(h) / 2
}

// Resize stores new dimensions and resizes the attached surface. Existing
// particles are left where they are.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	v.width, v.height = clampDim(width), clampDim(height)
	s, w, h := v.surface, v.width, v.height
	v.mu.Unlock()
	if s != nil {
		s.Resize(w, h)
	}
}

func clampDim(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
