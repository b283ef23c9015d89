package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plexus/internal/render"
)

// frame brackets one raylib frame. The frame opens on the first draw call,
// so a tick that never draws leaves nothing to close.
type frame struct {
	begin, end func()
	open       bool
}

func (f *frame) Begin() {
	if !f.open {
		f.begin()
		f.open = true
	}
}

// End closes the frame if one is open and reports whether it did.
func (f *frame) End() bool {
	if !f.open {
		return false
	}
	f.end()
	f.open = false
	return true
}

// Surface draws into the current raylib frame. Every colour is scaled by
// Opacity so the layer sits translucently over Background.
type Surface struct {
	Background render.Color
	Opacity    float64

	frame frame
}

func NewSurface(background render.Color, opacity float64) *Surface {
	return &Surface{
		Background: background,
		Opacity:    opacity,
		frame:      frame{begin: rl.BeginDrawing, end: rl.EndDrawing},
	}
}

func (s *Surface) color(c render.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(c.A*s.Opacity*255+0.5))
}

// Clear opens the frame and fills it with Background.
func (s *Surface) Clear(_, _ int) {
	s.frame.Begin()
	bg := s.Background
	rl.ClearBackground(rl.NewColor(bg.R, bg.G, bg.B, 255))
}

func (s *Surface) FillCircle(x, y, radius float64, c render.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(radius), s.color(c))
}

func (s *Surface) StrokeLine(x1, y1, x2, y2 float64, c render.Color, width, glowRadius float64, glow render.Color) {
	from := rl.NewVector2(float32(x1), float32(y1))
	to := rl.NewVector2(float32(x2), float32(y2))
	for _, p := range render.Passes(width, glowRadius, c, glow) {
		rl.DrawLineEx(from, to, float32(p.Width), s.color(p.Color))
	}
}

var _ render.Surface = (*Surface)(nil)
