package render

// Surface is a pixel-addressable 2D drawing target sized to the viewport.
type Surface interface {
	Clear(width, height int)
	FillCircle(x, y, radius float64, c Color)
	// StrokeLine draws a line with an optional glow. The glow applies to this
	// stroke only.
	StrokeLine(x1, y1, x2, y2 float64, c Color, width, glowRadius float64, glowColor Color)
}

// Discard is a Surface that draws nothing. Used for benchmarks and headless stats.
type Discard struct{}

func (Discard) Clear(int, int) {}
func (Discard) FillCircle(float64, float64, float64, Color) {}
func (Discard) StrokeLine(_, _, _, _ float64, _ Color, _, _ float64, _ Color) {}
