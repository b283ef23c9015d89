package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/render"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// DefaultMinAlpha drops strokes too faint to show as a whole dot.
const DefaultMinAlpha = 0.02

type Canvas struct {
	Width, Height int     // cells
	Scale         float64 // surface units per dot
	MinAlpha      float64
	Grid          [][]rune

	ink   [][]render.Color
	brush render.Color
}

func NewCanvas(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	c := &Canvas{Scale: scale, MinAlpha: DefaultMinAlpha}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.ink = make([][]render.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.ink[i] = make([]render.Color, w)
	}
	c.Reset()
}

// Set sets a dot at (x, y) in dot coordinates.
// The canvas size in dots is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if c.brush.A >= c.ink[row][col].A {
		c.ink[row][col] = c.brush
	}
}

// Reset blanks every cell.
func (c *Canvas) Reset() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.ink[i][j] = render.Color{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) dot(v float64) int { return int(math.Floor(v / c.Scale)) }

// Resize reallocates the grid to cover a width x height surface.
func (c *Canvas) Resize(width, height int) {
	dots := func(n int, per int) int {
		return int(math.Ceil(float64(n) / c.Scale / float64(per)))
	}
	c.alloc(dots(width, 2), dots(height, 4))
}

// SurfaceSize is the surface extent the canvas covers.
func (c *Canvas) SurfaceSize() (width, height int) {
	return int(float64(c.Width*2) * c.Scale), int(float64(c.Height*4) * c.Scale)
}

func (c *Canvas) Clear(_, _ int) { c.Reset() }

func (c *Canvas) FillCircle(x, y, radius float64, col render.Color) {
	c.brush = col
	cx, cy := c.dot(x), c.dot(y)
	r := int(radius / c.Scale)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, col render.Color, _, _ float64, _ render.Color) {
	if col.A < c.MinAlpha {
		return
	}
	c.brush = col
	c.DrawLine(c.dot(x1), c.dot(y1), c.dot(x2), c.dot(y2))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas coloured for a terminal with the given backdrop.
// Runs of equally coloured cells share one style.
func (c *Canvas) Render(bg render.Color) string {
	var b strings.Builder
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
	for row := range c.Grid {
		start := 0
		for col := 1; col <= c.Width; col++ {
			if col < c.Width && c.cellHex(row, col, bg) == c.cellHex(row, start, bg) {
				continue
			}
			style := base.Foreground(lipgloss.Color(c.cellHex(row, start, bg)))
			b.WriteString(style.Render(string(c.Grid[row][start:col])))
			start = col
		}
		if row < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (c *Canvas) cellHex(row, col int, bg render.Color) string {
	return c.ink[row][col].Over(bg).Hex()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var _ render.Surface = (*Canvas)(nil)
