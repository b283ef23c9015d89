package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB colour with a fractional alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// ParseColor parses "#rrggbb" (or "#rgb") into an opaque colour.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// MustParseColor is ParseColor for package-level literals.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with alpha replaced by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = a
	return c
}

// RGBA converts to a non-premultiplied image/color value.
func (c Color) RGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}

// Over composites c over an opaque background and returns the opaque result.
func (c Color) Over(bg Color) Color {
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	back := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	r, g, b := back.BlendRgb(fg, c.A).Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: 1}
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is the fixed three-colour scheme particles and links are drawn with.
type Palette [3]Color

var DefaultPalette = Palette{
	MustParseColor("#00ffff"), // cyan
	MustParseColor("#ff00ff"), // magenta
	MustParseColor("#cfff04"), // lime
}

// ParsePalette builds a palette from exactly three hex colours.
func ParsePalette(hexes []string) (Palette, error) {
	var p Palette
	if len(hexes) != len(p) {
		return p, fmt.Errorf("palette needs %d colours, got %d", len(p), len(hexes))
	}
	for i, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return p, err
		}
		p[i] = c
	}
	return p, nil
}

// Particle returns the colour of particle i.
func (p Palette) Particle(i int) Color { return p[i%len(p)] }

// Link returns the colour of the link between particles i and j.
func (p Palette) Link(i, j int) Color { return p[(i+j)%len(p)] }

func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
