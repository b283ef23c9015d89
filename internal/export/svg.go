package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/san-kum/plexus/internal/render"
)

// SVG is a Surface that records a frame as SVG markup. Glow becomes a
// feGaussianBlur filter behind the stroke.
type SVG struct {
	Width, Height int
	Background    render.Color
	Opacity       float64

	body    strings.Builder
	filters map[float64]string
}

func NewSVG(width, height int, background render.Color, opacity float64) *SVG {
	return &SVG{
		Width:      width,
		Height:     height,
		Background: background,
		Opacity:    opacity,
		filters:    make(map[float64]string),
	}
}

func (s *SVG) Resize(width, height int) {
	s.Width, s.Height = width, height
}

func (s *SVG) Clear(width, height int) {
	s.Width, s.Height = width, height
	s.body.Reset()
}

func (s *SVG) FillCircle(x, y, radius float64, c render.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"%s/>`+"\n",
		x, y, radius, c.Hex(), opacityAttr("fill-opacity", c.A))
}

func (s *SVG) StrokeLine(x1, y1, x2, y2 float64, c render.Color, width, glowRadius float64, glow render.Color) {
	if glowRadius > 0 && glow.A > 0 {
		fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s filter="url(#%s)"/>`+"\n",
			x1, y1, x2, y2, glow.Hex(), width, opacityAttr("stroke-opacity", c.A*glow.A), s.filter(glowRadius))
	}
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		x1, y1, x2, y2, c.Hex(), width, opacityAttr("stroke-opacity", c.A))
}

// filter returns the id of the blur filter for a glow radius. A canvas
// shadow blur of r is roughly a gaussian with deviation r/2.
func (s *SVG) filter(radius float64) string {
	if id, ok := s.filters[radius]; ok {
		return id
	}
	id := fmt.Sprintf("glow%d", len(s.filters))
	s.filters[radius] = id
	return id
}

func opacityAttr(name string, a float64) string {
	if a >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.4f"`, name, a)
}

// String returns the complete SVG document.
func (s *SVG) String() string {
	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.Width, s.Height, s.Width, s.Height))

	if len(s.filters) > 0 {
		radii := make([]float64, 0, len(s.filters))
		for r := range s.filters {
			radii = append(radii, r)
		}
		sort.Float64s(radii)
		sb.WriteString("<defs>\n")
		for _, r := range radii {
			sb.WriteString(fmt.Sprintf(`<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%"><feGaussianBlur stdDeviation="%.1f"/></filter>`+"\n",
				s.filters[r], r/2))
		}
		sb.WriteString("</defs>\n")
	}

	sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", s.Background.Hex()))
	sb.WriteString(fmt.Sprintf(`<g opacity="%.2f">`+"\n", s.Opacity))
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

// SeriesToSVG plots one metric series as a polyline over frame numbers.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	// Find bounds
	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

var _ render.Surface = (*SVG)(nil)
