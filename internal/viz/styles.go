package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/render"
)

var (
	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	// Key hint style
	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// Status is the one-line readout under the terminal canvas.
type Status struct {
	Frames    uint64
	Particles int
	Links     int
	Theme     string
	Links60   []float64 // recent link counts, oldest first
}

// StatusLine renders s with an accent colour for the theme name.
func StatusLine(s Status, accent render.Color, width int) string {
	metric := func(label string, v any) string {
		return MetricLabel.Render(label+" ") + MetricValue.Render(fmt.Sprint(v))
	}
	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent.Hex())).Render(s.Theme),
		metric("frame", s.Frames),
		metric("particles", s.Particles),
		metric("links", s.Links),
	}
	if len(s.Links60) > 0 {
		parts = append(parts, SparklineChart(s.Links60, 20))
	}
	parts = append(parts, KeyHint.Render("q quit"))
	line := strings.Join(parts, Subtle.Render(" │ "))
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	// Sparkline characters from low to high
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// Sample to fit width
	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		result.WriteRune(chars[idx])
	}

	return Subtle.Render(result.String())
}
