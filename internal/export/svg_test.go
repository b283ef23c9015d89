package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
)

var bg = render.MustParseColor("#000814")

func TestSVGFrame(t *testing.T) {
	pool := physics.NewPool([]physics.Particle{
		{X: 10, Y: 10, Radius: 2},
		{X: 100, Y: 10, Radius: 1.5},
		{X: 500, Y: 400, Radius: 1},
	})
	s := NewSVG(0, 0, bg, 0.5)
	s.Clear(640, 480)
	stats := render.NewLinkRenderer(render.DefaultPalette).Render(s, pool)
	out := s.String()

	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	// each link is a blurred glow line plus the core line
	if got := strings.Count(out, "<line"); got != 2*stats.Links {
		t.Errorf("lines = %d, want %d", got, 2*stats.Links)
	}
	if strings.Count(out, "<feGaussianBlur") != 1 {
		t.Error("expected exactly one blur filter")
	}
	for _, want := range []string{`width="640"`, `fill="#000814"`, `<g opacity="0.50">`, `stdDeviation="7.5"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestSVGClearResetsBody(t *testing.T) {
	s := NewSVG(10, 10, bg, 1)
	s.FillCircle(1, 1, 1, render.MustParseColor("#00ffff"))
	s.Clear(20, 20)
	if strings.Contains(s.String(), "<circle") {
		t.Error("Clear left old shapes")
	}
}

func TestSVGNoGlowNoFilter(t *testing.T) {
	s := NewSVG(10, 10, bg, 1)
	c := render.MustParseColor("#ff00ff")
	s.StrokeLine(0, 0, 5, 5, c, 1, 0, c)
	out := s.String()
	if strings.Contains(out, "<defs>") || strings.Count(out, "<line") != 1 {
		t.Errorf("unexpected glow markup:\n%s", out)
	}
}

func TestSVGWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	s := NewSVG(4, 4, bg, 1)
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Errorf("file does not start with xml header: %q", data[:10])
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single point should produce no plot")
	}
	out := SeriesToSVG([]float64{1, 3, 2}, 100, 50, "#00ffff")
	if strings.Count(out, " L") != 2 {
		t.Errorf("expected 2 segments in %q", out)
	}
}
