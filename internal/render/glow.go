package render

// GlowLayers is how many translucent strokes approximate one glow on
// surfaces without a blur filter.
const GlowLayers = 3

// Pass is one stroke of a layered line.
type Pass struct {
	Width float64
	Color Color
}

// Passes expands a glowing line into strokes, widest and faintest first,
// with the core line last.
func Passes(width, glowRadius float64, c, glow Color) []Pass {
	out := make([]Pass, 0, GlowLayers+1)
	if glowRadius > 0 && glow.A > 0 {
		for k := GlowLayers; k >= 1; k-- {
			spread := glowRadius * float64(k) / GlowLayers
			a := glow.A * 0.12 * float64(GlowLayers-k+1) / GlowLayers
			out = append(out, Pass{Width: width + 2*spread, Color: glow.WithAlpha(a)})
		}
	}
	return append(out, Pass{Width: width, Color: c})
}
