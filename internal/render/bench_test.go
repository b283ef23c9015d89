package render

import (
	"math/rand"
	"testing"

	"github.com/san-kum/plexus/internal/physics"
)

func BenchmarkRenderCapped(b *testing.B) {
	pool := physics.Seed(3000, 2000, rand.New(rand.NewSource(1)), physics.DefaultSeedParams())
	r := NewLinkRenderer(DefaultPalette)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Render(Discard{}, pool)
	}
}
