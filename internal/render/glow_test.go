package render

import "testing"

func TestPassesWithGlow(t *testing.T) {
	c := MustParseColor("#00ffff").WithAlpha(0.25)
	glow := MustParseColor("#00ffff")
	got := Passes(1, 15, c, glow)
	if len(got) != GlowLayers+1 {
		t.Fatalf("got %d passes, want %d", len(got), GlowLayers+1)
	}
	for i := 1; i < GlowLayers; i++ {
		if got[i].Width >= got[i-1].Width {
			t.Errorf("glow pass %d not narrower than %d", i, i-1)
		}
		if got[i].Color.A <= got[i-1].Color.A {
			t.Errorf("glow pass %d not more opaque than %d", i, i-1)
		}
	}
	if got[0].Width != 31 {
		t.Errorf("outer glow width = %v, want 31", got[0].Width)
	}
	core := got[len(got)-1]
	if core.Width != 1 || core.Color != c {
		t.Errorf("core pass = %+v", core)
	}
}

func TestPassesWithoutGlow(t *testing.T) {
	c := MustParseColor("#ff00ff")
	if got := Passes(2, 0, c, c); len(got) != 1 || got[0].Width != 2 {
		t.Errorf("passes without glow = %+v", got)
	}
	if got := Passes(2, 10, c, Color{}); len(got) != 1 {
		t.Errorf("transparent glow should be skipped, got %d passes", len(got))
	}
}
