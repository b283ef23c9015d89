package config

import "sort"

// Presets override parts of DefaultConfig. Only non-zero fields apply.
var Presets = map[string]*Config{
	"default": {},
	"dense": {
		Particles: ParticleConfig{Density: 12000, Max: 150},
		Links:     LinkConfig{MaxDistance: 140},
	},
	"calm": {
		Particles: ParticleConfig{MaxSpeed: 0.1},
		Pointer:   PointerConfig{Strength: 0.02},
		Motion:    MotionConfig{Friction: 0.99},
	},
	"storm": {
		Particles: ParticleConfig{MaxSpeed: 1.0},
		Pointer:   PointerConfig{Radius: 320, Strength: 0.15},
		Motion:    MotionConfig{Friction: 0.995},
		Links:     LinkConfig{GlowRadius: 25},
	},
	"mono": {
		Palette: []string{"#e0f0ff", "#a0c4ff", "#6c8ebf"},
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.apply(p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) apply(p *Config) {
	setF := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	if p.Seed != 0 {
		c.Seed = p.Seed
	}
	if p.Particles.Max != 0 {
		c.Particles.Max = p.Particles.Max
	}
	setF(&c.Particles.Density, p.Particles.Density)
	setF(&c.Particles.MaxSpeed, p.Particles.MaxSpeed)
	setF(&c.Particles.MinRadius, p.Particles.MinRadius)
	setF(&c.Particles.MaxRadius, p.Particles.MaxRadius)
	setF(&c.Pointer.Radius, p.Pointer.Radius)
	setF(&c.Pointer.Strength, p.Pointer.Strength)
	setF(&c.Motion.Friction, p.Motion.Friction)
	setF(&c.Motion.Margin, p.Motion.Margin)
	setF(&c.Links.MaxDistance, p.Links.MaxDistance)
	setF(&c.Links.LineWidth, p.Links.LineWidth)
	setF(&c.Links.GlowRadius, p.Links.GlowRadius)
	setF(&c.Links.Alpha, p.Links.Alpha)
	if len(p.Palette) > 0 {
		c.Palette = append([]string(nil), p.Palette...)
	}
	if p.Background != "" {
		c.Background = p.Background
	}
}
