package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/plexus/internal/physics"
	"github.com/san-kum/plexus/internal/render"
	"github.com/san-kum/plexus/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS        = 60
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultBackend    = "raylib"
	DefaultBackground = "#000814"
	DefaultOpacity    = 0.5
	DefaultCellScale  = 8
	DefaultTheme      = ""
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Seed       int64          `yaml:"seed"`
	FPS        int            `yaml:"fps"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Backend    string         `yaml:"backend"`
	Particles  ParticleConfig `yaml:"particles"`
	Pointer    PointerConfig  `yaml:"pointer"`
	Motion     MotionConfig   `yaml:"motion"`
	Links      LinkConfig     `yaml:"links"`
	Palette    []string       `yaml:"palette"`
	Background string         `yaml:"background"`
	Opacity    float64        `yaml:"opacity"`
	TUI        TUIConfig      `yaml:"tui"`
}

type ParticleConfig struct {
	Density   float64 `yaml:"density"`
	Max       int     `yaml:"max"`
	MaxSpeed  float64 `yaml:"max_speed"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
}

type PointerConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

type MotionConfig struct {
	Friction float64 `yaml:"friction"`
	Margin   float64 `yaml:"margin"`
}

type LinkConfig struct {
	MaxDistance float64 `yaml:"max_distance"`
	LineWidth   float64 `yaml:"line_width"`
	GlowRadius  float64 `yaml:"glow_radius"`
	Alpha       float64 `yaml:"alpha"`
}

type TUIConfig struct {
	CellScale int    `yaml:"cell_scale"`
	Theme     string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:     DefaultFPS,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Backend: DefaultBackend,
		Particles: ParticleConfig{
			Density:   physics.DefaultDensity,
			Max:       physics.DefaultMaxParticles,
			MaxSpeed:  physics.DefaultMaxSpeed,
			MinRadius: physics.DefaultMinRadius,
			MaxRadius: physics.DefaultMaxRadius,
		},
		Pointer: PointerConfig{
			Radius:   physics.DefaultRepelRadius,
			Strength: physics.DefaultRepelStrength,
		},
		Motion: MotionConfig{
			Friction: physics.DefaultFriction,
			Margin:   physics.DefaultMargin,
		},
		Links: LinkConfig{
			MaxDistance: render.DefaultMaxDistance,
			LineWidth:   render.DefaultLineWidth,
			GlowRadius:  render.DefaultGlowRadius,
			Alpha:       render.DefaultLinkAlpha,
		},
		Palette:    render.DefaultPalette.Hex(),
		Background: DefaultBackground,
		Opacity:    DefaultOpacity,
		TUI: TUIConfig{
			CellScale: DefaultCellScale,
			Theme:     DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode writes cfg as yaml to w.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	switch {
	case c.FPS < 0:
		return invalid("fps must not be negative, got %d", c.FPS)
	case c.Width < 0 || c.Height < 0:
		return invalid("size must not be negative, got %dx%d", c.Width, c.Height)
	case c.Particles.Density <= 0:
		return invalid("particles.density must be positive, got %f", c.Particles.Density)
	case c.Particles.Max < 0:
		return invalid("particles.max must not be negative, got %d", c.Particles.Max)
	case c.Particles.MinRadius <= 0 || c.Particles.MaxRadius < c.Particles.MinRadius:
		return invalid("particles radius needs 0 < min_radius <= max_radius, got %f and %f", c.Particles.MinRadius, c.Particles.MaxRadius)
	case c.Pointer.Radius <= 0:
		return invalid("pointer.radius must be positive, got %f", c.Pointer.Radius)
	case c.Motion.Friction <= 0 || c.Motion.Friction > 1:
		return invalid("motion.friction must be in (0, 1], got %f", c.Motion.Friction)
	case c.Links.MaxDistance <= 0:
		return invalid("links.max_distance must be positive, got %f", c.Links.MaxDistance)
	case c.Opacity < 0 || c.Opacity > 1:
		return invalid("opacity must be in [0, 1], got %f", c.Opacity)
	}
	if _, err := render.ParsePalette(c.Palette); err != nil {
		return invalid("palette: %v", err)
	}
	if _, err := render.ParseColor(c.Background); err != nil {
		return invalid("background: %v", err)
	}
	return nil
}

// BackgroundColor returns the parsed backdrop colour. Call Validate first.
func (c *Config) BackgroundColor() render.Color {
	bg, err := render.ParseColor(c.Background)
	if err != nil {
		return render.MustParseColor(DefaultBackground)
	}
	return bg
}

// Options converts the config into scheduler options.
func (c *Config) Options() (sim.Options, error) {
	palette, err := render.ParsePalette(c.Palette)
	if err != nil {
		return sim.Options{}, invalid("palette: %v", err)
	}
	opts := sim.DefaultOptions(c.Seed)
	opts.Seed = physics.SeedParams{
		Density:   c.Particles.Density,
		Max:       c.Particles.Max,
		MaxSpeed:  c.Particles.MaxSpeed,
		MinRadius: c.Particles.MinRadius,
		MaxRadius: c.Particles.MaxRadius,
	}
	opts.Pointer = physics.PointerParams{Radius: c.Pointer.Radius, Strength: c.Pointer.Strength}
	opts.Integrator = physics.Integrator{Friction: c.Motion.Friction, Margin: c.Motion.Margin}
	opts.Renderer = &render.LinkRenderer{
		Palette:     palette,
		MaxDistance: c.Links.MaxDistance,
		LineWidth:   c.Links.LineWidth,
		GlowRadius:  c.Links.GlowRadius,
		LinkAlpha:   c.Links.Alpha,
	}
	return opts, nil
}
