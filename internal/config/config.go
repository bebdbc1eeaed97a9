// Package config loads the settings shared by the twisty hosts.
//
// A config file is TOML or YAML, chosen by extension. Keys that are absent keep
// their defaults, so an empty file is a valid configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/twisty"
)

// Limits enforced by Validate.
const (
	MaxSpan = 6
	MaxFPS  = 240
)

// Config is the full host configuration.
type Config struct {
	Puzzle   Puzzle   `toml:"puzzle" yaml:"puzzle"`
	Scene    Scene    `toml:"scene" yaml:"scene"`
	Window   Window   `toml:"window" yaml:"window"`
	Terminal Terminal `toml:"terminal" yaml:"terminal"`
	Sound    Sound    `toml:"sound" yaml:"sound"`
}

// Puzzle configures the cube and its move generator.
type Puzzle struct {
	Span         int      `toml:"span" yaml:"span"`
	PieceSize    float32  `toml:"piece_size" yaml:"piece_size"`
	PieceMargin  float32  `toml:"piece_margin" yaml:"piece_margin"`
	MoveDuration float32  `toml:"move_duration" yaml:"move_duration"`
	MinTurns     int      `toml:"min_turns" yaml:"min_turns"`
	MaxTurns     int      `toml:"max_turns" yaml:"max_turns"`
	Easings      []string `toml:"easings" yaml:"easings"`
	Auto         bool     `toml:"auto" yaml:"auto"`
	Seed         uint64   `toml:"seed" yaml:"seed"`
}

// Scene configures the orbiting lights and debug output.
type Scene struct {
	Lights      int     `toml:"lights" yaml:"lights"`
	LightRadius float32 `toml:"light_radius" yaml:"light_radius"`
	Debug       bool    `toml:"debug" yaml:"debug"`
}

// Window configures the desktop host.
type Window struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	TPS    int    `toml:"tps" yaml:"tps"`
}

// Terminal configures the terminal host.
type Terminal struct {
	FPS int `toml:"fps" yaml:"fps"`
}

// Sound configures the commit click.
type Sound struct {
	Enabled   bool    `toml:"enabled" yaml:"enabled"`
	Frequency float64 `toml:"frequency" yaml:"frequency"`
}

// Default returns the configuration the hosts run with when no file is given.
func Default() *Config {
	return &Config{
		Puzzle: Puzzle{
			Span:         2,
			PieceSize:    twisty.DefaultPieceSize,
			PieceMargin:  twisty.DefaultPieceMargin,
			MoveDuration: twisty.DefaultMoveDuration,
			MinTurns:     1,
			MaxTurns:     3,
			Auto:         true,
		},
		Scene: Scene{
			Lights:      3,
			LightRadius: 30,
		},
		Window: Window{
			Title:  "twisty",
			Width:  1024,
			Height: 768,
			TPS:    60,
		},
		Terminal: Terminal{FPS: 30},
		Sound: Sound{
			Enabled:   false,
			Frequency: 880,
		},
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml" or ".yml")
// over the defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "decode yaml")
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	p := c.Puzzle
	switch {
	case p.Span < 0 || p.Span > MaxSpan:
		return errors.Errorf("puzzle.span must be in [0, %d], got %d", MaxSpan, p.Span)
	case p.PieceSize <= 0:
		return errors.Errorf("puzzle.piece_size must be positive, got %v", p.PieceSize)
	case p.PieceMargin < 0:
		return errors.Errorf("puzzle.piece_margin must not be negative, got %v", p.PieceMargin)
	case p.MoveDuration < 0:
		return errors.Errorf("puzzle.move_duration must not be negative, got %v", p.MoveDuration)
	case p.MinTurns < 1 || p.MaxTurns < p.MinTurns:
		return errors.Errorf("puzzle turns must satisfy 1 <= min_turns <= max_turns, got %d..%d", p.MinTurns, p.MaxTurns)
	}
	for _, name := range p.Easings {
		if _, ok := twisty.EasingByName(name); !ok {
			return errors.Errorf("puzzle.easings: unknown easing %q", name)
		}
	}

	s := c.Scene
	if s.Lights < 0 || s.Lights > twisty.MaxLights {
		return errors.Errorf("scene.lights must be in [0, %d], got %d", twisty.MaxLights, s.Lights)
	}
	if s.LightRadius <= 0 {
		return errors.Errorf("scene.light_radius must be positive, got %v", s.LightRadius)
	}

	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.TPS <= 0 {
		return errors.Errorf("window.tps must be positive, got %d", w.TPS)
	}
	if c.Terminal.FPS < 1 || c.Terminal.FPS > MaxFPS {
		return errors.Errorf("terminal.fps must be in [1, %d], got %d", MaxFPS, c.Terminal.FPS)
	}
	if c.Sound.Enabled && c.Sound.Frequency <= 0 {
		return errors.Errorf("sound.frequency must be positive, got %v", c.Sound.Frequency)
	}
	return nil
}

// PuzzleConfig converts the puzzle section for twisty.NewPuzzle.
func (c *Config) PuzzleConfig() (twisty.PuzzleConfig, error) {
	p := c.Puzzle
	cfg := twisty.PuzzleConfig{
		PieceSize:       p.PieceSize,
		PieceMargin:     p.PieceMargin,
		MoveDuration:    p.MoveDuration,
		MinQuarterTurns: p.MinTurns,
		MaxQuarterTurns: p.MaxTurns,
		Auto:            p.Auto,
		Seed:            p.Seed,
	}
	for _, name := range p.Easings {
		e, ok := twisty.EasingByName(name)
		if !ok {
			return twisty.PuzzleConfig{}, errors.Errorf("unknown easing %q", name)
		}
		cfg.Easings = append(cfg.Easings, e)
	}
	return cfg, nil
}
