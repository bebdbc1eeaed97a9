package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseTOML(t *testing.T) {
	data := `
[puzzle]
span = 1
move_duration = 0.5
easings = ["linear", "in-out-sine"]
seed = 42

[scene]
lights = 2
`
	cfg, err := Parse([]byte(data), ".toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Puzzle.Span != 1 || cfg.Puzzle.MoveDuration != 0.5 || cfg.Puzzle.Seed != 42 {
		t.Errorf("puzzle = %+v", cfg.Puzzle)
	}
	if cfg.Scene.Lights != 2 {
		t.Errorf("lights = %d, want 2", cfg.Scene.Lights)
	}
	// Untouched keys keep their defaults.
	if cfg.Puzzle.MaxTurns != 3 || cfg.Window.TPS != 60 || cfg.Scene.LightRadius != 30 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseYAML(t *testing.T) {
	data := `
puzzle:
  span: 3
  auto: false
window:
  title: demo
  width: 640
  height: 480
sound:
  enabled: true
  frequency: 440
`
	cfg, err := Parse([]byte(data), ".yml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Puzzle.Span != 3 || cfg.Puzzle.Auto {
		t.Errorf("puzzle = %+v", cfg.Puzzle)
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if !cfg.Sound.Enabled || cfg.Sound.Frequency != 440 {
		t.Errorf("sound = %+v", cfg.Sound)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml"} {
		cfg, err := Parse(nil, ext)
		if err != nil {
			t.Fatalf("%s: %v", ext, err)
		}
		if cfg.Puzzle.Span != Default().Puzzle.Span {
			t.Errorf("%s: span = %d", ext, cfg.Puzzle.Span)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
		want string
	}{
		{"format", `x = 1`, ".json", "unsupported config format"},
		{"toml syntax", `[puzzle`, ".toml", "decode toml"},
		{"toml unknown key", "[puzzle]\nspin = 1", ".toml", "unknown key"},
		{"yaml unknown key", "puzzle:\n  spin: 1", ".yaml", "decode yaml"},
		{"span", "[puzzle]\nspan = 9", ".toml", "puzzle.span"},
		{"piece size", "[puzzle]\npiece_size = 0.0", ".toml", "piece_size"},
		{"turns", "[puzzle]\nmin_turns = 3\nmax_turns = 2", ".toml", "min_turns"},
		{"easing", "[puzzle]\neasings = [\"wobble\"]", ".toml", "unknown easing"},
		{"lights", "[scene]\nlights = 11", ".toml", "scene.lights"},
		{"radius", "[scene]\nlight_radius = -1.0", ".toml", "light_radius"},
		{"window", "[window]\nwidth = 0", ".toml", "window size"},
		{"tps", "[window]\ntps = 0", ".toml", "window.tps"},
		{"fps", "[terminal]\nfps = 1000", ".toml", "terminal.fps"},
		{"frequency", "[sound]\nenabled = true\nfrequency = 0.0", ".toml", "sound.frequency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "twisty.toml")
	if err := os.WriteFile(path, []byte("[puzzle]\nspan = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Puzzle.Span != 1 {
		t.Errorf("span = %d, want 1", cfg.Puzzle.Span)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("error = %v, want read config error", err)
	}
}

func TestPuzzleConfig(t *testing.T) {
	cfg := Default()
	cfg.Puzzle.Easings = []string{"out-bounce"}
	cfg.Puzzle.Seed = 9
	pc, err := cfg.PuzzleConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(pc.Easings) != 1 || pc.Easings[0].Name != "out-bounce" {
		t.Errorf("easings = %v", pc.Easings)
	}
	if pc.Seed != 9 || pc.MinQuarterTurns != 1 || pc.MaxQuarterTurns != 3 || !pc.Auto {
		t.Errorf("puzzle config = %+v", pc)
	}
}
