// Package cli implements the twisty command-line interface.
//
// # Commands
//
//   - window: run the puzzle in a desktop window
//   - term: run the puzzle in the terminal
//   - simulate: run headless at a fixed step and report committed moves
//   - tree: print the scene graph
//
// Every command reads an optional TOML or YAML config file (--config) and
// lets a few flags override it. --verbose (-v) enables debug logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/phanxgames/twisty"
	"github.com/phanxgames/twisty/internal/app"
	"github.com/phanxgames/twisty/internal/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	overrides  overrides
}

// overrides are the root flags that replace config file values when set.
type overrides struct {
	span   int
	seed   uint64
	lights int
	debug  bool
	sound  bool
	manual bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "twisty",
		Short:        "Twisty animates a rotating-puzzle cube",
		Long:         `Twisty builds a cube of pieces in a scene graph and keeps turning random layers of it, in a window, a terminal, or headless.`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	f.IntVar(&c.overrides.span, "span", 0, "pieces per half-axis (1 is a 3x3x3 cube)")
	f.Uint64Var(&c.overrides.seed, "seed", 0, "move generator seed (0 is random)")
	f.IntVar(&c.overrides.lights, "lights", 0, "number of orbiting lights")
	f.BoolVar(&c.overrides.debug, "debug", false, "enable scene debug checks and frame stats")
	f.BoolVar(&c.overrides.sound, "sound", false, "click on every committed move")
	f.BoolVar(&c.overrides.manual, "manual", false, "start with automatic moves off")

	root.AddCommand(c.windowCommand())
	root.AddCommand(c.termCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.treeCommand())

	return root
}

// loadConfig reads the config file, if any, and applies the flags the user
// set on the command line.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		c.Logger.Debug("config loaded", "path", c.configPath)
	}

	flags := cmd.Flags()
	if flags.Changed("span") {
		cfg.Puzzle.Span = c.overrides.span
	}
	if flags.Changed("seed") {
		cfg.Puzzle.Seed = c.overrides.seed
	}
	if flags.Changed("lights") {
		cfg.Scene.Lights = c.overrides.lights
	}
	if flags.Changed("debug") {
		cfg.Scene.Debug = c.overrides.debug
	}
	if flags.Changed("sound") {
		cfg.Sound.Enabled = c.overrides.sound
	}
	if flags.Changed("manual") {
		cfg.Puzzle.Auto = !c.overrides.manual
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}
	return cfg, nil
}

// newApp builds the scene for cfg. Extra sinks receive move events.
func (c *CLI) newApp(cfg *config.Config, sinks ...twisty.EventSink) (*app.App, error) {
	pc, err := cfg.PuzzleConfig()
	if err != nil {
		return nil, err
	}
	return app.New(app.Options{
		Puzzle:      pc,
		Span:        cfg.Puzzle.Span,
		Lights:      cfg.Scene.Lights,
		LightRadius: cfg.Scene.LightRadius,
		Debug:       cfg.Scene.Debug,
		Sinks:       sinks,
		Logger:      c.Logger,
	}), nil
}
