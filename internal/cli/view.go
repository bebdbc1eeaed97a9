package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/twisty"
	"github.com/phanxgames/twisty/internal/config"
	"github.com/phanxgames/twisty/internal/sound"
	"github.com/phanxgames/twisty/internal/view/term"
	"github.com/phanxgames/twisty/internal/view/window"
)

func (c *CLI) windowCommand() *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Run the puzzle in a desktop window",
		Long: `Opens a window and animates the puzzle.

Keys: t b l r f k turn a face, space pauses, a toggles automatic moves,
escape or q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				cfg.Window.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Window.Height = height
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			player, closeSound := c.openSound(cfg)
			defer closeSound()
			a, err := c.newApp(cfg, player...)
			if err != nil {
				return err
			}
			c.Logger.Info("opening window", "span", cfg.Puzzle.Span, "width", cfg.Window.Width, "height", cfg.Window.Height, "tps", cfg.Window.TPS)
			return window.Run(a, window.Options{
				Title:  cfg.Window.Title,
				Width:  cfg.Window.Width,
				Height: cfg.Window.Height,
				TPS:    cfg.Window.TPS,
				Logger: c.Logger,
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "window width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "window height in pixels")
	return cmd
}

func (c *CLI) termCommand() *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run the puzzle in the terminal",
		Long: `Draws the puzzle with terminal cells as pixels.

Keys: t b l r f k turn a face, space pauses, a toggles automatic moves,
escape or q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fps") {
				cfg.Terminal.FPS = fps
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			player, closeSound := c.openSound(cfg)
			defer closeSound()
			a, err := c.newApp(cfg, player...)
			if err != nil {
				return err
			}
			// The terminal owns stderr while running.
			c.SetLogLevel(LogError)
			if err := term.Run(cmd.Context(), a, cfg.Terminal.FPS); err != nil {
				return err
			}
			return cmd.Context().Err()
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 0, "frames per second")
	return cmd
}

// openSound starts a click player when sound is enabled. A speaker failure is
// logged and the host runs silently.
func (c *CLI) openSound(cfg *config.Config) ([]twisty.EventSink, func()) {
	if !cfg.Sound.Enabled {
		return nil, func() {}
	}
	p := sound.New(cfg.Sound.Frequency, c.Logger)
	if err := p.Init(); err != nil {
		c.Logger.Warn("sound disabled", "err", err)
		return nil, func() {}
	}
	return []twisty.EventSink{p}, p.Close
}
