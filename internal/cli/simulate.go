package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/phanxgames/twisty"
)

const (
	defaultSimulateMoves = 10
	defaultSimulateStep  = 1.0 / 60
)

// simulateOpts holds the command-line flags for the simulate command.
type simulateOpts struct {
	moves  int     // committed moves to run for
	step   float64 // fixed time step in seconds
	script string  // optional move script replacing automatic moves
	quiet  bool    // print only the summary
}

// commitLog collects committed moves for printing.
type commitLog struct {
	events []twisty.MoveEvent
}

func (l *commitLog) EmitMove(e twisty.MoveEvent) {
	if e.Type == twisty.MoveCommitted {
		l.events = append(l.events, e)
	}
}

func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{moves: defaultSimulateMoves, step: defaultSimulateStep}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the puzzle headless at a fixed time step",
		Long: `Runs the puzzle without a display, printing every committed move and
checking after each step that every piece sits under exactly one of the
static root and the moving pivot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSimulate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.moves, "moves", "n", opts.moves, "committed moves to run for")
	cmd.Flags().Float64Var(&opts.step, "step", opts.step, "fixed time step in seconds")
	cmd.Flags().StringVar(&opts.script, "script", "", "JSON move script to replay instead of random moves")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only the summary")
	return cmd
}

func (c *CLI) runSimulate(cmd *cobra.Command, opts simulateOpts) error {
	if opts.step <= 0 {
		return errors.Errorf("step must be positive, got %v", opts.step)
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	var script *twisty.MoveScript
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return errors.Wrapf(err, "read script %s", opts.script)
		}
		if script, err = twisty.LoadMoveScript(data); err != nil {
			return errors.Wrapf(err, "load script %s", opts.script)
		}
		cfg.Puzzle.Auto = false
	} else {
		if opts.moves <= 0 {
			return errors.Errorf("moves must be positive, got %d", opts.moves)
		}
		cfg.Puzzle.Auto = true
	}

	commits := &commitLog{}
	a, err := c.newApp(cfg, commits)
	if err != nil {
		return err
	}
	p := a.Puzzle()
	if script != nil {
		p.SetScript(script)
	}

	out := cmd.OutOrStdout()
	if !opts.quiet {
		printTitle(out, "twisty simulate")
		printKeyValue(out, "span", strconv.Itoa(p.Span()))
		printKeyValue(out, "pieces", strconv.Itoa(len(p.Pieces())))
		printKeyValue(out, "step", fmt.Sprintf("%gs", opts.step))
	}

	limit := stepLimit(cfg.Puzzle.MoveDuration, opts)
	dt := float32(opts.step)
	printed := 0
	steps := 0
	start := time.Now()
	for steps < limit {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		a.Update(dt)
		steps++
		if err := checkPartition(p); err != nil {
			printError(out, "step %d: %v", steps, err)
			return err
		}
		if !opts.quiet {
			for ; printed < len(commits.events); printed++ {
				printCommit(out, commits.events[printed])
			}
		}
		if script != nil && script.Done() {
			break
		}
		if script == nil && p.MovesCommitted() >= opts.moves {
			break
		}
	}
	c.Logger.Debug("simulation finished", "steps", steps, "elapsed", time.Since(start).Round(time.Millisecond))

	if script != nil && !script.Done() {
		return errors.Errorf("script not finished after %d steps", limit)
	}
	printSuccess(out, "%s moves committed in %s steps (%s simulated)",
		styleNumber.Render(strconv.Itoa(p.MovesCommitted())),
		styleNumber.Render(strconv.Itoa(steps)),
		time.Duration(float64(steps)*opts.step*float64(time.Second)).Round(time.Millisecond))
	return nil
}

// stepLimit bounds the run so a stuck puzzle cannot loop forever.
func stepLimit(moveDuration float32, opts simulateOpts) int {
	perMove := math.Ceil(float64(moveDuration)/opts.step) + 2
	moves := opts.moves
	if opts.script != "" {
		moves = 1000
	}
	return int(perMove*float64(moves)) + 1000
}

func printCommit(w io.Writer, e twisty.MoveEvent) {
	printInfo(w, "%s %-6s depth %d  turns %d  %s  %s pieces",
		styleDim.Render(fmt.Sprintf("#%03d", e.Sequence)),
		e.Spec.Move,
		e.Spec.Depth,
		e.Spec.QuarterTurns,
		easingName(e.Spec.Easing),
		styleNumber.Render(strconv.Itoa(e.Pieces)))
}

func easingName(e twisty.Easing) string {
	if e.Name == "" {
		return "linear"
	}
	return e.Name
}

// checkPartition verifies that every piece is a direct child of exactly one of
// static_root and moving_pivot, and that the pivot is empty while idle.
func checkPartition(p *twisty.Puzzle) error {
	g := p.Graph()
	static, pivot := p.StaticRoot(), p.MovingPivot()
	for _, id := range p.Pieces() {
		if parent := g.Parent(id); parent != static && parent != pivot {
			return errors.Errorf("piece %s has parent %d", g.Name(id), parent)
		}
	}
	if n := g.NumChildren(static) + g.NumChildren(pivot); n != len(p.Pieces()) {
		return errors.Errorf("static root and pivot hold %d nodes, want %d", n, len(p.Pieces()))
	}
	if p.Phase() == twisty.PhaseIdle && g.NumChildren(pivot) != 0 {
		return errors.Errorf("pivot holds %d pieces while idle", g.NumChildren(pivot))
	}
	return nil
}
