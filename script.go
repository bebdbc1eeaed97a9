package twisty

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// scriptStep represents a single action in a move script.
type scriptStep struct {
	Action   string  `json:"action"`
	Face     string  `json:"face,omitempty"`
	Depth    int     `json:"depth,omitempty"`
	Turns    int     `json:"turns,omitempty"`
	Easing   string  `json:"easing,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`

	move   Move
	easing Easing
}

// moveScript is the top-level JSON structure for a move script.
type moveScript struct {
	Steps []scriptStep `json:"steps"`
}

// MoveScript replays a scripted sequence of moves against a Puzzle, one step
// per Update. Attach it with Puzzle.SetScript.
//
// Actions:
//
//	move    start a move on "face"; depth/turns/easing/duration override the random draw
//	random  start a fully random move
//	wait    let "frames" updates pass
//	pause   pause the puzzle
//	resume  resume the puzzle
//
// move and random wait for the previous move to commit before they run.
type MoveScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadMoveScript parses a JSON move script.
func LoadMoveScript(jsonData []byte) (*MoveScript, error) {
	var script moveScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, errors.Wrap(err, "parse move script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse move script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "move":
			m, err := ParseMove(st.Face)
			if err != nil {
				return nil, errors.Wrapf(err, "parse move script: step %d", i)
			}
			st.move = m
			if st.Easing != "" {
				e, ok := EasingByName(st.Easing)
				if !ok {
					return nil, errors.Errorf("parse move script: step %d: unknown easing %q", i, st.Easing)
				}
				st.easing = e
			}
		case "random", "wait", "pause", "resume":
		default:
			return nil, errors.Errorf("parse move script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &MoveScript{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed and the last move committed.
func (r *MoveScript) Done() bool {
	return r.done
}

// Len returns the number of steps.
func (r *MoveScript) Len() int {
	return len(r.steps)
}

// step advances the script by one frame. Called from Puzzle.Update.
func (r *MoveScript) step(p *Puzzle) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		if p.Phase() == PhaseIdle {
			r.done = true
		}
		return
	}

	st := r.steps[r.cursor]
	if (st.Action == "move" || st.Action == "random") && p.Phase() == PhaseRotating {
		return
	}
	r.cursor++

	switch st.Action {
	case "move":
		spec := p.RandomSpec(st.move)
		if st.Depth > 0 {
			spec.Depth = st.Depth
		}
		if st.Turns > 0 {
			spec.QuarterTurns = st.Turns
		}
		if st.easing.Func != nil {
			spec.Easing = st.easing
		}
		if st.Duration > 0 {
			spec.Duration = st.Duration
		}
		p.StartMove(spec)
	case "random":
		p.StartMoveRandom()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "pause":
		p.SetPaused(true)
	case "resume":
		p.SetPaused(false)
	}
}
