package twisty

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// Default piece geometry and timing.
const (
	DefaultPieceSize    = 2.0
	DefaultPieceMargin  = 0.15
	DefaultMoveDuration = 2.0
)

// QuarterTurn is one 90° turn in radians.
const QuarterTurn = math.Pi / 2

// PuzzleConfig tunes piece spacing and how random moves are drawn.
type PuzzleConfig struct {
	PieceSize   float32
	PieceMargin float32

	// MoveDuration is the tween duration of every move, in seconds.
	MoveDuration float32

	// MinQuarterTurns and MaxQuarterTurns bound the random rotation magnitude.
	MinQuarterTurns int
	MaxQuarterTurns int

	// Easings is the pool random moves draw from. Empty means every curve.
	Easings []Easing

	// Auto starts a new random move as soon as the previous one commits.
	Auto bool

	// Seed seeds the move generator. Zero picks a random seed.
	Seed uint64
}

// DefaultPuzzleConfig returns the configuration used by the demo hosts.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{
		PieceSize:       DefaultPieceSize,
		PieceMargin:     DefaultPieceMargin,
		MoveDuration:    DefaultMoveDuration,
		MinQuarterTurns: 1,
		MaxQuarterTurns: 3,
		Auto:            true,
	}
}

// FaceSet is a bitmask of the outer faces a piece touches.
type FaceSet uint8

// Has reports whether the set contains the face named by m.
func (f FaceSet) Has(m Move) bool {
	return m < MoveNone && f&(1<<m) != 0
}

func (f FaceSet) with(m Move) FaceSet {
	return f | 1<<m
}

// PieceInfo describes a piece to the resource factory.
type PieceInfo struct {
	X, Y, Z int // grid coordinate in [-Span, Span]
	Span    int
	Faces   FaceSet
}

// ResourceFactory supplies the drawable handles for each generated piece.
type ResourceFactory interface {
	PieceResources(info PieceInfo) (MeshHandle, Material)
}

// ResourceFactoryFunc adapts a function to ResourceFactory.
type ResourceFactoryFunc func(info PieceInfo) (MeshHandle, Material)

// PieceResources calls f(info).
func (f ResourceFactoryFunc) PieceResources(info PieceInfo) (MeshHandle, Material) {
	return f(info)
}

// Phase is the state of the move engine.
type Phase uint8

const (
	PhaseIdle     Phase = iota // no move in flight; manual moves are accepted
	PhaseRotating              // pivot is animating; new moves are dropped
)

func (p Phase) String() string {
	if p == PhaseRotating {
		return "rotating"
	}
	return "idle"
}

// MoveSpec fully describes one move.
type MoveSpec struct {
	Move         Move
	Depth        int     // slab depth in half-spacings, see LayerSelector
	QuarterTurns int     // rotation magnitude
	Easing       Easing  // zero value means linear
	Duration     float32 // seconds
}

// Angle returns the total rotation of the move in radians.
func (s MoveSpec) Angle() float32 {
	return float32(s.QuarterTurns) * QuarterTurn
}

// MoveEventType identifies a move lifecycle notification.
type MoveEventType uint8

const (
	MoveStarted   MoveEventType = iota // pieces were moved under the pivot
	MoveCommitted                      // pieces were baked back into the static root
)

func (t MoveEventType) String() string {
	if t == MoveCommitted {
		return "committed"
	}
	return "started"
}

// MoveEvent is sent to the puzzle's EventSink.
type MoveEvent struct {
	Type     MoveEventType
	Spec     MoveSpec
	Pieces   int // pieces under the pivot
	Sequence int // 1-based move number
}

// EventSink receives move notifications. Optional.
type EventSink interface {
	EmitMove(event MoveEvent)
}

// Puzzle drives the rotating-puzzle cube: it owns the root, static_root and
// moving_pivot groups in a Graph, selects layers, animates the pivot and bakes
// the result back into the static hierarchy.
type Puzzle struct {
	graph       *Graph
	root        NodeID
	staticRoot  NodeID
	movingPivot NodeID
	pieces      []NodeID

	cfg      PuzzleConfig
	spacing  float32
	span     int
	selector LayerSelector
	rng      *rand.Rand

	phase     Phase
	spec      MoveSpec
	tween     *Tween
	paused    bool
	sequence  int
	committed int

	script *MoveScript
	sink   EventSink
	logger *log.Logger
}

// NewPuzzle creates the puzzle's group nodes in g. Attach Root to a scene to
// render it.
func NewPuzzle(g *Graph, cfg PuzzleConfig) *Puzzle {
	def := DefaultPuzzleConfig()
	if cfg.PieceSize <= 0 {
		cfg.PieceSize = def.PieceSize
	}
	if cfg.MoveDuration <= 0 {
		cfg.MoveDuration = def.MoveDuration
	}
	if cfg.PieceMargin < 0 {
		cfg.PieceMargin = 0
	}
	if cfg.MinQuarterTurns < 1 {
		cfg.MinQuarterTurns = def.MinQuarterTurns
	}
	if cfg.MaxQuarterTurns < cfg.MinQuarterTurns {
		cfg.MaxQuarterTurns = cfg.MinQuarterTurns
	}
	if len(cfg.Easings) == 0 {
		cfg.Easings = Easings()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	p := &Puzzle{
		graph:   g,
		cfg:     cfg,
		spacing: cfg.PieceSize + cfg.PieceMargin,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		tween:   NewTween(0, 0, 0, LinearEasing),
		spec:    MoveSpec{Move: MoveNone},
	}
	p.movingPivot = g.NewGroup("moving_pivot")
	p.staticRoot = g.NewGroup("static_root")
	p.root = g.NewGroup("puzzle")
	g.AddChild(p.root, p.movingPivot)
	g.AddChild(p.root, p.staticRoot)
	p.selector = LayerSelector{Spacing: p.spacing}
	return p
}

// GeneratePieces creates (2*span+1)^3 pieces under static_root, asking
// factory for each piece's resources. It runs once; later calls are ignored so
// that span stays fixed. A nil factory leaves the handles empty.
func (p *Puzzle) GeneratePieces(span int, factory ResourceFactory) {
	if len(p.pieces) > 0 {
		p.log().Warn("pieces already generated", "span", p.span)
		return
	}
	if span < 0 {
		span = 0
	}
	p.span = span
	p.selector.Span = span

	n := span
	d := p.spacing
	p.pieces = make([]NodeID, 0, (2*n+1)*(2*n+1)*(2*n+1))
	for z := -n; z <= n; z++ {
		for y := -n; y <= n; y++ {
			for x := -n; x <= n; x++ {
				info := PieceInfo{X: x, Y: y, Z: z, Span: n, Faces: facesOf(x, y, z, n)}
				var mesh MeshHandle
				var mat Material
				if factory != nil {
					mesh, mat = factory.PieceResources(info)
				}
				id := p.graph.NewEntity(fmt.Sprintf("piece(%d,%d,%d)", x, y, z), mesh, mat)
				p.graph.SetTranslation(id, mgl32.Vec3{d * float32(x), d * float32(y), d * float32(z)})
				p.graph.AddChild(p.staticRoot, id)
				p.pieces = append(p.pieces, id)
			}
		}
	}
	p.log().Debug("generated pieces", "span", span, "count", len(p.pieces), "spacing", d)
}

func facesOf(x, y, z, n int) FaceSet {
	var f FaceSet
	if z == n {
		f = f.with(MoveTop)
	}
	if z == -n {
		f = f.with(MoveBottom)
	}
	if x == -n {
		f = f.with(MoveLeft)
	}
	if x == n {
		f = f.with(MoveRight)
	}
	if y == n {
		f = f.with(MoveFront)
	}
	if y == -n {
		f = f.with(MoveBack)
	}
	return f
}

// RandomSpec draws depth, turn count, easing and duration for a move on face m.
func (p *Puzzle) RandomSpec(m Move) MoveSpec {
	turns := p.cfg.MinQuarterTurns
	if span := p.cfg.MaxQuarterTurns - p.cfg.MinQuarterTurns; span > 0 {
		turns += p.rng.IntN(span + 1)
	}
	return MoveSpec{
		Move:         m,
		Depth:        p.selector.RandomDepth(p.rng),
		QuarterTurns: turns,
		Easing:       p.cfg.Easings[p.rng.IntN(len(p.cfg.Easings))],
		Duration:     p.cfg.MoveDuration,
	}
}

// StartMoveRandom starts a move on a random face with random parameters.
// Returns false if a move is already in flight.
func (p *Puzzle) StartMoveRandom() bool {
	if p.phase == PhaseRotating {
		return false
	}
	return p.StartMove(p.RandomSpec(p.selector.RandomMove(p.rng)))
}

// PerformMove starts a move on the named face with random depth, turns and
// easing. It is accepted only once the previous move has committed; otherwise
// it is dropped and returns false. Moves are never queued.
func (p *Puzzle) PerformMove(m Move) bool {
	if p.phase == PhaseRotating {
		return false
	}
	return p.StartMove(p.RandomSpec(m))
}

// StartMove resets the pivot, moves the selected slab under it and replaces
// the tween. Returns false if a move is already in flight.
func (p *Puzzle) StartMove(spec MoveSpec) bool {
	if p.phase == PhaseRotating {
		return false
	}
	g := p.graph
	g.ResetTransform(p.movingPivot)

	selected := g.ExtractChildrenIf(p.staticRoot, p.selector.Predicate(spec.Move, spec.Depth))
	for _, id := range selected {
		g.AddChild(p.movingPivot, id)
	}

	p.spec = spec
	p.tween = NewTween(0, spec.Angle(), spec.Duration, spec.Easing)
	p.phase = PhaseRotating
	p.sequence++

	p.log().Debug("move started",
		"seq", p.sequence,
		"face", spec.Move,
		"depth", spec.Depth,
		"turns", spec.QuarterTurns,
		"easing", p.tween.EasingName(),
		"pieces", len(selected))
	p.emit(MoveStarted, len(selected))
	return true
}

// Update advances the active move by dt seconds. It returns immediately when
// paused. The pivot rotation is set (not added) from the tween value, and the
// move commits in this same call once the tween finishes. In auto mode an
// idle puzzle starts a random move first.
func (p *Puzzle) Update(dt float32) {
	if p.script != nil {
		p.script.step(p)
	}
	if p.paused {
		return
	}
	if p.phase == PhaseIdle {
		if !p.cfg.Auto {
			return
		}
		p.StartMoveRandom()
	}

	alpha := p.tween.Advance(dt)
	if p.spec.Move != MoveNone {
		p.graph.SetAxisRotation(p.movingPivot, p.spec.Move.Axis(), alpha)
	}
	if p.tween.Finished() {
		p.FinishMove()
	}
}

// FinishMove commits the pivot's rotation into every piece under it and
// returns the pieces to static_root, then resets the pivot to identity. In
// auto mode the next random move starts immediately. No-op when idle.
func (p *Puzzle) FinishMove() {
	if p.phase != PhaseRotating {
		return
	}
	g := p.graph

	// Pivot expressed in static_root's space.
	bake := g.WorldMatrix(p.staticRoot).Inv().Mul4(g.WorldMatrix(p.movingPivot))
	// Only a finished tween leaves the pivot on a whole quarter turn.
	snap := p.tween.Finished()
	moved := g.ExtractAllChildren(p.movingPivot)
	for _, id := range moved {
		t, r, _ := decompose(bake.Mul4(g.LocalMatrix(id)))
		if snap {
			t = p.snapToGrid(t)
		}
		g.SetTranslation(id, t)
		g.SetRotation(id, r)
		g.AddChild(p.staticRoot, id)
	}
	g.ResetTransform(p.movingPivot)

	p.phase = PhaseIdle
	p.committed++
	p.log().Debug("move committed", "seq", p.sequence, "face", p.spec.Move, "pieces", len(moved))
	p.emit(MoveCommitted, len(moved))
	p.spec = MoveSpec{Move: MoveNone}

	if p.cfg.Auto {
		p.StartMoveRandom()
	}
}

// snapToGrid rounds each component of v to the nearest multiple of the piece
// spacing, removing the rounding error a bake leaves behind.
func (p *Puzzle) snapToGrid(v mgl32.Vec3) mgl32.Vec3 {
	d := float64(p.spacing)
	for i := range v {
		v[i] = float32(math.Round(float64(v[i])/d) * d)
	}
	return v
}

func (p *Puzzle) emit(typ MoveEventType, pieces int) {
	if p.sink == nil {
		return
	}
	p.sink.EmitMove(MoveEvent{Type: typ, Spec: p.spec, Pieces: pieces, Sequence: p.sequence})
}

func (p *Puzzle) log() *log.Logger {
	if p.logger != nil {
		return p.logger
	}
	return p.graph.logger
}

// --- Accessors ---

// Graph returns the graph the puzzle lives in.
func (p *Puzzle) Graph() *Graph { return p.graph }

// Root returns the group holding static_root and moving_pivot.
func (p *Puzzle) Root() NodeID { return p.root }

// StaticRoot returns the group holding every piece that is not moving.
func (p *Puzzle) StaticRoot() NodeID { return p.staticRoot }

// MovingPivot returns the temporary group rotated during a move.
func (p *Puzzle) MovingPivot() NodeID { return p.movingPivot }

// Pieces returns every generated piece in generation order. The returned
// slice MUST NOT be mutated.
func (p *Puzzle) Pieces() []NodeID { return p.pieces }

// Span returns the puzzle half-extent.
func (p *Puzzle) Span() int { return p.span }

// Spacing returns the distance between adjacent piece centers.
func (p *Puzzle) Spacing() float32 { return p.spacing }

// Selector returns the layer selector bound to the puzzle's geometry.
func (p *Puzzle) Selector() LayerSelector { return p.selector }

// Phase returns the move engine state.
func (p *Puzzle) Phase() Phase { return p.phase }

// CurrentMove returns the face of the move in flight, or MoveNone.
func (p *Puzzle) CurrentMove() Move { return p.spec.Move }

// CurrentSpec returns the spec of the move in flight.
func (p *Puzzle) CurrentSpec() MoveSpec { return p.spec }

// Tween returns the active tween.
func (p *Puzzle) Tween() *Tween { return p.tween }

// MovesCommitted returns the number of moves committed so far.
func (p *Puzzle) MovesCommitted() int { return p.committed }

// Paused reports whether Update is suspended.
func (p *Puzzle) Paused() bool { return p.paused }

// SetPaused suspends or resumes Update.
func (p *Puzzle) SetPaused(paused bool) { p.paused = paused }

// Auto reports whether moves chain automatically.
func (p *Puzzle) Auto() bool { return p.cfg.Auto }

// SetAuto switches between continuous and manual mode.
func (p *Puzzle) SetAuto(auto bool) { p.cfg.Auto = auto }

// SetEventSink installs an optional receiver for move events.
func (p *Puzzle) SetEventSink(sink EventSink) { p.sink = sink }

// SetLogger overrides the graph's logger for puzzle messages.
func (p *Puzzle) SetLogger(l *log.Logger) { p.logger = l }

// SetScript attaches a move script that is stepped at the start of every
// Update. Pass nil to detach.
func (p *Puzzle) SetScript(s *MoveScript) { p.script = s }
