package twisty

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func manualConfig() PuzzleConfig {
	cfg := DefaultPuzzleConfig()
	cfg.Auto = false
	cfg.Seed = 7
	cfg.MoveDuration = 1
	return cfg
}

func newTestPuzzle(t *testing.T, cfg PuzzleConfig, span int) *Puzzle {
	t.Helper()
	p := NewPuzzle(NewGraph(), cfg)
	p.GeneratePieces(span, nil)
	return p
}

func topTurn(turns int) MoveSpec {
	return MoveSpec{Move: MoveTop, Depth: 1, QuarterTurns: turns, Easing: LinearEasing, Duration: 1}
}

type recordingSink struct {
	events []MoveEvent
}

func (r *recordingSink) EmitMove(e MoveEvent) {
	r.events = append(r.events, e)
}

// --- Construction ---

func TestNewPuzzleStructure(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	g := p.Graph()

	if g.Name(p.StaticRoot()) != "static_root" || g.Name(p.MovingPivot()) != "moving_pivot" {
		t.Errorf("group names = %q, %q", g.Name(p.StaticRoot()), g.Name(p.MovingPivot()))
	}
	if g.Parent(p.StaticRoot()) != p.Root() || g.Parent(p.MovingPivot()) != p.Root() {
		t.Error("static_root and moving_pivot should be children of the puzzle root")
	}
	if len(p.Pieces()) != 27 || g.NumChildren(p.StaticRoot()) != 27 {
		t.Errorf("pieces = %d, static children = %d, want 27", len(p.Pieces()), g.NumChildren(p.StaticRoot()))
	}
	if g.NumChildren(p.MovingPivot()) != 0 {
		t.Error("pivot should start empty")
	}
	if p.Phase() != PhaseIdle || p.CurrentMove() != MoveNone {
		t.Errorf("phase = %v, move = %v, want idle/none", p.Phase(), p.CurrentMove())
	}
	assertNear(t, "spacing", p.Spacing(), 2.15)
}

func TestGeneratePiecesLayout(t *testing.T) {
	var infos []PieceInfo
	factory := ResourceFactoryFunc(func(info PieceInfo) (MeshHandle, Material) {
		infos = append(infos, info)
		return info.Faces, Material{Kind: MaterialLit}
	})
	p := NewPuzzle(NewGraph(), manualConfig())
	p.GeneratePieces(1, factory)
	g := p.Graph()

	if len(infos) != 27 {
		t.Fatalf("factory called %d times, want 27", len(infos))
	}
	d := p.Spacing()
	for i, id := range p.Pieces() {
		info := infos[i]
		want := mgl32.Vec3{d * float32(info.X), d * float32(info.Y), d * float32(info.Z)}
		assertVec(t, g.Name(id), g.Transform(id).Translation, want)
		if g.Kind(id) != NodeKindEntity {
			t.Errorf("%s kind = %v, want entity", g.Name(id), g.Kind(id))
		}
	}
	// Corner (1,1,1) touches top, right and front.
	corner := infos[26]
	if corner.X != 1 || corner.Y != 1 || corner.Z != 1 {
		t.Fatalf("last piece = %+v", corner)
	}
	for _, m := range []Move{MoveTop, MoveRight, MoveFront} {
		if !corner.Faces.Has(m) {
			t.Errorf("corner should touch %v", m)
		}
	}
	if corner.Faces.Has(MoveBottom) || corner.Faces.Has(MoveNone) {
		t.Error("corner should not touch bottom or none")
	}
	// Core piece touches nothing.
	if infos[13].Faces != 0 {
		t.Errorf("core faces = %b, want 0", infos[13].Faces)
	}
}

func TestGeneratePiecesOnce(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	p.GeneratePieces(2, nil)
	if p.Span() != 1 || len(p.Pieces()) != 27 {
		t.Errorf("span = %d, pieces = %d; second call should be ignored", p.Span(), len(p.Pieces()))
	}
}

func TestGeneratePiecesSpanZero(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 0)
	if len(p.Pieces()) != 1 {
		t.Errorf("pieces = %d, want 1", len(p.Pieces()))
	}
}

// --- Moves ---

func TestStartMoveSelectsSlab(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	g := p.Graph()
	if !p.StartMove(topTurn(1)) {
		t.Fatal("StartMove should succeed when idle")
	}
	if p.Phase() != PhaseRotating || p.CurrentMove() != MoveTop {
		t.Errorf("phase = %v, move = %v", p.Phase(), p.CurrentMove())
	}
	if g.NumChildren(p.MovingPivot()) != 9 || g.NumChildren(p.StaticRoot()) != 18 {
		t.Errorf("pivot = %d, static = %d, want 9/18",
			g.NumChildren(p.MovingPivot()), g.NumChildren(p.StaticRoot()))
	}
	for _, id := range g.Children(p.MovingPivot()) {
		assertNear(t, g.Name(id)+" z", g.Transform(id).Translation.Z(), p.Spacing())
	}
}

func TestUpdateRotatesPivot(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	p.StartMove(topTurn(1))
	p.Update(0.5)
	assertSameRotation(t, "pivot", p.Graph().Transform(p.MovingPivot()).Rotation,
		mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 0, 1}))
	if p.Phase() != PhaseRotating {
		t.Error("move should still be in flight")
	}
}

func TestCommitBakesRotation(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	g := p.Graph()
	d := p.Spacing()

	var corner NodeID
	for _, id := range p.Pieces() {
		if g.Name(id) == "piece(1,0,1)" {
			corner = id
		}
	}
	before := g.WorldTranslation(corner)

	p.StartMove(topTurn(1))
	p.Update(0.5)
	mid := g.WorldTranslation(corner)
	p.Update(0.5)

	if p.Phase() != PhaseIdle {
		t.Fatal("move should have committed")
	}
	if g.NumChildren(p.MovingPivot()) != 0 || g.NumChildren(p.StaticRoot()) != 27 {
		t.Errorf("pivot = %d, static = %d, want 0/27",
			g.NumChildren(p.MovingPivot()), g.NumChildren(p.StaticRoot()))
	}
	if !g.Transform(p.MovingPivot()).IsIdentity(epsilon) {
		t.Errorf("pivot transform = %+v, want identity", g.Transform(p.MovingPivot()))
	}
	if g.Parent(corner) != p.StaticRoot() {
		t.Error("corner should be back under static_root")
	}

	// 90° about Z maps (d, 0, d) to (0, d, d).
	assertVec(t, "before", before, mgl32.Vec3{d, 0, d})
	assertVec(t, "after", g.WorldTranslation(corner), mgl32.Vec3{0, d, d})
	assertVec(t, "local", g.Transform(corner).Translation, mgl32.Vec3{0, d, d})
	assertSameRotation(t, "corner rotation", g.Transform(corner).Rotation,
		mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1}))

	// Halfway the corner sat on the 45° diagonal.
	h := d * float32(math.Sqrt2) / 2
	assertVec(t, "mid", mid, mgl32.Vec3{h, h, d})
}

func TestCommitPreservesWorldPose(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	g := p.Graph()
	g.SetAxisRotation(p.Root(), mgl32.Vec3{1, 0, 0}, 0.4)

	p.StartMove(MoveSpec{Move: MoveRight, Depth: 1, QuarterTurns: 1, Easing: LinearEasing, Duration: 1})
	p.Update(0.999)
	last := make(map[NodeID]mgl32.Mat4)
	p.Tween().Advance(0.001)
	g.SetAxisRotation(p.MovingPivot(), MoveRight.Axis(), p.Tween().Value())
	for _, id := range g.Children(p.MovingPivot()) {
		last[id] = g.WorldMatrix(id)
	}
	p.FinishMove()

	for id, want := range last {
		assertMatrix(t, g.Name(id), g.WorldMatrix(id), want)
	}
}

func TestFourQuarterTurnsRestore(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	g := p.Graph()
	start := make(map[NodeID]mgl32.Vec3)
	for _, id := range p.Pieces() {
		start[id] = g.Transform(id).Translation
	}
	for i := 0; i < 4; i++ {
		p.StartMove(topTurn(1))
		p.Update(1)
	}
	for id, want := range start {
		assertVec(t, g.Name(id), g.Transform(id).Translation, want)
		assertSameRotation(t, g.Name(id), g.Transform(id).Rotation, mgl32.QuatIdent())
	}
}

func TestPerformMoveDroppedWhileRotating(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	if !p.PerformMove(MoveLeft) {
		t.Fatal("PerformMove should start when idle")
	}
	g := p.Graph()
	spec := p.CurrentSpec()
	before := append([]NodeID(nil), g.Children(p.MovingPivot())...)
	if p.PerformMove(MoveRight) {
		t.Error("PerformMove should be dropped while rotating")
	}
	if got := p.CurrentSpec(); got.Move != MoveLeft || got.Depth != spec.Depth || got.QuarterTurns != spec.QuarterTurns {
		t.Errorf("spec changed to %+v", got)
	}
	after := g.Children(p.MovingPivot())
	if len(after) != len(before) {
		t.Fatalf("pivot children = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("pivot child %d = %d, want %d", i, after[i], before[i])
		}
	}
	p.Update(spec.Duration)
	if p.Phase() != PhaseIdle {
		t.Error("move should have committed")
	}
	if !p.PerformMove(MoveRight) {
		t.Error("PerformMove should be accepted after commit")
	}
}

func TestNewPuzzleDefaultsZeroConfig(t *testing.T) {
	p := NewPuzzle(NewGraph(), PuzzleConfig{Seed: 1})
	p.GeneratePieces(1, nil)
	assertNear(t, "spacing", p.Spacing(), DefaultPieceSize)
	if got := p.RandomSpec(MoveTop).Duration; got != DefaultMoveDuration {
		t.Errorf("duration = %v, want %v", got, float32(DefaultMoveDuration))
	}
	p.StartMove(p.RandomSpec(MoveTop))
	p.Update(0.1)
	if p.Phase() != PhaseRotating {
		t.Error("zero config should not give instant moves")
	}
}

func TestRandomSpecBounds(t *testing.T) {
	cfg := manualConfig()
	cfg.MinQuarterTurns = 1
	cfg.MaxQuarterTurns = 3
	p := newTestPuzzle(t, cfg, 2)
	for i := 0; i < 200; i++ {
		s := p.RandomSpec(MoveFront)
		if s.Move != MoveFront {
			t.Fatalf("move = %v", s.Move)
		}
		if s.QuarterTurns < 1 || s.QuarterTurns > 3 {
			t.Fatalf("turns = %d", s.QuarterTurns)
		}
		if s.Depth < 1 || s.Depth >= 4 {
			t.Fatalf("depth = %d", s.Depth)
		}
		if s.Easing.Func == nil {
			t.Fatal("easing not set")
		}
		if s.Duration != cfg.MoveDuration {
			t.Fatalf("duration = %v", s.Duration)
		}
	}
}

func TestUpdateIdleManualIsNoop(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	p.Update(1)
	if p.Phase() != PhaseIdle || p.MovesCommitted() != 0 {
		t.Error("manual puzzle should stay idle")
	}
}

func TestUpdatePaused(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	p.StartMove(topTurn(1))
	p.SetPaused(true)
	p.Update(5)
	if p.Tween().Elapsed() != 0 || p.Phase() != PhaseRotating {
		t.Error("paused puzzle should not advance")
	}
	p.SetPaused(false)
	p.Update(1)
	if p.Phase() != PhaseIdle {
		t.Error("resumed puzzle should commit")
	}
}

func TestZeroDurationMoveCommitsOnNextUpdate(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	spec := topTurn(2)
	spec.Duration = 0
	p.StartMove(spec)
	p.Update(0)
	if p.Phase() != PhaseIdle || p.MovesCommitted() != 1 {
		t.Errorf("phase = %v, committed = %d", p.Phase(), p.MovesCommitted())
	}
}

func TestAutoModeChains(t *testing.T) {
	cfg := manualConfig()
	cfg.Auto = true
	p := newTestPuzzle(t, cfg, 1)

	p.Update(0.1)
	if p.Phase() != PhaseRotating {
		t.Fatal("auto puzzle should start a move on its first update")
	}
	for i := 0; i < 50; i++ {
		p.Update(0.25)
	}
	if p.MovesCommitted() < 10 {
		t.Errorf("committed = %d, want >= 10", p.MovesCommitted())
	}
	if p.Phase() != PhaseRotating {
		t.Error("auto puzzle should immediately start the next move")
	}
}

func TestPiecesStayOnGrid(t *testing.T) {
	cfg := manualConfig()
	cfg.Auto = true
	cfg.MoveDuration = 0.3
	p := newTestPuzzle(t, cfg, 1)
	g := p.Graph()
	for i := 0; i < 400; i++ {
		p.Update(0.1)
	}
	p.SetAuto(false)
	for p.Phase() == PhaseRotating {
		p.Update(0.1)
	}

	d := p.Spacing()
	seen := make(map[[3]int]bool)
	for _, id := range p.Pieces() {
		pos := g.Transform(id).Translation
		var cell [3]int
		for i := 0; i < 3; i++ {
			c := float64(pos[i] / d)
			r := math.Round(c)
			if math.Abs(c-r) > 1e-3 || math.Abs(r) > 1 {
				t.Fatalf("%s drifted off grid: %v", g.Name(id), pos)
			}
			cell[i] = int(r)
		}
		if seen[cell] {
			t.Fatalf("two pieces share cell %v", cell)
		}
		seen[cell] = true
		sc := g.Transform(id).Scale
		assertVec(t, g.Name(id)+" scale", sc, mgl32.Vec3{1, 1, 1})
	}
}

func TestChainedMovesSelectWholeLayers(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		cfg := manualConfig()
		cfg.Auto = true
		cfg.Seed = seed
		cfg.MoveDuration = 0.3
		p := newTestPuzzle(t, cfg, 2)
		sink := &recordingSink{}
		p.SetEventSink(sink)
		for i := 0; i < 3000; i++ {
			p.Update(0.1)
		}

		layer := 5 * 5
		started := 0
		for _, e := range sink.events {
			if e.Type != MoveStarted {
				continue
			}
			started++
			if e.Pieces%layer != 0 {
				t.Fatalf("seed %d move #%d (%v depth %d) selected %d pieces, not whole layers",
					seed, e.Sequence, e.Spec.Move, e.Spec.Depth, e.Pieces)
			}
		}
		if started < 500 {
			t.Fatalf("seed %d started %d moves, want >= 500", seed, started)
		}

		p.SetAuto(false)
		for p.Phase() == PhaseRotating {
			p.Update(0.1)
		}
		for depth := 1; depth < 4; depth++ {
			want := layer * ((depth + 1) / 2)
			p.StartMove(MoveSpec{Move: MoveTop, Depth: depth, QuarterTurns: 1, Duration: 0})
			if got := p.Graph().NumChildren(p.MovingPivot()); got != want {
				t.Errorf("seed %d top depth %d selected %d, want %d", seed, depth, got, want)
			}
			p.Update(0)
		}
	}
}

func TestCommitSnapsToGrid(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 2)
	g := p.Graph()
	d := p.Spacing()
	for i := 0; i < 200; i++ {
		p.StartMove(MoveSpec{Move: MoveFromIndex(i % 6), Depth: 3, QuarterTurns: 1, Easing: LinearEasing, Duration: 1})
		p.Update(0.3)
		p.Update(0.7)
	}
	for _, id := range p.Pieces() {
		pos := g.Transform(id).Translation
		for i := 0; i < 3; i++ {
			if want := d * float32(math.Round(float64(pos[i]/d))); pos[i] != want {
				t.Fatalf("%s component %d = %v, want exactly %v", g.Name(id), i, pos[i], want)
			}
		}
	}
}

func TestEventSink(t *testing.T) {
	p := newTestPuzzle(t, manualConfig(), 1)
	sink := &recordingSink{}
	p.SetEventSink(sink)
	p.StartMove(topTurn(2))
	p.Update(1)

	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	started, committed := sink.events[0], sink.events[1]
	if started.Type != MoveStarted || committed.Type != MoveCommitted {
		t.Errorf("types = %v, %v", started.Type, committed.Type)
	}
	for _, e := range sink.events {
		if e.Pieces != 9 || e.Sequence != 1 || e.Spec.Move != MoveTop || e.Spec.QuarterTurns != 2 {
			t.Errorf("event = %+v", e)
		}
	}
}

func TestMoveSpecAngle(t *testing.T) {
	assertNear(t, "angle", MoveSpec{QuarterTurns: 3}.Angle(), 3*math.Pi/2)
}
