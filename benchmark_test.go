package twisty

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// setupBenchPuzzle creates a Scene holding a puzzle of the given span and a
// few lights. Pieces get a non-nil placeholder mesh.
func setupBenchPuzzle(span int, auto bool) (*Scene, *Puzzle) {
	s := NewScene()
	cfg := DefaultPuzzleConfig()
	cfg.Auto = auto
	cfg.Seed = 42
	p := NewPuzzle(s.Graph(), cfg)
	p.GeneratePieces(span, ResourceFactoryFunc(func(info PieceInfo) (MeshHandle, Material) {
		return info, Material{Kind: MaterialLit}
	}))
	s.AddChild(p.Root())
	for i := 0; i < 3; i++ {
		l := s.Graph().NewLight("light", ColorWhite, 30)
		s.Graph().SetTranslation(l, mgl32.Vec3{float32(i) * 10, 5, 5})
		s.AddChild(l)
	}
	return s, p
}

// --- Traversal Benchmarks ---

func BenchmarkFrame_Span2_Static(b *testing.B) {
	s, _ := setupBenchPuzzle(2, false)
	s.Frame() // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Frame()
	}
}

func BenchmarkFrame_Span6_Static(b *testing.B) {
	s, _ := setupBenchPuzzle(6, false)
	s.Frame()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Frame()
	}
}

func BenchmarkFrame_Span6_Rotating(b *testing.B) {
	s, p := setupBenchPuzzle(6, false)
	p.StartMove(MoveSpec{Move: MoveTop, Depth: 13, QuarterTurns: 1, Duration: 1e9})
	s.Frame()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Update(0.001)
		s.Frame()
	}
}

// --- Move Engine Benchmarks ---

func BenchmarkPuzzle_Span6_AutoMoves(b *testing.B) {
	_, p := setupBenchPuzzle(6, true)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.Update(1.0 / 60)
	}
}

func BenchmarkPuzzle_Span6_StartCommit(b *testing.B) {
	_, p := setupBenchPuzzle(6, false)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p.StartMove(MoveSpec{Move: MoveFromIndex(i % 6), Depth: 5, QuarterTurns: 1, Duration: 1})
		p.FinishMove()
	}
}

func BenchmarkExtractChildrenIf_Span6(b *testing.B) {
	_, p := setupBenchPuzzle(6, false)
	g := p.Graph()
	pred := p.Selector().Predicate(MoveLeft, 7)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		moved := g.ExtractChildrenIf(p.StaticRoot(), pred)
		for _, id := range moved {
			g.AddChild(p.StaticRoot(), id)
		}
	}
}

// --- Transform Benchmarks ---

func BenchmarkWorldMatrix_Piece(b *testing.B) {
	_, p := setupBenchPuzzle(2, false)
	g := p.Graph()
	id := p.Pieces()[0]

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.WorldMatrix(id)
	}
}
