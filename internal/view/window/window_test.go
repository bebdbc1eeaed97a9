package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/twisty"
	"github.com/phanxgames/twisty/internal/app"
	"github.com/phanxgames/twisty/internal/raster"
)

func newTestGame() *Game {
	cfg := twisty.DefaultPuzzleConfig()
	cfg.Auto = false
	cfg.Seed = 1
	a := app.New(app.Options{Puzzle: cfg, Span: 1, Lights: 1})
	return NewGame(a, Options{Width: 320, Height: 240, TPS: 30})
}

func TestMoveKeysCoverEveryFace(t *testing.T) {
	seen := map[twisty.Move]bool{}
	for _, m := range moveKeys {
		seen[m] = true
	}
	for m := twisty.MoveTop; m < twisty.MoveNone; m++ {
		if !seen[m] {
			t.Errorf("no key for %v", m)
		}
	}
}

func TestHandleKeyStartsMove(t *testing.T) {
	g := newTestGame()
	if !g.handleKey(ebiten.KeyT) {
		t.Fatal("KeyT not handled")
	}
	p := g.app.Puzzle()
	if p.Phase() != twisty.PhaseRotating || p.CurrentMove() != twisty.MoveTop {
		t.Errorf("phase %v move %v, want rotating top", p.Phase(), p.CurrentMove())
	}
	// Dropped while rotating, still a bound key.
	if !g.handleKey(ebiten.KeyL) {
		t.Error("KeyL not handled")
	}
	if p.CurrentMove() != twisty.MoveTop {
		t.Errorf("move = %v, want top", p.CurrentMove())
	}
}

func TestHandleKeyToggles(t *testing.T) {
	g := newTestGame()
	p := g.app.Puzzle()

	g.handleKey(ebiten.KeySpace)
	if !p.Paused() {
		t.Error("space did not pause")
	}
	g.handleKey(ebiten.KeySpace)
	if p.Paused() {
		t.Error("space did not resume")
	}
	g.handleKey(ebiten.KeyA)
	if !p.Auto() {
		t.Error("A did not enable auto")
	}
	if g.handleKey(ebiten.KeyZ) {
		t.Error("KeyZ should be unbound")
	}
}

func TestAppendQuad(t *testing.T) {
	g := newTestGame()
	p := raster.Polygon{Color: twisty.ColorWhite}
	g.appendQuad(&p)
	g.appendQuad(&p)
	if len(g.verts) != 8 {
		t.Errorf("verts = %d, want 8", len(g.verts))
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	for i, v := range want {
		if g.inds[i] != v {
			t.Fatalf("inds = %v, want %v", g.inds, want)
		}
	}
}

func TestLayout(t *testing.T) {
	g := newTestGame()
	if w, h := g.Layout(1000, 1000); w != 320 || h != 240 {
		t.Errorf("Layout = %dx%d, want 320x240", w, h)
	}
	g.width = 0
	if w, h := g.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, h)
	}
}
