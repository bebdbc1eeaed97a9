// Package window runs the puzzle in a desktop window with ebiten.
package window

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/phanxgames/twisty"
	"github.com/phanxgames/twisty/internal/app"
	"github.com/phanxgames/twisty/internal/raster"
)

// Options configures Run.
type Options struct {
	Title  string
	Width  int
	Height int
	TPS    int
	Logger *log.Logger
}

var background = color.RGBA{R: 0x11, G: 0x11, B: 0x1b, A: 0xff}

// moveKeys maps keyboard keys to faces.
var moveKeys = map[ebiten.Key]twisty.Move{
	ebiten.KeyT: twisty.MoveTop,
	ebiten.KeyB: twisty.MoveBottom,
	ebiten.KeyL: twisty.MoveLeft,
	ebiten.KeyR: twisty.MoveRight,
	ebiten.KeyF: twisty.MoveFront,
	ebiten.KeyK: twisty.MoveBack,
}

// Game implements ebiten.Game on top of an app.App.
type Game struct {
	app    *app.App
	raster *raster.Rasterizer
	tps    int
	width  int
	height int
	logger *log.Logger

	verts []ebiten.Vertex
	inds  []uint32
}

// NewGame wraps a for ebiten. tps is the fixed update rate.
func NewGame(a *app.App, opts Options) *Game {
	tps := opts.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = a.Scene().Logger()
	}
	return &Game{
		app:    a,
		raster: raster.New(a.Camera()),
		tps:    tps,
		width:  opts.Width,
		height: opts.Height,
		logger: logger,
	}
}

// Update handles input and advances the scene by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		g.handleKey(k)
	}
	g.app.Update(1 / float32(g.tps))
	return nil
}

// handleKey applies a single key press. It reports whether the key was bound.
func (g *Game) handleKey(k ebiten.Key) bool {
	p := g.app.Puzzle()
	if m, ok := moveKeys[k]; ok {
		if !p.PerformMove(m) {
			g.logger.Debug("move dropped", "face", m)
		}
		return true
	}
	switch k {
	case ebiten.KeySpace:
		p.SetPaused(!p.Paused())
	case ebiten.KeyA:
		p.SetAuto(!p.Auto())
	default:
		return false
	}
	return true
}

// Draw rasterizes the current frame onto screen.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	polys := g.raster.Project(g.app.Scene().Frame(), w, h, float32(w)/float32(h))

	g.verts = g.verts[:0]
	g.inds = g.inds[:0]
	for i := range polys {
		g.appendQuad(&polys[i])
	}
	if len(g.inds) > 0 {
		var op ebiten.DrawTrianglesOptions
		op.AntiAlias = true
		screen.DrawTriangles32(g.verts, g.inds, ensureWhitePixel(), &op)
	}

	p := g.app.Puzzle()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("moves %d  %s  auto %v  paused %v  TPS %0.0f",
		p.MovesCommitted(), p.Phase(), p.Auto(), p.Paused(), ebiten.ActualTPS()))
}

// appendQuad adds one polygon as two triangles: 0-1-2, 0-2-3.
func (g *Game) appendQuad(p *raster.Polygon) {
	base := uint32(len(g.verts))
	for _, pt := range p.Points {
		g.verts = append(g.verts, ebiten.Vertex{
			DstX:   pt.X(),
			DstY:   pt.Y(),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: p.Color.R,
			ColorG: p.Color.G,
			ColorB: p.Color.B,
			ColorA: p.Color.A,
		})
	}
	g.inds = append(g.inds,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

// Layout reports the configured logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.width > 0 && g.height > 0 {
		return g.width, g.height
	}
	return outsideWidth, outsideHeight
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Run opens the window and blocks until it is closed.
func Run(a *app.App, opts Options) error {
	g := NewGame(a, opts)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.tps)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run window")
	}
	return nil
}
