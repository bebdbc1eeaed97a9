// Package app assembles the demo scene: a puzzle cube and a ring of orbiting
// point lights, each carrying a small spinning marker cube.
package app

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/twisty"
	"github.com/phanxgames/twisty/internal/raster"
)

// Light orbit parameters.
const (
	DefaultLightRadius = 30
	lightOffsetMillis  = 2200
	markerScale        = 0.7
)

var lightPalette = []twisty.Color{
	{R: 0, G: 0.5, B: 1, A: 1},
	{R: 0, G: 0.5, B: 1, A: 1},
	{R: 0, G: 1, B: 0.5, A: 1},
}

// Options configures New.
type Options struct {
	Puzzle      twisty.PuzzleConfig
	Span        int
	Lights      int
	LightRadius float32
	Debug       bool

	// Factory supplies piece meshes. Nil uses raster.PieceFactory.
	Factory twisty.ResourceFactory

	// Sinks receive move events in order.
	Sinks []twisty.EventSink

	Logger *log.Logger
}

type orbitLight struct {
	light  twisty.NodeID
	marker twisty.NodeID
	offset float64 // milliseconds
}

// App owns the scene and drives it from a fixed or variable time step.
type App struct {
	scene   *twisty.Scene
	puzzle  *twisty.Puzzle
	lights  []orbitLight
	radius  float32
	elapsed float64 // milliseconds
	extent  float32
}

// New builds the scene described by opts.
func New(opts Options) *App {
	scene := twisty.NewScene()
	if opts.Logger != nil {
		scene.SetLogger(opts.Logger)
	}
	if opts.Debug {
		scene.SetDebugMode(true)
	}
	g := scene.Graph()

	p := twisty.NewPuzzle(g, opts.Puzzle)
	factory := opts.Factory
	if factory == nil {
		size := opts.Puzzle.PieceSize
		if size <= 0 {
			size = twisty.DefaultPieceSize
		}
		factory = raster.PieceFactory(size)
	}
	p.GeneratePieces(opts.Span, factory)
	switch len(opts.Sinks) {
	case 0:
	case 1:
		p.SetEventSink(opts.Sinks[0])
	default:
		p.SetEventSink(sinkList(opts.Sinks))
	}
	scene.AddChild(p.Root())

	radius := opts.LightRadius
	if radius <= 0 {
		radius = DefaultLightRadius
	}
	a := &App{
		scene:  scene,
		puzzle: p,
		radius: radius,
		extent: float32(p.Span())*p.Spacing() + p.Spacing()/2,
	}

	marker := raster.CubeMesh(twisty.DefaultPieceSize, raster.ColorMarker)
	for i := 0; i < opts.Lights && i < twisty.MaxLights; i++ {
		color := lightPalette[i%len(lightPalette)]
		light := g.NewLight("light", color, radius)
		cube := g.NewEntity("light_marker", marker, twisty.Material{Kind: twisty.MaterialUnlit, Handle: "marker"})
		g.SetUniformScale(cube, markerScale)
		g.SetTranslation(cube, mgl32.Vec3{1, 1, 1})
		g.AddChild(light, cube)
		scene.AddChild(light)
		a.lights = append(a.lights, orbitLight{light: light, marker: cube, offset: float64(i * lightOffsetMillis)})
	}
	a.placeLights()

	scene.SetUpdateFunc(a.update)
	return a
}

// Update advances the scene by dt seconds.
func (a *App) Update(dt float32) {
	a.scene.Update(dt)
}

func (a *App) update(dt float32) {
	if dt > 0 {
		a.elapsed += float64(dt) * 1000
	}
	a.placeLights()
	a.puzzle.Update(dt)
}

// placeLights moves each light along its orbit and spins its marker.
func (a *App) placeLights() {
	g := a.scene.Graph()
	for _, l := range a.lights {
		t := a.elapsed + l.offset
		rx := 2 * math.Pi * math.Sin(t*0.00042)
		ry := 2 * math.Pi * math.Sin(t*0.00011)
		rz := 2 * math.Pi * math.Sin(t*0.00027)
		g.SetEulerRotation(l.marker, float32(rx), float32(ry), float32(rz))
		g.SetTranslation(l.light, orbitPosition(t, a.radius))
	}
}

// orbitPosition returns a point of the light path at t milliseconds. The
// direction is normalized together with a unit w component, so the light
// stays within radius of the origin and never collapses to it.
func orbitPosition(t float64, radius float32) mgl32.Vec3 {
	x := 4 * math.Sin(t/1700)
	y := 4 * math.Sin(t/1300)
	z := 4 * math.Sin(t/700)
	n := math.Sqrt(x*x + y*y + z*z + 1)
	s := float64(radius) / n
	return mgl32.Vec3{float32(x * s), float32(y * s), float32(z * s)}
}

// Scene returns the scene.
func (a *App) Scene() *twisty.Scene { return a.scene }

// Puzzle returns the puzzle.
func (a *App) Puzzle() *twisty.Puzzle { return a.puzzle }

// Lights returns the light node ids.
func (a *App) Lights() []twisty.NodeID {
	ids := make([]twisty.NodeID, len(a.lights))
	for i, l := range a.lights {
		ids[i] = l.light
	}
	return ids
}

// Elapsed returns the accumulated time in milliseconds.
func (a *App) Elapsed() float64 { return a.elapsed }

// Extent returns the distance from the center to the outer piece faces.
func (a *App) Extent() float32 { return a.extent }

// Camera returns a camera framing the puzzle.
func (a *App) Camera() raster.Camera {
	return raster.FitCamera(a.extent)
}

type sinkList []twisty.EventSink

func (s sinkList) EmitMove(e twisty.MoveEvent) {
	for _, sink := range s {
		sink.EmitMove(e)
	}
}
