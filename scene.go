package twisty

import (
	"time"

	"github.com/charmbracelet/log"
)

const defaultCommandCap = 1024

// Scene is the top-level object that owns the node graph, the root group
// exposed to renderers, and the reusable frame buffers.
type Scene struct {
	graph  *Graph
	root   NodeID
	debug  bool
	logger *log.Logger

	frame Frame

	updateFunc func(dt float32)
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	g := NewGraph()
	s := &Scene{
		graph:  g,
		root:   g.NewGroup("root"),
		logger: g.logger,
		frame: Frame{
			Entities: make([]EntityCommand, 0, defaultCommandCap),
			Lights:   make([]LightCommand, 0, MaxLights),
		},
	}
	return s
}

// Graph returns the scene's node arena.
func (s *Scene) Graph() *Graph {
	return s.graph
}

// Root returns the scene's root group node.
func (s *Scene) Root() NodeID {
	return s.root
}

// AddChild attaches child to the scene root.
func (s *Scene) AddChild(child NodeID) {
	s.graph.AddChild(s.root, child)
}

// SetUpdateFunc sets the callback run by Update. The host's per-frame logic
// (puzzle, orbiting lights) lives there.
func (s *Scene) SetUpdateFunc(fn func(dt float32)) {
	s.updateFunc = fn
}

// Update runs the update callback with the frame's delta time in seconds.
func (s *Scene) Update(dt float32) {
	if s.updateFunc != nil {
		s.updateFunc(dt)
	}
}

// Frame collects the current entity and light commands. The returned frame is
// reused by the next call.
func (s *Scene) Frame() *Frame {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.frame.Reset()
	s.graph.Collect(s.root, &s.frame)

	if s.debug {
		s.debugLog(debugStats{
			traverseTime: time.Since(t0),
			entityCount:  len(s.frame.Entities),
			lightCount:   len(s.frame.Lights),
		})
	}
	return &s.frame
}

// Draw collects the frame and hands it to r.
func (s *Scene) Draw(r FrameRenderer) error {
	return r.RenderFrame(s.Frame())
}

// SetDebugMode enables or disables debug mode. When enabled, tree operations
// check for cycles and warn about depth and child counts, and per-frame
// traversal stats are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.graph.SetDebug(enabled)
	if enabled {
		s.logger.SetLevel(log.DebugLevel)
	}
}

// DebugMode reports whether debug mode is on.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// SetLogger replaces the logger used by the scene and its graph. A nil logger
// restores the default.
func (s *Scene) SetLogger(l *log.Logger) {
	s.graph.SetLogger(l)
	s.logger = s.graph.logger
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}
