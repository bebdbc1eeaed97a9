package twisty

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// defaultLogger writes warnings and errors to stderr. Debug output is enabled
// through Scene.SetDebugMode or by installing a logger with a lower level.
func defaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "twisty",
		Level:  log.WarnLevel,
	})
}

// debugStats holds per-frame traversal metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	entityCount  int
	lightCount   int
}

// debugLog prints traversal stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"traverse", stats.traverseTime,
		"entities", stats.entityCount,
		"lights", stats.lightCount)
	if stats.entityCount > MaxEntities {
		s.logger.Warn("entity count exceeds renderer capacity", "count", stats.entityCount, "max", MaxEntities)
	}
	if stats.lightCount > MaxLights {
		s.logger.Warn("light count exceeds renderer capacity", "count", stats.lightCount, "max", MaxLights)
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 16

func (g *Graph) debugCheckTreeDepth(id NodeID) {
	depth := 0
	for p := id; p != NilNode; p = g.nodes[p].parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		g.logger.Warn("tree depth exceeds threshold",
			"depth", depth, "max", debugMaxTreeDepth, "node", g.nodes[id].Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (g *Graph) debugCheckChildCount(id NodeID) {
	n := &g.nodes[id]
	if len(n.children) > debugMaxChildCount {
		g.logger.Warn("node has too many children",
			"node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}

// SetDebug enables cycle detection and tree shape warnings on tree operations.
func (g *Graph) SetDebug(enabled bool) {
	g.debug = enabled
}

// SetLogger replaces the graph's logger. A nil logger restores the default.
func (g *Graph) SetLogger(l *log.Logger) {
	if l == nil {
		l = defaultLogger()
	}
	g.logger = l
}
