package twisty

import "github.com/go-gl/mathgl/mgl32"

// Renderer capacities. The graph does not enforce them; a host that exceeds
// them decides whether to truncate or overwrite.
const (
	MaxEntities = 100000
	MaxLights   = 10
)

// EntityCommand is a single draw instruction emitted during traversal.
type EntityCommand struct {
	Node     NodeID
	Mesh     MeshHandle
	Material Material
	World    mgl32.Mat4
	Normal   mgl32.Mat4 // rotation only; scale and translation stripped
}

// LightCommand carries one light's world position and parameters.
type LightCommand struct {
	Node     NodeID
	Position mgl32.Vec3
	Color    Color
	Radius   float32
}

// Frame is everything a renderer reads from the graph for one frame.
// Buffers are reused between frames; a renderer must not retain them.
type Frame struct {
	Entities []EntityCommand
	Lights   []LightCommand
}

// Reset empties the frame, keeping its capacity.
func (f *Frame) Reset() {
	f.Entities = f.Entities[:0]
	f.Lights = f.Lights[:0]
}

// FrameRenderer consumes a collected frame. Hosts implement it.
type FrameRenderer interface {
	RenderFrame(f *Frame) error
}

// Collect walks the subtree rooted at root and appends one command per entity
// and per light to f, in pre-order.
func (g *Graph) Collect(root NodeID, f *Frame) {
	g.Walk(root, func(n *Node, world mgl32.Mat4) bool {
		switch n.Kind {
		case NodeKindEntity:
			f.Entities = append(f.Entities, EntityCommand{
				Node:     n.ID,
				Mesh:     n.Mesh,
				Material: n.Material,
				World:    world,
				Normal:   rotationOnly(world),
			})
		case NodeKindLight:
			f.Lights = append(f.Lights, LightCommand{
				Node:     n.ID,
				Position: world.Col(3).Vec3(),
				Color:    n.Light.Color,
				Radius:   n.Light.Radius,
			})
		}
		return true
	})
}
