package twisty

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the neutral light and sticker color.
var ColorWhite = Color{1, 1, 1, 1}

// Scale returns c with its RGB components multiplied by f. Alpha is kept.
func (c Color) Scale(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// Add returns the component-wise sum of the RGB components of c and o,
// clamped to 1. Alpha is taken from c.
func (c Color) Add(o Color) Color {
	return Color{clamp01(c.R + o.R), clamp01(c.G + o.G), clamp01(c.B + o.B), c.A}
}

// Mul returns the component-wise product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NodeKind distinguishes the payload carried by a Node.
type NodeKind uint8

const (
	NodeKindGroup  NodeKind = iota // pure hierarchy node, no payload
	NodeKindEntity                 // drawable: mesh + material handles
	NodeKindLight                  // point light: color + radius
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindGroup:
		return "group"
	case NodeKindEntity:
		return "entity"
	case NodeKindLight:
		return "light"
	default:
		return "unknown"
	}
}

// MeshHandle references a drawable mesh owned by the renderer.
// The graph stores it and hands it back during traversal; it never looks inside.
type MeshHandle any

// MaterialKind is the closed set of material variants a renderer must handle.
type MaterialKind uint8

const (
	MaterialLit   MaterialKind = iota // shaded by the frame's lights
	MaterialUnlit                     // flat color, ignores lights
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialLit:
		return "lit"
	case MaterialUnlit:
		return "unlit"
	default:
		return "unknown"
	}
}

// UsesLights reports whether the renderer must upload light data for this kind.
func (k MaterialKind) UsesLights() bool {
	return k == MaterialLit
}

// Material pairs a material variant with the renderer's opaque handle for it
// (pipeline, shader program, palette...).
type Material struct {
	Kind   MaterialKind
	Handle any
}

// Light is the payload of a NodeKindLight node.
type Light struct {
	Color  Color
	Radius float32
}
