package twisty

// NodeID identifies a node in a Graph. IDs are stable for the lifetime of the
// graph; nodes are never freed.
type NodeID int32

// NilNode represents the absence of a node (no parent, invalid handle).
const NilNode NodeID = 0

// Node is a single scene graph element. A single flat struct is used for all
// node kinds; only the payload matching Kind is meaningful.
type Node struct {
	// Identity
	ID   NodeID
	Name string
	Kind NodeKind

	// Transform (local)
	Transform Transform

	// Entity payload (NodeKindEntity)
	Mesh     MeshHandle
	Material Material

	// Light payload (NodeKindLight)
	Light Light

	// Metadata
	UserData any

	// Hierarchy. parent is a non-owning back-reference used for re-parenting;
	// traversal never walks upward through it.
	parent   NodeID
	children []NodeID
}

// Parent returns the node's current parent, or NilNode.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// newNode sets the common default field values shared by all constructors.
func newNode(name string, kind NodeKind) Node {
	return Node{
		Name:      name,
		Kind:      kind,
		Transform: IdentityTransform(),
	}
}

// NewGroup creates a group node with no payload.
func (g *Graph) NewGroup(name string) NodeID {
	return g.insert(newNode(name, NodeKindGroup))
}

// NewEntity creates an entity node referencing a mesh and a material.
func (g *Graph) NewEntity(name string, mesh MeshHandle, material Material) NodeID {
	n := newNode(name, NodeKindEntity)
	n.Mesh = mesh
	n.Material = material
	return g.insert(n)
}

// NewLight creates a point light node.
func (g *Graph) NewLight(name string, color Color, radius float32) NodeID {
	n := newNode(name, NodeKindLight)
	n.Light = Light{Color: color, Radius: radius}
	return g.insert(n)
}
