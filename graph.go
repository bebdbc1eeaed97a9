package twisty

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// Graph is an arena of nodes addressed by NodeID. Nodes live in one slice and
// reference each other by id, so re-parenting never creates reference cycles.
// A Graph is not safe for concurrent use.
type Graph struct {
	nodes  []Node // nodes[0] is the unused NilNode slot
	stack  []walkEntry
	debug  bool
	logger *log.Logger
}

type walkEntry struct {
	id    NodeID
	world mgl32.Mat4
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:  make([]Node, 1, 64),
		logger: defaultLogger(),
	}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes) - 1
}

// Valid reports whether id refers to a node of this graph.
func (g *Graph) Valid(id NodeID) bool {
	return id > NilNode && int(id) < len(g.nodes)
}

// Node returns the node with the given id. The pointer stays valid until the
// next node is created.
func (g *Graph) Node(id NodeID) *Node {
	return g.node(id)
}

func (g *Graph) node(id NodeID) *Node {
	if !g.Valid(id) {
		panic(fmt.Sprintf("twisty: invalid node id %d", id))
	}
	return &g.nodes[id]
}

func (g *Graph) insert(n Node) NodeID {
	id := NodeID(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	return id
}

// Name returns the node's name.
func (g *Graph) Name(id NodeID) string {
	return g.node(id).Name
}

// Kind returns the node's kind.
func (g *Graph) Kind(id NodeID) NodeKind {
	return g.node(id).Kind
}

// Parent returns the node's parent, or NilNode for a root.
func (g *Graph) Parent(id NodeID) NodeID {
	return g.node(id).parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (g *Graph) Children(id NodeID) []NodeID {
	return g.node(id).children
}

// NumChildren returns the number of children.
func (g *Graph) NumChildren(id NodeID) int {
	return len(g.node(id).children)
}

// --- Tree manipulation ---

// AddChild appends child to parent's children and points child's
// back-reference at parent. If child already has a parent, it is removed from
// that parent first. No cycle check is made outside debug mode; callers keep
// the graph acyclic.
func (g *Graph) AddChild(parent, child NodeID) {
	if child == NilNode {
		panic("twisty: cannot add nil child")
	}
	p := g.node(parent)
	c := g.node(child)
	if g.debug && g.isAncestor(child, parent) {
		panic("twisty: adding child would create a cycle")
	}
	if c.parent != NilNode {
		g.node(c.parent).removeChildByID(child)
	}
	c.parent = parent
	p.children = append(p.children, child)
	if g.debug {
		g.debugCheckTreeDepth(child)
		g.debugCheckChildCount(parent)
	}
}

// RemoveChild detaches child from parent.
// Panics if child's parent is not parent.
func (g *Graph) RemoveChild(parent, child NodeID) {
	c := g.node(child)
	if c.parent != parent {
		panic("twisty: child's parent is not this node")
	}
	g.node(parent).removeChildByID(child)
	c.parent = NilNode
}

// RemoveFromParent detaches the node from its parent.
// No-op if the node has no parent.
func (g *Graph) RemoveFromParent(id NodeID) {
	if p := g.node(id).parent; p != NilNode {
		g.RemoveChild(p, id)
	}
}

// ExtractChildrenIf removes and returns every direct child of parent whose
// world translation satisfies pred. Children that stay keep their relative
// order. Callers must not rely on the order of the returned slice.
func (g *Graph) ExtractChildrenIf(parent NodeID, pred func(world mgl32.Vec3) bool) []NodeID {
	parentWorld := g.WorldMatrix(parent)
	p := g.node(parent)

	var extracted []NodeID
	kept := p.children[:0]
	for _, id := range p.children {
		c := &g.nodes[id]
		world := parentWorld.Mul4(c.Transform.Matrix())
		if pred(world.Col(3).Vec3()) {
			c.parent = NilNode
			extracted = append(extracted, id)
			continue
		}
		kept = append(kept, id)
	}
	clear(p.children[len(kept):])
	p.children = kept
	return extracted
}

// ExtractAllChildren drains parent's child list and returns it.
func (g *Graph) ExtractAllChildren(parent NodeID) []NodeID {
	p := g.node(parent)
	out := make([]NodeID, len(p.children))
	copy(out, p.children)
	for _, id := range out {
		g.nodes[id].parent = NilNode
	}
	p.children = p.children[:0]
	return out
}

// --- Transforms ---

// LocalMatrix returns the node's local matrix.
func (g *Graph) LocalMatrix(id NodeID) mgl32.Mat4 {
	return g.node(id).Transform.Matrix()
}

// WorldMatrix returns the product of the local matrices from the topmost
// ancestor down to id. The result is computed on every call, never cached.
func (g *Graph) WorldMatrix(id NodeID) mgl32.Mat4 {
	var chain [16]NodeID
	path := chain[:0]
	for n := id; n != NilNode; n = g.node(n).parent {
		path = append(path, n)
	}
	world := mgl32.Ident4()
	for i := len(path) - 1; i >= 0; i-- {
		world = world.Mul4(g.nodes[path[i]].Transform.Matrix())
	}
	return world
}

// WorldTranslation returns the translation component of the node's world matrix.
func (g *Graph) WorldTranslation(id NodeID) mgl32.Vec3 {
	return g.WorldMatrix(id).Col(3).Vec3()
}

// Walk visits root and its descendants in pre-order using an explicit stack,
// passing each node with its world matrix (parent world * local). If fn
// returns false the node's children are skipped.
// The graph must not be changed until Walk returns.
func (g *Graph) Walk(root NodeID, fn func(n *Node, world mgl32.Mat4) bool) {
	stack := append(g.stack[:0], walkEntry{id: root, world: g.WorldMatrix(root)})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &g.nodes[e.id]
		if !fn(n, e.world) {
			continue
		}
		// Push in reverse so children are visited in list order.
		for i := len(n.children) - 1; i >= 0; i-- {
			child := n.children[i]
			stack = append(stack, walkEntry{
				id:    child,
				world: e.world.Mul4(g.nodes[child].Transform.Matrix()),
			})
		}
	}
	g.stack = stack[:0]
}

// --- Helpers ---

// isAncestor reports whether candidate is id or one of its ancestors.
func (g *Graph) isAncestor(candidate, id NodeID) bool {
	for p := id; p != NilNode; p = g.nodes[p].parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByID removes child from n.children without clearing its parent.
func (n *Node) removeChildByID(child NodeID) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
