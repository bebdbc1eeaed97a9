// Package twisty is a retained-mode 3D scene graph that animates a
// rotating-puzzle cube.
//
// Twisty provides the node arena, transform hierarchy, layer selection, eased
// tweens (via [gween]) and the move engine that regroups a slab of pieces under
// a temporary pivot, turns it, and bakes the result back into the static
// hierarchy. Rendering is left to the host through a small traversal contract.
//
// # Quick start
//
//	scene := twisty.NewScene()
//	puzzle := twisty.NewPuzzle(scene.Graph(), twisty.DefaultPuzzleConfig())
//	puzzle.GeneratePieces(1, factory) // 3x3x3
//	scene.AddChild(puzzle.Root())
//	scene.SetUpdateFunc(puzzle.Update)
//
//	// every frame:
//	scene.Update(dt)
//	scene.Draw(renderer)
//
// # Scene graph
//
// Nodes live in a [Graph] and are addressed by [NodeID]. A node is a group,
// an entity (mesh + material handles) or a light (color + radius). Children
// inherit their parent's transform; a node's world matrix is the product of
// the local matrices from the root down.
//
// # Moves
//
// A [Puzzle] owns three groups: its root, static_root and moving_pivot. A move
// extracts the pieces selected by a [LayerSelector] from static_root into
// moving_pivot, rotates the pivot with a [Tween], and on completion commits:
// each piece's transform is multiplied by the pivot's, written back, and the
// piece returns to static_root. Only one move is in flight at a time.
//
// # Rendering
//
// [Scene.Frame] walks the graph and returns a [Frame]: per entity its handles,
// world matrix and rotation-only normal matrix; per light its world position,
// color and radius. Hosts implement [FrameRenderer].
//
// [gween]: https://github.com/tanema/gween
package twisty
