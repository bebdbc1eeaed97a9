package raster

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/twisty"
)

// Face is one flat quad of a mesh, wound counter-clockwise seen from outside.
type Face struct {
	Normal  mgl32.Vec3
	Corners [4]mgl32.Vec3
	Color   twisty.Color
}

// Center returns the mean of the corners.
func (f Face) Center() mgl32.Vec3 {
	return f.Corners[0].Add(f.Corners[1]).Add(f.Corners[2]).Add(f.Corners[3]).Mul(0.25)
}

// Mesh is a set of faces in model space. Entities carry a *Mesh as their
// twisty.MeshHandle.
type Mesh struct {
	Faces []Face
}

// Sticker colors per outer face, and the plastic color of inner faces.
var (
	ColorTop    = hexColor(0xf9e2af) // yellow
	ColorBottom = hexColor(0xf8fafc) // white
	ColorLeft   = hexColor(0x89b4fa) // blue
	ColorRight  = hexColor(0x40a02b) // green
	ColorFront  = hexColor(0xef4444) // red
	ColorBack   = hexColor(0xfe640b) // orange
	ColorInner  = hexColor(0x1e1e2e)
	ColorMarker = hexColor(0xcba6f7)
)

func hexColor(rgb uint32) twisty.Color {
	return twisty.Color{
		R: float32(rgb>>16&0xff) / 255,
		G: float32(rgb>>8&0xff) / 255,
		B: float32(rgb&0xff) / 255,
		A: 1,
	}
}

// faceColor returns the sticker color of the face a Move is measured from.
func faceColor(m twisty.Move) twisty.Color {
	switch m {
	case twisty.MoveTop:
		return ColorTop
	case twisty.MoveBottom:
		return ColorBottom
	case twisty.MoveLeft:
		return ColorLeft
	case twisty.MoveRight:
		return ColorRight
	case twisty.MoveFront:
		return ColorFront
	case twisty.MoveBack:
		return ColorBack
	}
	return ColorInner
}

// cubeFaces lists the six faces of a unit cube (half-extent 1) in face order.
var cubeFaces = [...]struct {
	move    twisty.Move
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}{
	{twisty.MoveTop, mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{twisty.MoveBottom, mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-1, 1, -1}, {1, 1, -1}, {1, -1, -1}, {-1, -1, -1}}},
	{twisty.MoveRight, mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{twisty.MoveLeft, mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}}},
	{twisty.MoveFront, mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{1, 1, -1}, {-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}}},
	{twisty.MoveBack, mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{1, -1, 1}, {-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}}},
}

func cube(size float32, color func(twisty.Move) twisty.Color) *Mesh {
	half := size / 2
	m := &Mesh{Faces: make([]Face, len(cubeFaces))}
	for i, cf := range cubeFaces {
		f := Face{Normal: cf.normal, Color: color(cf.move)}
		for j, c := range cf.corners {
			f.Corners[j] = c.Mul(half)
		}
		m.Faces[i] = f
	}
	return m
}

// CubeMesh returns a cube of edge length size in a single color.
func CubeMesh(size float32, color twisty.Color) *Mesh {
	return cube(size, func(twisty.Move) twisty.Color { return color })
}

// PieceMesh returns a cube of edge length size whose faces on the puzzle
// surface carry that face's sticker color. Hidden faces are ColorInner.
func PieceMesh(info twisty.PieceInfo, size float32) *Mesh {
	return cube(size, func(m twisty.Move) twisty.Color {
		if info.Faces.Has(m) {
			return faceColor(m)
		}
		return ColorInner
	})
}

// PieceFactory supplies lit sticker meshes for generated pieces.
func PieceFactory(size float32) twisty.ResourceFactory {
	return twisty.ResourceFactoryFunc(func(info twisty.PieceInfo) (twisty.MeshHandle, twisty.Material) {
		return PieceMesh(info, size), twisty.Material{Kind: twisty.MaterialLit, Handle: "sticker"}
	})
}
