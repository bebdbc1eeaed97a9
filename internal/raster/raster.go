// Package raster turns a twisty.Frame into screen-space polygons.
//
// It projects every visible face of every *Mesh entity through a perspective
// camera, culls back faces with the entity's normal matrix, shades lit
// materials with the frame's point lights, and sorts the result back to front
// so hosts can paint it in order.
package raster

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/twisty"
)

// Polygon is a projected face in pixel coordinates.
type Polygon struct {
	Points [4]mgl32.Vec2
	Depth  float32 // distance from the eye to the face center
	Color  twisty.Color
	Node   twisty.NodeID
}

// DefaultAmbient is the light every lit face receives.
const DefaultAmbient = 0.25

// lightGain scales a point light so that a face at the light's radius, facing
// it, receives full intensity.
const lightGain = 2

// Rasterizer projects frames. It reuses its polygon buffer between calls and
// is not safe for concurrent use.
type Rasterizer struct {
	Camera  Camera
	Ambient float32

	polys []Polygon
}

// New creates a rasterizer for cam with the default ambient term.
func New(cam Camera) *Rasterizer {
	return &Rasterizer{Camera: cam, Ambient: DefaultAmbient}
}

// Project returns the visible faces of f for a width x height target, sorted
// back to front. aspect is the physical width/height ratio of the target and
// may differ from width/height when pixels are not square. The returned slice
// is reused by the next call.
func (r *Rasterizer) Project(f *twisty.Frame, width, height int, aspect float32) []Polygon {
	r.polys = r.polys[:0]
	if width <= 0 || height <= 0 || aspect <= 0 {
		return r.polys
	}
	vp := r.Camera.ViewProjection(aspect)
	eye := r.Camera.Eye
	w, h := float32(width), float32(height)

	for i := range f.Entities {
		e := &f.Entities[i]
		mesh, ok := e.Mesh.(*Mesh)
		if !ok || mesh == nil {
			continue
		}
		mvp := vp.Mul4(e.World)
	faces:
		for _, face := range mesh.Faces {
			n := e.Normal.Mul4x1(face.Normal.Vec4(0)).Vec3()
			center := mgl32.TransformCoordinate(face.Center(), e.World)
			toEye := eye.Sub(center)
			if n.Dot(toEye) <= 0 {
				continue
			}

			p := Polygon{Depth: toEye.Len(), Color: face.Color, Node: e.Node}
			for j, c := range face.Corners {
				clip := mvp.Mul4x1(c.Vec4(1))
				if clip.W() <= r.Camera.Near*0.5 {
					continue faces
				}
				x, y := clip.X()/clip.W(), clip.Y()/clip.W()
				p.Points[j] = mgl32.Vec2{(x + 1) * 0.5 * w, (1 - y) * 0.5 * h}
			}
			if e.Material.Kind.UsesLights() {
				p.Color = Shade(face.Color, center, n, f.Lights, r.Ambient)
			}
			r.polys = append(r.polys, p)
		}
	}

	slices.SortStableFunc(r.polys, func(a, b Polygon) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return r.polys
}

// Shade applies an ambient term plus Lambertian point lights to base. A
// light's contribution falls off as 1/(1+(dist/radius)^2).
func Shade(base twisty.Color, p, n mgl32.Vec3, lights []twisty.LightCommand, ambient float32) twisty.Color {
	lit := twisty.Color{R: ambient, G: ambient, B: ambient, A: 1}
	for _, l := range lights {
		d := l.Position.Sub(p)
		dist := d.Len()
		if dist < 1e-6 {
			continue
		}
		ndotl := n.Dot(d) / dist
		if ndotl <= 0 {
			continue
		}
		att := float32(1)
		if l.Radius > 0 {
			q := dist / l.Radius
			att = 1 / (1 + q*q)
		}
		lit = lit.Add(l.Color.Scale(ndotl * att * lightGain))
	}
	return base.Mul(lit)
}
