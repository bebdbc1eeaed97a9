package twisty

import "github.com/go-gl/mathgl/mgl32"

// Transform is a node's local translation/rotation/scale triple.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat // unit quaternion
	Scale       mgl32.Vec3
}

// IdentityTransform returns a transform with no translation, no rotation and
// unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// IsIdentity reports whether t is the identity within eps.
func (t Transform) IsIdentity(eps float32) bool {
	id := IdentityTransform()
	return t.Translation.ApproxEqualThreshold(id.Translation, eps) &&
		t.Scale.ApproxEqualThreshold(id.Scale, eps) &&
		t.Rotation.ApproxEqualThreshold(id.Rotation, eps)
}

// Matrix composes the local matrix.
//
// Composition order:
//
//	Scale -> Rotate -> Translate
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	rot := t.Rotation.Mat4()
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(rot).Mul4(sc)
}

// decompose splits an affine matrix built as T*R*S into its parts.
// Scale is the length of each basis column; a negative determinant flips the
// sign of the X scale. A degenerate basis yields the identity rotation.
func decompose(m mgl32.Mat4) (translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	translation = m.Col(3).Vec3()

	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	scale = mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}
	if m.Det() < 0 {
		scale[0] = -scale[0]
	}
	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return translation, mgl32.QuatIdent(), scale
	}

	basis := mgl32.Mat4FromCols(
		c0.Mul(1/scale[0]).Vec4(0),
		c1.Mul(1/scale[1]).Vec4(0),
		c2.Mul(1/scale[2]).Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	rotation = mgl32.Mat4ToQuat(basis).Normalize()
	return translation, rotation, scale
}

// rotationOnly strips scale and translation from m, leaving the rotation
// used to transform normals.
func rotationOnly(m mgl32.Mat4) mgl32.Mat4 {
	_, q, _ := decompose(m)
	return q.Mat4()
}

// --- Transform property setters ---
//
// All setters replace the stored value. Relative changes are read-modify-write
// on the caller's side.

// Transform returns the node's local transform.
func (g *Graph) Transform(id NodeID) Transform {
	return g.node(id).Transform
}

// SetTransform replaces the node's local transform.
func (g *Graph) SetTransform(id NodeID, t Transform) {
	g.node(id).Transform = t
}

// ResetTransform sets the node's translation, rotation and scale to identity.
func (g *Graph) ResetTransform(id NodeID) {
	g.node(id).Transform = IdentityTransform()
}

// SetTranslation sets the node's local translation.
func (g *Graph) SetTranslation(id NodeID, v mgl32.Vec3) {
	g.node(id).Transform.Translation = v
}

// SetRotation sets the node's local rotation.
func (g *Graph) SetRotation(id NodeID, q mgl32.Quat) {
	g.node(id).Transform.Rotation = q
}

// SetScale sets the node's local scale.
func (g *Graph) SetScale(id NodeID, v mgl32.Vec3) {
	g.node(id).Transform.Scale = v
}

// SetUniformScale sets all three scale components to s.
func (g *Graph) SetUniformScale(id NodeID, s float32) {
	g.SetScale(id, mgl32.Vec3{s, s, s})
}

// SetEulerRotation sets the rotation from X, Y, Z angles in radians, applied
// in XYZ order.
func (g *Graph) SetEulerRotation(id NodeID, x, y, z float32) {
	g.SetRotation(id, mgl32.AnglesToQuat(x, y, z, mgl32.XYZ))
}

// SetAxisRotation sets the rotation to angle radians about axis.
func (g *Graph) SetAxisRotation(id NodeID, axis mgl32.Vec3, angle float32) {
	g.SetRotation(id, mgl32.QuatRotate(angle, axis))
}

// --- Coordinate conversion ---

// LocalToWorld converts a point in the node's local space to world space.
func (g *Graph) LocalToWorld(id NodeID, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, g.WorldMatrix(id))
}

// WorldToLocal converts a world-space point to the node's local space.
func (g *Graph) WorldToLocal(id NodeID, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, g.WorldMatrix(id).Inv())
}
