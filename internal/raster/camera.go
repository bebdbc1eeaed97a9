package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed perspective camera.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FOV    float32 // vertical, radians
	Near   float32
	Far    float32
}

// cameraDirection is the direction from the target to the eye. Z is up.
var cameraDirection = mgl32.Vec3{1, -2, 1}

// DefaultCamera looks at the origin from distance*(1, -2, 1) with Z up, so
// the top, right and back faces of the cube are visible.
func DefaultCamera(distance float32) Camera {
	return Camera{
		Eye:  cameraDirection.Mul(distance),
		Up:   mgl32.Vec3{0, 0, 1},
		FOV:  math.Pi / 4,
		Near: 1,
		Far:  1000,
	}
}

// FitCamera returns DefaultCamera placed far enough to frame a cube whose
// outer faces sit at ±extent.
func FitCamera(extent float32) Camera {
	d := extent * 1.9
	if d < 4 {
		d = 4
	}
	return DefaultCamera(d)
}

// View returns the world-to-eye matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// ViewProjection returns projection * view for the given aspect ratio.
func (c Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far).Mul4(c.View())
}
