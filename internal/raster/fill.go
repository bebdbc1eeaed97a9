package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FillPolygon calls plot for every pixel of a width x height grid whose
// center lies inside the convex polygon pts.
func FillPolygon(pts []mgl32.Vec2, width, height int, plot func(x, y int)) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y(), pts[0].Y()
	for _, p := range pts[1:] {
		minY = min(minY, p.Y())
		maxY = max(maxY, p.Y())
	}
	y0 := max(0, int(math.Ceil(float64(minY-0.5))))
	y1 := min(height-1, int(math.Ceil(float64(maxY-0.5)))-1)

	for y := y0; y <= y1; y++ {
		sy := float32(y) + 0.5
		xMin, xMax := float32(math.Inf(1)), float32(math.Inf(-1))
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y() <= sy && sy < b.Y()) || (b.Y() <= sy && sy < a.Y()) {
				x := a.X() + (sy-a.Y())*(b.X()-a.X())/(b.Y()-a.Y())
				xMin = min(xMin, x)
				xMax = max(xMax, x)
			}
		}
		if xMin > xMax {
			continue
		}
		x0 := max(0, int(math.Ceil(float64(xMin-0.5))))
		x1 := min(width-1, int(math.Ceil(float64(xMax-0.5)))-1)
		for x := x0; x <= x1; x++ {
			plot(x, y)
		}
	}
}
