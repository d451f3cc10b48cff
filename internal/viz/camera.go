package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera is an orbiting perspective camera looking at the origin down -Z.
type Camera struct {
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 3, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Reset() {
	c.RotX, c.RotY, c.Zoom = 0, 0, 1
}

func (c *Camera) rotate(p r3.Vec) r3.Vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// Project maps a world point to dot coordinates on a sw x sh raster. ok is
// false for points behind the camera; points off the raster still project.
func (c *Camera) Project(p r3.Vec, sw, sh int) (x, y int, depth float64, ok bool) {
	rot := r3.Scale(c.Zoom, c.rotate(p))
	if rot.Z >= c.Distance-1e-3 {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	unit := float64(min(sw, sh)) / 2
	x = int(math.Round(rot.X*scale*unit)) + sw/2
	y = int(math.Round(-rot.Y*scale*unit)) + sh/2
	return x, y, rot.Z, true
}

// atan2Deg is atan2 in degrees, mapped to [0, 360).
func atan2Deg(y, x float64) float64 {
	a := math.Atan2(y, x) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}
