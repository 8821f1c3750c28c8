package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sudorandom/city-globe/pkg/geo"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FovY   float64 // degrees
	Aspect float64
	Near   float64
	Far    float64
}

// NewPerspectiveCamera returns a camera at the origin looking down -Z.
func NewPerspectiveCamera(fovY, aspect, near, far float64) *Camera {
	return &Camera{
		Target: mgl64.Vec3{0, 0, -1},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   fovY,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// SetAspect updates the aspect ratio after a viewport resize. Degenerate sizes are ignored.
func (c *Camera) SetAspect(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// Forward is the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *Camera) up() mgl64.Vec3 {
	// LookAt degenerates when looking straight along Up.
	if math.Abs(c.Forward().Dot(c.Up.Normalize())) > 0.9999 {
		return mgl64.Vec3{0, 0, -1}
	}
	return c.Up
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.up())
}

func (c *Camera) Projection() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ViewProj is projection * view.
func (c *Camera) ViewProj() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// RayFromNDC builds a world-space ray through an NDC x/y position by unprojecting
// the near and far planes.
func (c *Camera) RayFromNDC(x, y float64) geo.Ray {
	inv := c.ViewProj().Inv()
	near := inv.Mul4x1(mgl64.Vec4{x, y, -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{x, y, 1, 1})
	if near[3] == 0 || far[3] == 0 {
		return geo.NewRay(c.Position, c.Forward())
	}
	n := near.Vec3().Mul(1 / near[3])
	f := far.Vec3().Mul(1 / far[3])
	return geo.NewRay(c.Position, f.Sub(n))
}

// RayToward builds a ray from the camera position toward a world point.
func (c *Camera) RayToward(p mgl64.Vec3) geo.Ray {
	return geo.NewRay(c.Position, p.Sub(c.Position))
}

// ScreenRadius approximates the on-screen radius in pixels of a sphere of radius r
// centered at p, for a viewport height in pixels.
func (c *Camera) ScreenRadius(p mgl64.Vec3, r, viewportHeight float64) float64 {
	d := p.Sub(c.Position).Len()
	if d <= r {
		return viewportHeight
	}
	half := math.Tan(mgl64.DegToRad(c.FovY) / 2)
	if half == 0 {
		return 0
	}
	return math.Tan(math.Asin(r/d)) / half * viewportHeight / 2
}
