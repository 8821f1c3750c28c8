package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay normalizes dir. A zero direction yields a ray that hits nothing.
func NewRay(origin, dir mgl64.Vec3) Ray {
	if dir.Len() == 0 {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere returns the distance to the nearest non-negative intersection with a
// sphere. A ray starting inside the sphere reports the exit point.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	if r.Direction.Len() == 0 || radius <= 0 {
		return 0, false
	}
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}
