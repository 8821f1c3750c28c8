// Package geo converts between geographic coordinates, globe-space points and screen space.
package geo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ViewProjector is anything that can hand back a combined view-projection matrix.
type ViewProjector interface {
	ViewProj() mgl64.Mat4
}

// ToCartesian places (lat, lon) on a sphere of the given radius centered on the origin.
// Longitude is negated so that points line up with an equirectangular texture wrapped
// by the same function; flipping it mirrors every marker across the prime meridian.
func ToCartesian(lat, lon, radius float64) mgl64.Vec3 {
	latRad := lat * math.Pi / 180
	lonRad := -lon * math.Pi / 180
	return mgl64.Vec3{
		math.Cos(latRad) * math.Cos(lonRad) * radius,
		math.Sin(latRad) * radius,
		math.Cos(latRad) * math.Sin(lonRad) * radius,
	}
}

// FromCartesian is the inverse of ToCartesian. The origin maps to (0, 0, 0).
func FromCartesian(p mgl64.Vec3) (lat, lon, radius float64) {
	radius = p.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	lat = math.Asin(clamp(p[1]/radius, -1, 1)) * 180 / math.Pi
	lon = -math.Atan2(p[2], p[0]) * 180 / math.Pi
	return lat, lon, radius
}

// ToNDC transforms a world point into normalized device coordinates. ok is false when
// the point sits on the camera plane (w == 0) and cannot be projected.
func ToNDC(p mgl64.Vec3, vp ViewProjector) (ndc mgl64.Vec3, ok bool) {
	clip := vp.ViewProj().Mul4x1(p.Vec4(1))
	if clip[3] == 0 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}, true
}

// ToScreen projects a world point to pixel coordinates. Screen Y grows downward.
func ToScreen(p mgl64.Vec3, vp ViewProjector, width, height float64) (x, y float64) {
	ndc, ok := ToNDC(p, vp)
	if !ok {
		return math.NaN(), math.NaN()
	}
	return NDCToScreen(ndc[0], ndc[1], width, height)
}

// NDCToScreen maps an NDC x/y pair to pixels.
func NDCToScreen(ndcX, ndcY, width, height float64) (x, y float64) {
	x = (ndcX*0.5 + 0.5) * width
	y = (1 - (ndcY*0.5 + 0.5)) * height
	return x, y
}

// ScreenToNDC maps pixels back to NDC x/y.
func ScreenToNDC(x, y, width, height float64) (ndcX, ndcY float64) {
	if width == 0 || height == 0 {
		return 0, 0
	}
	ndcX = (x/width)*2 - 1
	ndcY = -(y/height)*2 + 1
	return ndcX, ndcY
}

// TextureUV returns the equirectangular texture coordinate for (lat, lon), u in [0,1]
// left to right from -180, v in [0,1] top to bottom from +90.
func TextureUV(lat, lon float64) (u, v float64) {
	return (lon + 180) / 360, (90 - lat) / 180
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
