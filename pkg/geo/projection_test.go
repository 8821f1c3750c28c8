package geo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fixedVP mgl64.Mat4

func (f fixedVP) ViewProj() mgl64.Mat4 { return mgl64.Mat4(f) }

// vecNear compares per component. mgl64's ApproxEqual is relative and never
// matches a rounding residue against an exact zero.
func vecNear(got, want mgl64.Vec3, tol float64) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			return false
		}
	}
	return true
}

func TestToCartesian(t *testing.T) {
	tests := []struct {
		lat, lon, radius float64
		want             mgl64.Vec3
	}{
		{0, 0, 5, mgl64.Vec3{5, 0, 0}},
		{90, 0, 5, mgl64.Vec3{0, 5, 0}},
		{-90, 0, 5, mgl64.Vec3{0, -5, 0}},
		{0, 90, 5, mgl64.Vec3{0, 0, -5}}, // East goes to -Z
		{0, -90, 5, mgl64.Vec3{0, 0, 5}},
		{0, 180, 1, mgl64.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		got := ToCartesian(tt.lat, tt.lon, tt.radius)
		if !vecNear(got, tt.want, 1e-9) {
			t.Errorf("ToCartesian(%f, %f, %f) = %v; want %v", tt.lat, tt.lon, tt.radius, got, tt.want)
		}
	}
}

func TestToCartesianPreservesRadius(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 7.5 {
		for lon := -180.0; lon <= 180; lon += 11.25 {
			for _, r := range []float64{0.5, 1, 5, 5.05, 123.4} {
				got := ToCartesian(lat, lon, r).Len()
				if math.Abs(got-r) > 1e-9 {
					t.Fatalf("|ToCartesian(%f, %f, %f)| = %f; want %f", lat, lon, r, got, r)
				}
			}
		}
	}
}

func TestFromCartesianRoundTrip(t *testing.T) {
	cities := [][2]float64{
		{40.7128, -74.0060},
		{-8.3405, 115.0920},
		{37.5665, 126.9780},
		{0, 0},
	}
	for _, c := range cities {
		lat, lon, r := FromCartesian(ToCartesian(c[0], c[1], 5))
		if math.Abs(lat-c[0]) > 1e-9 || math.Abs(lon-c[1]) > 1e-9 || math.Abs(r-5) > 1e-9 {
			t.Errorf("round trip of %v = (%f, %f, %f)", c, lat, lon, r)
		}
	}

	if lat, lon, r := FromCartesian(mgl64.Vec3{}); lat != 0 || lon != 0 || r != 0 {
		t.Errorf("FromCartesian(origin) = (%f, %f, %f); want zeros", lat, lon, r)
	}
}

func TestToScreen(t *testing.T) {
	vp := fixedVP(mgl64.Ident4())

	tests := []struct {
		p            mgl64.Vec3
		wantX, wantY float64
	}{
		{mgl64.Vec3{0, 0, 0}, 960, 540},
		{mgl64.Vec3{-1, 1, 0}, 0, 0},    // Top left
		{mgl64.Vec3{1, -1, 0}, 1920, 1080}, // Bottom right
		{mgl64.Vec3{0.5, 0.5, 0}, 1440, 270},
	}

	for _, tt := range tests {
		x, y := ToScreen(tt.p, vp, 1920, 1080)
		if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
			t.Errorf("ToScreen(%v) = (%f, %f); want (%f, %f)", tt.p, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestScreenToNDCInvertsNDCToScreen(t *testing.T) {
	for _, p := range [][2]float64{{0, 0}, {-1, 1}, {0.25, -0.75}} {
		x, y := NDCToScreen(p[0], p[1], 800, 600)
		nx, ny := ScreenToNDC(x, y, 800, 600)
		if math.Abs(nx-p[0]) > 1e-12 || math.Abs(ny-p[1]) > 1e-12 {
			t.Errorf("ScreenToNDC(NDCToScreen(%v)) = (%f, %f)", p, nx, ny)
		}
	}
}

func TestTextureUV(t *testing.T) {
	u, v := TextureUV(90, -180)
	if u != 0 || v != 0 {
		t.Errorf("TextureUV(90, -180) = (%f, %f); want (0, 0)", u, v)
	}
	u, v = TextureUV(0, 0)
	if u != 0.5 || v != 0.5 {
		t.Errorf("TextureUV(0, 0) = (%f, %f); want (0.5, 0.5)", u, v)
	}
}
