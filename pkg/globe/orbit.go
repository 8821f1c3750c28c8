package globe

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sudorandom/city-globe/pkg/scene"
)

// Orbit rotates the camera around its target from pointer drags and zooms from the
// wheel. Released drags coast to a stop on a critically damped spring.
type Orbit struct {
	RotateSpeed float64 // radians per pixel
	ZoomStep    float64 // fraction of distance per wheel notch
	MinDistance float64
	MaxDistance float64

	spring   harmonica.Spring
	dragging bool
	pendX    float64
	pendY    float64
	zoom     float64

	azVel, azAccel   float64
	polVel, polAccel float64
}

func NewOrbit(fps int, minDist, maxDist float64) *Orbit {
	if fps <= 0 {
		fps = 60
	}
	return &Orbit{
		RotateSpeed: 0.005,
		ZoomStep:    0.1,
		MinDistance: minDist,
		MaxDistance: maxDist,
		// Frequency 6, damping 1: quick, no overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

func (o *Orbit) BeginDrag() { o.dragging = true }

func (o *Orbit) EndDrag() { o.dragging = false }

func (o *Orbit) Dragging() bool { return o.dragging }

// Drag records pointer movement to apply on the next Update.
func (o *Orbit) Drag(dx, dy float64) {
	if !o.dragging {
		return
	}
	o.pendX += dx
	o.pendY += dy
}

// Zoom records wheel movement. Positive notches move closer.
func (o *Orbit) Zoom(notches float64) { o.zoom += notches }

// Stop kills any coasting motion and pending input.
func (o *Orbit) Stop() {
	o.azVel, o.azAccel, o.polVel, o.polAccel = 0, 0, 0, 0
	o.pendX, o.pendY, o.zoom = 0, 0, 0
}

// Moving reports whether Update would change the camera.
func (o *Orbit) Moving() bool {
	const eps = 1e-6
	return o.dragging || o.zoom != 0 || math.Abs(o.azVel) > eps || math.Abs(o.polVel) > eps
}

// Update applies pending input and coasting velocity to cam.
func (o *Orbit) Update(cam *scene.Camera) {
	if cam == nil {
		return
	}
	if o.dragging {
		o.azVel = -o.pendX * o.RotateSpeed
		o.polVel = -o.pendY * o.RotateSpeed
	}
	o.pendX, o.pendY = 0, 0

	offset := cam.Position.Sub(cam.Target)
	r := offset.Len()
	if r == 0 {
		return
	}
	polar := math.Acos(clampUnit(offset[1] / r))
	az := math.Atan2(offset[0], offset[2])

	az += o.azVel
	polar += o.polVel
	polar = math.Max(0.01, math.Min(math.Pi-0.01, polar))

	if o.zoom != 0 {
		r *= math.Pow(1-o.ZoomStep, o.zoom)
		o.zoom = 0
	}
	if o.MinDistance > 0 && r < o.MinDistance {
		r = o.MinDistance
	}
	if o.MaxDistance > 0 && r > o.MaxDistance {
		r = o.MaxDistance
	}

	cam.Position = cam.Target.Add(mgl64.Vec3{
		r * math.Sin(polar) * math.Sin(az),
		r * math.Cos(polar),
		r * math.Sin(polar) * math.Cos(az),
	})

	if !o.dragging {
		o.azVel, o.azAccel = o.spring.Update(o.azVel, o.azAccel, 0)
		o.polVel, o.polAccel = o.spring.Update(o.polVel, o.polAccel, 0)
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
