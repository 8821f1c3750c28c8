package globe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/scene"
)

// LabelLayout decides each frame which markers can be seen and where their labels go.
// It never touches highlight state.
type LabelLayout struct {
	// OffsetK scales the label's downward offset: OffsetK * distance / BaseDistance.
	OffsetK      float64
	BaseDistance float64
	// Tolerance absorbs rounding when the globe surface and a marker coincide.
	Tolerance float64
}

func NewLabelLayout(offsetK, baseDistance float64) *LabelLayout {
	return &LabelLayout{OffsetK: offsetK, BaseDistance: baseDistance, Tolerance: 1e-4}
}

// Facing reports whether p lies in front of the camera.
func Facing(cam *scene.Camera, p mgl64.Vec3) bool {
	d := p.Sub(cam.Position)
	if d.Len() == 0 {
		return false
	}
	return cam.Forward().Dot(d.Normalize()) > 0
}

// Occluded reports whether body lies between the camera and p.
func (l *LabelLayout) Occluded(cam *scene.Camera, p mgl64.Vec3, body *scene.Node) bool {
	if body == nil {
		return false
	}
	hit, ok := scene.Nearest(cam.RayToward(p), body)
	if !ok {
		return false
	}
	return hit.Distance < p.Sub(cam.Position).Len()-l.Tolerance
}

// Offset is the distance-proportional label drop for a marker at distance from the camera.
func (l *LabelLayout) Offset(distance float64) float64 {
	if l.BaseDistance == 0 {
		return 0
	}
	return l.OffsetK * distance / l.BaseDistance
}

// Update re-projects every marker and shows or hides its label.
func (l *LabelLayout) Update(r *Registry, body *scene.Node, cam *scene.Camera, width, height float64) {
	if r == nil || cam == nil {
		return
	}
	for _, m := range r.All() {
		l.place(m, body, cam, width, height)
	}
}

func (l *LabelLayout) place(m *Marker, body *scene.Node, cam *scene.Camera, width, height float64) {
	p := m.WorldAnchor()
	if !Facing(cam, p) || l.Occluded(cam, p, body) {
		m.onScreen = false
		if m.Label != nil {
			m.Label.Hide()
		}
		return
	}

	x, y := geo.ToScreen(p, cam, width, height)
	m.onScreen = true
	m.screenX, m.screenY = x, y
	if m.Label != nil {
		m.Label.Show(x, y+l.Offset(p.Sub(cam.Position).Len()))
	}
}
