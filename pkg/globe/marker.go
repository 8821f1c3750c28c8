package globe

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/scene"
)

// HighlightState is a marker's hover state.
type HighlightState int

const (
	Normal HighlightState = iota
	Hovered
)

func (s HighlightState) String() string {
	if s == Hovered {
		return "hovered"
	}
	return "normal"
}

// Visuals is the part of a marker's appearance that hovering changes.
type Visuals struct {
	Scale float64
	Color color.RGBA
	Bold  bool
}

// Marker is a city pinned to the globe.
type Marker struct {
	Name   string
	Lat    float64
	Lon    float64
	Radius float64

	Object *scene.Node
	Label  Label

	state HighlightState
	bold  bool
	base  *Visuals

	onScreen         bool
	screenX, screenY float64
}

// Anchor is the marker's position in globe space, always derived from its coordinate.
func (m *Marker) Anchor() mgl64.Vec3 {
	return geo.ToCartesian(m.Lat, m.Lon, m.Radius)
}

// WorldAnchor recomputes the anchor, stores it on the render primitive and returns it
// in world space, taking the globe's current transform into account.
func (m *Marker) WorldAnchor() mgl64.Vec3 {
	a := m.Anchor()
	if m.Object == nil {
		return a
	}
	m.Object.Position = a
	if p := m.Object.Parent(); p != nil {
		return p.LocalToWorld(a)
	}
	return a
}

func (m *Marker) State() HighlightState { return m.state }

// Visuals reports the marker's current appearance.
func (m *Marker) Visuals() Visuals {
	v := Visuals{Scale: 1, Bold: m.bold}
	if m.Object != nil {
		v.Scale = m.Object.Scale
		v.Color = m.Object.Color
	}
	return v
}

// BaseVisuals returns the appearance captured before the first highlight.
func (m *Marker) BaseVisuals() (Visuals, bool) {
	if m.base == nil {
		return Visuals{}, false
	}
	return *m.base, true
}

// OnScreen reports whether the last layout pass found the marker visible, and its
// projected screen position.
func (m *Marker) OnScreen() (x, y float64, ok bool) {
	return m.screenX, m.screenY, m.onScreen
}

func (m *Marker) captureBase() {
	if m.base != nil {
		return
	}
	v := m.Visuals()
	m.base = &v
}

func (m *Marker) apply(v Visuals) {
	if m.Object != nil {
		m.Object.Scale = v.Scale
		m.Object.Color = v.Color
	}
	m.bold = v.Bold
	if m.Label != nil {
		m.Label.SetBold(v.Bold)
	}
}
