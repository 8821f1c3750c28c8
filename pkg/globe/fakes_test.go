package globe

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/sources"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeLabel struct {
	text    string
	visible bool
	x, y    float64
	bold    bool
	shows   int
}

func (l *fakeLabel) Show(x, y float64) { l.visible, l.x, l.y = true, x, y; l.shows++ }
func (l *fakeLabel) Hide()             { l.visible = false }
func (l *fakeLabel) SetBold(b bool)    { l.bold = b }

type fakeOverlay struct {
	labels  map[string]*fakeLabel
	open    []*PopupSession
	opened  int
	removed int
}

func newFakeOverlay() *fakeOverlay {
	return &fakeOverlay{labels: make(map[string]*fakeLabel)}
}

func (o *fakeOverlay) NewLabel(text string) Label {
	l := &fakeLabel{text: text}
	o.labels[text] = l
	return l
}

func (o *fakeOverlay) OpenPopup(p *PopupSession) {
	o.open = append(o.open, p)
	o.opened++
}

func (o *fakeOverlay) RemovePopup(p *PopupSession) {
	for i, q := range o.open {
		if q == p {
			o.open = append(o.open[:i], o.open[i+1:]...)
			o.removed++
			return
		}
	}
}

func newTestController(t *testing.T, cities ...sources.City) (*Controller, *fakeOverlay) {
	t.Helper()
	ov := newFakeOverlay()
	opts := DefaultOptions()
	opts.Width, opts.Height = 1600, 900
	c := NewController(opts, ov, zerolog.Nop())
	if len(cities) == 0 {
		cities = sources.Cities
	}
	require.NoError(t, c.AddCities(cities))
	return c, ov
}

func zeroLogger() zerolog.Logger { return zerolog.Nop() }

// screenOf projects a marker's current world anchor to pixels.
func screenOf(c *Controller, m *Marker) (float64, float64) {
	w, h := c.Viewport()
	return geo.ToScreen(m.WorldAnchor(), c.Camera, w, h)
}

func highlighted(r *Registry) []*Marker {
	var out []*Marker
	for _, m := range r.All() {
		base, ok := m.BaseVisuals()
		if m.State() == Hovered || (ok && m.Visuals() != base) {
			out = append(out, m)
		}
	}
	return out
}

// assertVecInDelta compares per component. mgl64's ApproxEqual is relative and fails
// on rounding residue next to an exact zero.
func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}
