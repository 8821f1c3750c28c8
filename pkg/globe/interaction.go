package globe

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sudorandom/city-globe/pkg/scene"
	"github.com/sudorandom/city-globe/pkg/sources"
	"github.com/sudorandom/city-globe/pkg/tween"
)

// State is the popup state machine's state.
type State int

const (
	Idle State = iota
	PopupOpen
	Closing
)

func (s State) String() string {
	switch s {
	case PopupOpen:
		return "popup-open"
	case Closing:
		return "closing"
	default:
		return "idle"
	}
}

const (
	animCamera = "camera"
	animPopup  = "popup"
)

// Click handles a completed click at screen (x, y). Clicks on the popup never reach
// the globe; the close button starts closing.
func (c *Controller) Click(x, y float64, now time.Time) {
	if p := c.popup; p != nil && p.Contains(x, y) {
		if p.CloseButton().Contains(x, y) {
			c.ClosePopup(now)
		}
		return
	}

	m := c.pickClick(x, y)
	if m == nil {
		return
	}
	c.OpenPopup(m, now)
}

// pickClick returns the marker nearest the camera under (x, y), or nil when the nearest
// thing hit is the globe body or nothing at all.
func (c *Controller) pickClick(x, y float64) *Marker {
	objects := append([]*scene.Node{c.Globe}, c.registry.Objects()...)
	hit, ok := scene.Nearest(c.pointerRay(x, y), objects...)
	if !ok {
		return nil
	}
	m, _ := c.registry.FindByRenderObject(hit.Object)
	return m
}

// OpenPopup opens the popup for m, replacing any existing one, flies the camera toward
// the marker and suppresses auto-rotation.
func (c *Controller) OpenPopup(m *Marker, now time.Time) {
	if m == nil {
		return
	}
	c.teardownPopup()

	city, ok := c.cities[m.Name]
	if !ok {
		city = sources.City{Name: m.Name}
	}
	p := newPopupSession(m.Name, sources.CountryName(city.Country), city.Images, c.opts.Width, c.opts.Height, now)
	c.popup = p
	c.overlay.OpenPopup(p)
	c.state = PopupOpen

	target := m.WorldAnchor().Mul(c.opts.ZoomFactor)
	c.orbit.Stop()
	c.anim.Start(animCamera, tween.VecTarget{V: &c.Camera.Position}, target, now, c.opts.FlyDuration, tween.QuadraticOut, nil)
	c.anim.Start(animPopup, tween.ScalarTarget{F: &p.Opacity}, mgl64.Vec3{1}, now, c.opts.FadeDuration, tween.QuadraticOut, nil)

	c.log.Info().Str("city", p.City).Str("session", p.ID).Msg("popup opened")
}

// ClosePopup fades the popup out, flies the camera back to the default pose and
// schedules removal. It only acts on an open popup.
func (c *Controller) ClosePopup(now time.Time) {
	p := c.popup
	if c.state != PopupOpen || p == nil {
		return
	}
	p.Phase = PopupClosing
	p.endDrag()
	p.removeAt = now.Add(c.opts.FadeDuration)
	c.state = Closing

	c.orbit.Stop()
	c.anim.Start(animPopup, tween.ScalarTarget{F: &p.Opacity}, mgl64.Vec3{0}, now, c.opts.FadeDuration, tween.QuadraticOut, nil)
	c.anim.Start(animCamera, tween.VecTarget{V: &c.Camera.Position}, c.defaultPose, now, c.opts.FlyDuration, tween.QuadraticOut, nil)

	c.log.Info().Str("city", p.City).Str("session", p.ID).Msg("popup closing")
}

func (c *Controller) expirePopup(now time.Time) {
	p := c.popup
	if c.state != Closing || p == nil || now.Before(p.removeAt) {
		return
	}
	c.teardownPopup()
	c.log.Debug().Str("city", p.City).Str("session", p.ID).Msg("popup removed")
}

// teardownPopup removes the current popup immediately, whatever its phase.
func (c *Controller) teardownPopup() {
	if c.popup == nil {
		c.state = Idle
		return
	}
	c.anim.Cancel(animPopup)
	if c.press == pointerPopup {
		c.press = pointerNone
	}
	c.overlay.RemovePopup(c.popup)
	c.popup = nil
	c.state = Idle
}
