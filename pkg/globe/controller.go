// Package globe is the interactive core of the city globe: marker registry, hover
// highlighting, label layout, and the popup/camera state machine. Rendering and the
// floating overlay are collaborators reached through the scene package and Overlay.
package globe

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/scene"
	"github.com/sudorandom/city-globe/pkg/sources"
	"github.com/sudorandom/city-globe/pkg/tween"
)

var (
	ColorMarker    = color.RGBA{0xff, 0xa5, 0x00, 0xff} // Orange
	ColorHighlight = color.RGBA{0xff, 0x8c, 0x00, 0xff} // Dark orange
	ColorOcean     = color.RGBA{0x1b, 0x3a, 0x6b, 0xff}
)

// Options tunes the controller. Zero values are replaced by DefaultOptions.
type Options struct {
	Width, Height float64

	GlobeRadius    float64
	MarkerSize     float64
	MarkerColor    color.RGBA
	HighlightColor color.RGBA
	HighlightScale float64

	RotationSpeed float64 // radians per tick

	FovY, Near, Far float64
	CameraDistance  float64
	MinDistance     float64
	MaxDistance     float64

	FlyDuration  time.Duration
	FadeDuration time.Duration
	ZoomFactor   float64
	LabelOffset  float64
	ClickSlop    float64 // pixels a press may travel and still count as a click

	TPS int
}

func DefaultOptions() Options {
	return Options{
		Width:          1280,
		Height:         720,
		GlobeRadius:    5,
		MarkerSize:     0.05,
		MarkerColor:    ColorMarker,
		HighlightColor: ColorHighlight,
		HighlightScale: 1.2,
		RotationSpeed:  0.001,
		FovY:           75,
		Near:           0.1,
		Far:            1000,
		CameraDistance: 10,
		MinDistance:    6,
		MaxDistance:    30,
		FlyDuration:    time.Second,
		FadeDuration:   300 * time.Millisecond,
		ZoomFactor:     1.5,
		LabelOffset:    5,
		ClickSlop:      4,
		TPS:            60,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.GlobeRadius <= 0 {
		o.GlobeRadius = d.GlobeRadius
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = d.MarkerSize
	}
	if o.MarkerColor == (color.RGBA{}) {
		o.MarkerColor = d.MarkerColor
	}
	if o.HighlightColor == (color.RGBA{}) {
		o.HighlightColor = d.HighlightColor
	}
	if o.HighlightScale <= 0 {
		o.HighlightScale = d.HighlightScale
	}
	if o.FovY <= 0 {
		o.FovY = d.FovY
	}
	if o.Near <= 0 {
		o.Near = d.Near
	}
	if o.Far <= 0 {
		o.Far = d.Far
	}
	if o.CameraDistance <= 0 {
		o.CameraDistance = d.CameraDistance
	}
	if o.FlyDuration <= 0 {
		o.FlyDuration = d.FlyDuration
	}
	if o.FadeDuration <= 0 {
		o.FadeDuration = d.FadeDuration
	}
	if o.ZoomFactor <= 0 {
		o.ZoomFactor = d.ZoomFactor
	}
	if o.LabelOffset <= 0 {
		o.LabelOffset = d.LabelOffset
	}
	if o.ClickSlop <= 0 {
		o.ClickSlop = d.ClickSlop
	}
	if o.TPS <= 0 {
		o.TPS = d.TPS
	}
	return o
}

type pointerTarget int

const (
	pointerNone pointerTarget = iota
	pointerPopup
	pointerOrbit
)

// Controller is the whole application state. The host calls the event methods as input
// arrives and Tick once per frame, all from one goroutine.
type Controller struct {
	opts Options
	log  zerolog.Logger

	Root   *scene.Node
	Globe  *scene.Node
	Camera *scene.Camera

	overlay  Overlay
	registry *Registry
	hover    *HoverEngine
	layout   *LabelLayout
	orbit    *Orbit
	anim     *tween.Animator

	cities map[string]sources.City

	state State
	popup *PopupSession

	defaultPose mgl64.Vec3

	pointerX, pointerY float64
	pointerIn          bool
	press              pointerTarget
	pressX, pressY     float64
	pressMoved         bool
}

// NewController builds the scene and camera. overlay may be nil.
func NewController(opts Options, overlay Overlay, log zerolog.Logger) *Controller {
	opts = opts.withDefaults()
	if overlay == nil {
		overlay = nopOverlay{}
	}

	root := scene.NewNode("scene")
	body := scene.NewSphere("globe", opts.GlobeRadius, ColorOcean)
	root.Add(body)

	cam := scene.NewPerspectiveCamera(opts.FovY, opts.Width/opts.Height, opts.Near, opts.Far)
	cam.Target = mgl64.Vec3{}
	cam.Position = mgl64.Vec3{0, 0, opts.CameraDistance}

	c := &Controller{
		opts:        opts,
		log:         log,
		Root:        root,
		Globe:       body,
		Camera:      cam,
		overlay:     overlay,
		registry:    NewRegistry(body, overlay, opts.MarkerSize),
		layout:      NewLabelLayout(opts.LabelOffset, opts.CameraDistance),
		orbit:       NewOrbit(opts.TPS, opts.MinDistance, opts.MaxDistance),
		anim:        tween.NewAnimator(),
		cities:      make(map[string]sources.City),
		defaultPose: cam.Position,
	}
	c.hover = NewHoverEngine(c.registry, opts.HighlightScale, opts.HighlightColor)
	return c
}

// AddCities registers a marker per city. A duplicate name aborts with ErrDuplicateCity.
func (c *Controller) AddCities(cities []sources.City) error {
	for _, city := range cities {
		if _, err := c.registry.CreateMarker(city.Name, city.Lat, city.Lon, c.opts.GlobeRadius, c.opts.MarkerColor); err != nil {
			return fmt.Errorf("registering markers: %w", err)
		}
		c.cities[city.Name] = city
	}
	c.log.Debug().Int("markers", c.registry.Len()).Msg("markers registered")
	return nil
}

func (c *Controller) Registry() *Registry { return c.registry }

func (c *Controller) Hover() *HoverEngine { return c.hover }

func (c *Controller) Options() Options { return c.opts }

func (c *Controller) Viewport() (w, h float64) { return c.opts.Width, c.opts.Height }

// Popup returns the live popup session, or nil.
func (c *Controller) Popup() *PopupSession { return c.popup }

func (c *Controller) State() State { return c.state }

// RotationSuppressed is true exactly while a popup session exists.
func (c *Controller) RotationSuppressed() bool { return c.state != Idle }

// CameraTween returns the running camera transition, if any.
func (c *Controller) CameraTween() (tween.Tween, bool) { return c.anim.Tween(animCamera) }

// Resize updates the viewport and the camera aspect.
func (c *Controller) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.opts.Width, c.opts.Height = width, height
	c.Camera.SetAspect(width, height)
}

func (c *Controller) pointerRay(x, y float64) geo.Ray {
	nx, ny := geo.ScreenToNDC(x, y, c.opts.Width, c.opts.Height)
	return c.Camera.RayFromNDC(nx, ny)
}

// PointerMove handles pointer motion: popup drag, orbit drag, then hover.
func (c *Controller) PointerMove(x, y float64) {
	dx, dy := x-c.pointerX, y-c.pointerY
	c.pointerX, c.pointerY, c.pointerIn = x, y, true

	if c.press != pointerNone {
		if abs(x-c.pressX) > c.opts.ClickSlop || abs(y-c.pressY) > c.opts.ClickSlop {
			c.pressMoved = true
		}
	}
	switch c.press {
	case pointerPopup:
		if c.popup != nil {
			c.popup.dragTo(x, y)
		}
	case pointerOrbit:
		// The camera tween owns the camera; motion during it is dropped, not queued.
		if c.pressMoved && !c.anim.Active(animCamera) {
			c.orbit.Drag(dx, dy)
		}
	}
	c.updateHover()
}

// PointerLeave drops the hover highlight when the pointer exits the viewport.
func (c *Controller) PointerLeave() {
	c.pointerIn = false
	c.hover.Clear()
}

// PointerDown starts a popup drag when pressed on the popup body, otherwise an orbit drag.
func (c *Controller) PointerDown(x, y float64) {
	c.pointerX, c.pointerY, c.pointerIn = x, y, true
	c.pressX, c.pressY, c.pressMoved = x, y, false

	if p := c.popup; p != nil && p.Contains(x, y) {
		c.press = pointerPopup
		if !p.CloseButton().Contains(x, y) {
			p.beginDrag(x, y)
		}
		return
	}
	c.press = pointerOrbit
	c.orbit.BeginDrag()
}

// PointerUp ends any drag. A press that did not travel counts as a click.
func (c *Controller) PointerUp(x, y float64, now time.Time) {
	press, moved := c.press, c.pressMoved
	c.press = pointerNone
	c.pressMoved = false
	if c.popup != nil {
		c.popup.endDrag()
	}
	c.orbit.EndDrag()

	if press != pointerNone && !moved {
		c.Click(x, y, now)
	}
}

// Wheel zooms the orbit camera.
func (c *Controller) Wheel(notches float64) {
	if notches == 0 || c.anim.Active(animCamera) {
		return
	}
	c.orbit.Zoom(notches)
}

func (c *Controller) updateHover() {
	if !c.pointerIn {
		return
	}
	if c.popup != nil && c.popup.Contains(c.pointerX, c.pointerY) {
		c.hover.Clear()
		return
	}
	c.hover.Update(c.pointerRay(c.pointerX, c.pointerY))
}

// Tick advances one frame. Order matters: animations, popup removal, rotation, orbit,
// marker re-projection and label layout, then hover against the fresh positions.
func (c *Controller) Tick(now time.Time) {
	c.anim.Update(now)
	c.expirePopup(now)

	if !c.RotationSuppressed() {
		c.Globe.RotationY += c.opts.RotationSpeed
	}
	if !c.anim.Active(animCamera) && c.orbit.Moving() {
		c.orbit.Update(c.Camera)
	}

	c.layout.Update(c.registry, c.Globe, c.Camera, c.opts.Width, c.opts.Height)
	c.updateHover()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
