// Package render hosts the globe in an ebiten window. It draws the scene and the overlay
// elements, and feeds mouse and keyboard input to the globe controller.
package render

import (
	"bytes"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"github.com/sudorandom/city-globe/pkg/assets"
	"github.com/sudorandom/city-globe/pkg/globe"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	meshStacks = 48
	meshSlices = 96
)

// Host implements ebiten.Game and globe.Overlay.
type Host struct {
	CaptureDir string

	ctrl   *globe.Controller
	loader *assets.Loader
	log    zerolog.Logger

	width, height int

	texture *ebiten.Image
	mesh    *SphereMesh
	verts   []ebiten.Vertex
	indices []uint16

	fontSource *text.GoTextFaceSource
	boldSource *text.GoTextFaceSource

	labels []*label
	popup  *globe.PopupSession
	photos map[string]*ebiten.Image

	pointerInside bool
	lastX, lastY  float64
	captureNext   bool
	cursor        ebiten.CursorShapeType
}

func NewHost(width, height int, loader *assets.Loader, log zerolog.Logger) *Host {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Error().Err(err).Msg("loading regular font")
	}
	b, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Error().Err(err).Msg("loading bold font")
	}
	return &Host{
		width:      width,
		height:     height,
		loader:     loader,
		log:        log,
		fontSource: s,
		boldSource: b,
		photos:     make(map[string]*ebiten.Image),
	}
}

// Attach connects the controller the host drives. The controller must have been built
// with this host as its overlay.
func (h *Host) Attach(ctrl *globe.Controller) {
	h.ctrl = ctrl
	h.mesh = NewSphereMesh(ctrl.Options().GlobeRadius, meshStacks, meshSlices)
	ctrl.Resize(float64(h.width), float64(h.height))
}

// SetTexture sets the equirectangular image wrapped around the globe.
func (h *Host) SetTexture(img image.Image) {
	if img == nil {
		h.texture = nil
		return
	}
	h.texture = ebiten.NewImageFromImage(img)
}

func (h *Host) Update() error {
	if h.ctrl == nil {
		return nil
	}
	now := time.Now()
	h.pollInput(now)
	h.ctrl.Tick(now)
	if shape := h.cursorShape(); shape != h.cursor {
		h.cursor = shape
		ebiten.SetCursorShape(shape)
	}
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)
	if h.ctrl == nil {
		return
	}
	h.drawGlobe(screen)
	h.drawMarkers(screen)
	h.drawLabels(screen)
	h.drawPopup(screen)

	if h.captureNext {
		h.captureNext = false
		h.captureFrame(screen, time.Now())
	}
}

// Layout follows the window size and keeps the controller's viewport in step.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != h.width || outsideHeight != h.height) {
		h.width, h.height = outsideWidth, outsideHeight
		if h.ctrl != nil {
			h.ctrl.Resize(float64(outsideWidth), float64(outsideHeight))
		}
		h.log.Debug().Int("width", outsideWidth).Int("height", outsideHeight).Msg("viewport resized")
	}
	return h.width, h.height
}
