package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sudorandom/city-globe/pkg/globe"
)

var (
	colorLabel       = color.RGBA{235, 235, 235, 235}
	colorLabelShadow = color.RGBA{0, 0, 0, 160}
	colorPanel       = color.RGBA{12, 18, 32, 235}
	colorPanelEdge   = color.RGBA{60, 80, 110, 255}
	colorButton      = color.RGBA{0xff, 0x8c, 0x00, 255}
	colorSubtitle    = color.RGBA{170, 185, 205, 255}
)

const (
	labelFontSize    = 14.0
	titleFontSize    = 22.0
	subtitleFontSize = 15.0
	popupPadding     = 14.0
	minMarkerPixels  = 2.0
)

func (h *Host) drawGlobe(screen *ebiten.Image) {
	if h.mesh == nil {
		return
	}
	src := h.texture
	if src == nil {
		src = solidImage(ColorSea)
	}
	b := src.Bounds()
	w, hh := h.ctrl.Viewport()
	h.verts, h.indices = h.mesh.Project(h.ctrl.Globe.WorldMatrix(), h.ctrl.Camera, w, hh, b.Dx(), b.Dy(), h.verts, h.indices)
	if len(h.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.Filter = ebiten.FilterLinear
	op.Address = ebiten.AddressClampToZero
	screen.DrawTriangles(h.verts, h.indices, src, op)
}

func (h *Host) drawMarkers(screen *ebiten.Image) {
	_, vh := h.ctrl.Viewport()
	for _, m := range h.ctrl.Registry().All() {
		x, y, ok := m.OnScreen()
		if !ok || m.Object == nil {
			continue
		}
		r := h.ctrl.Camera.ScreenRadius(m.Object.WorldPosition(), m.Object.WorldRadius(), vh)
		r = math.Max(r, minMarkerPixels)
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(r), m.Object.Color, true)
	}
}

func (h *Host) drawLabels(screen *ebiten.Image) {
	for _, l := range h.labels {
		if !l.visible {
			continue
		}
		src := h.fontSource
		if l.bold {
			src = h.boldSource
		}
		if src == nil {
			continue
		}
		face := &text.GoTextFace{Source: src, Size: labelFontSize}
		drawCentered(screen, l.text, face, l.x+1, l.y+1, colorLabelShadow, 1)
		drawCentered(screen, l.text, face, l.x, l.y, colorLabel, 1)
	}
}

func (h *Host) drawPopup(screen *ebiten.Image) {
	p := h.popup
	if p == nil || p.Opacity <= 0 {
		return
	}
	a := p.Opacity
	b := p.Bounds

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fade(colorPanel, a), true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, fade(colorPanelEdge, a), true)

	y := b.Y + popupPadding
	if h.boldSource != nil {
		face := &text.GoTextFace{Source: h.boldSource, Size: titleFontSize}
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X+popupPadding, y)
		op.ColorScale.ScaleWithColor(colorLabel)
		op.ColorScale.ScaleAlpha(float32(a))
		text.Draw(screen, p.City, face, op)
	}
	y += titleFontSize + 6
	if h.fontSource != nil && p.Country != "" {
		face := &text.GoTextFace{Source: h.fontSource, Size: subtitleFontSize}
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X+popupPadding, y)
		op.ColorScale.ScaleWithColor(colorSubtitle)
		op.ColorScale.ScaleAlpha(float32(a))
		text.Draw(screen, p.Country, face, op)
	}
	y += subtitleFontSize + 16

	btn := p.CloseButton()
	h.drawPhotos(screen, p, b.X+popupPadding, y, b.W-2*popupPadding, btn.Y-y-popupPadding, a)

	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), fade(colorButton, a), true)
	if h.boldSource != nil {
		face := &text.GoTextFace{Source: h.boldSource, Size: subtitleFontSize}
		drawCentered(screen, "Close", face, btn.X+btn.W/2, btn.Y+(btn.H-subtitleFontSize)/2, colorLabel, a)
	}
}

// drawPhotos lays the popup's images side by side in the given box, each scaled to fit.
func (h *Host) drawPhotos(screen *ebiten.Image, p *globe.PopupSession, x, y, w, hh, alpha float64) {
	if len(p.Images) == 0 || w <= 0 || hh <= 0 {
		return
	}
	const gap = 10.0
	cell := (w - gap*float64(len(p.Images)-1)) / float64(len(p.Images))
	for i, ref := range p.Images {
		img := h.photos[ref]
		if img == nil {
			continue
		}
		iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		if iw == 0 || ih == 0 {
			continue
		}
		s := math.Min(cell/iw, hh/ih)
		cx := x + float64(i)*(cell+gap) + (cell-iw*s)/2
		cy := y + (hh-ih*s)/2

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(cx, cy)
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

func drawCentered(screen *ebiten.Image, s string, face text.Face, x, y float64, c color.RGBA, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, s, face, op)
}

// fade scales a premultiplied color by alpha.
func fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

var solidImages = map[color.RGBA]*ebiten.Image{}

func solidImage(c color.RGBA) *ebiten.Image {
	if img, ok := solidImages[c]; ok {
		return img
	}
	img := ebiten.NewImage(4, 4)
	img.Fill(c)
	solidImages[c] = img
	return img
}
