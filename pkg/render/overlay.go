package render

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sudorandom/city-globe/pkg/assets"
	"github.com/sudorandom/city-globe/pkg/globe"
)

// label is a marker name drawn over the globe.
type label struct {
	text    string
	x, y    float64
	visible bool
	bold    bool
}

func (l *label) Show(x, y float64) {
	l.x, l.y = x, y
	l.visible = true
}

func (l *label) Hide() { l.visible = false }

func (l *label) SetBold(bold bool) { l.bold = bold }

// NewLabel implements globe.Overlay.
func (h *Host) NewLabel(text string) globe.Label {
	l := &label{text: text}
	h.labels = append(h.labels, l)
	return l
}

// OpenPopup implements globe.Overlay. The city photos are resolved here so that drawing
// never blocks on the loader.
func (h *Host) OpenPopup(p *globe.PopupSession) {
	h.popup = p
	for _, ref := range p.Images {
		if _, ok := h.photos[ref]; ok {
			continue
		}
		h.photos[ref] = h.loadPhoto(ref)
	}
	h.log.Debug().Str("city", p.City).Int("images", len(p.Images)).Msg("popup attached")
}

// RemovePopup implements globe.Overlay.
func (h *Host) RemovePopup(p *globe.PopupSession) {
	if h.popup == p {
		h.popup = nil
	}
}

func (h *Host) loadPhoto(ref string) *ebiten.Image {
	if h.loader == nil {
		return ebiten.NewImageFromImage(assets.Placeholder(assets.PlaceholderWidth, assets.PlaceholderHeight))
	}
	img, err := h.loader.Load(ref)
	if err != nil {
		var missing *assets.MissingAssetError
		if errors.As(err, &missing) {
			h.log.Warn().Str("ref", missing.Ref).Err(missing.Err).Msg("city image missing, using placeholder")
		} else {
			h.log.Warn().Str("ref", ref).Err(err).Msg("city image failed to load")
		}
	}
	return ebiten.NewImageFromImage(img)
}
