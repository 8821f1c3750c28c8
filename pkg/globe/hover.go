package globe

import (
	"image/color"

	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/scene"
)

// HoverEngine keeps exactly one marker highlighted: the nearest one under the pointer.
type HoverEngine struct {
	registry *Registry

	HighlightScale float64
	HighlightColor color.RGBA

	lastHovered *Marker
}

func NewHoverEngine(r *Registry, scale float64, c color.RGBA) *HoverEngine {
	return &HoverEngine{registry: r, HighlightScale: scale, HighlightColor: c}
}

// Hovered returns the highlighted marker, or nil.
func (h *HoverEngine) Hovered() *Marker { return h.lastHovered }

// Pick returns the nearest marker hit by ray. The globe body is not tested, so a marker
// behind the globe can still be picked.
func (h *HoverEngine) Pick(ray geo.Ray) *Marker {
	hit, ok := scene.Nearest(ray, h.registry.Objects()...)
	if !ok {
		return nil
	}
	m, _ := h.registry.FindByRenderObject(hit.Object)
	return m
}

// Update picks with ray and moves the highlight if the candidate changed.
func (h *HoverEngine) Update(ray geo.Ray) *Marker {
	h.Set(h.Pick(ray))
	return h.lastHovered
}

// Set moves the highlight to candidate. Setting the current marker again is a no-op.
func (h *HoverEngine) Set(candidate *Marker) {
	if candidate == h.lastHovered {
		return
	}
	if prev := h.lastHovered; prev != nil {
		if base, ok := prev.BaseVisuals(); ok {
			prev.apply(base)
		}
		prev.state = Normal
	}
	if candidate != nil {
		candidate.captureBase()
		base, _ := candidate.BaseVisuals()
		candidate.apply(Visuals{
			Scale: base.Scale * h.HighlightScale,
			Color: h.HighlightColor,
			Bold:  true,
		})
		candidate.state = Hovered
	}
	h.lastHovered = candidate
}

// Clear drops the highlight.
func (h *HoverEngine) Clear() { h.Set(nil) }
