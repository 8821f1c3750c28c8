package globe

import (
	"fmt"
	"image/color"

	"github.com/sudorandom/city-globe/pkg/scene"
)

// Registry owns every marker on the globe.
type Registry struct {
	globe      *scene.Node
	overlay    Overlay
	markerSize float64

	order    []*Marker
	byName   map[string]*Marker
	byObject map[*scene.Node]*Marker
}

// NewRegistry attaches markers to globe and asks overlay for their labels.
func NewRegistry(globe *scene.Node, overlay Overlay, markerSize float64) *Registry {
	if overlay == nil {
		overlay = nopOverlay{}
	}
	return &Registry{
		globe:      globe,
		overlay:    overlay,
		markerSize: markerSize,
		byName:     make(map[string]*Marker),
		byObject:   make(map[*scene.Node]*Marker),
	}
}

// CreateMarker registers a new city marker. Names are unique.
func (r *Registry) CreateMarker(name string, lat, lon, radius float64, c color.RGBA) (*Marker, error) {
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCity, name)
	}
	m := &Marker{
		Name:   name,
		Lat:    lat,
		Lon:    lon,
		Radius: radius,
		Object: scene.NewSphere(name, r.markerSize, c),
	}
	m.Object.Position = m.Anchor()
	if r.globe != nil {
		r.globe.Add(m.Object)
	}
	m.Label = r.overlay.NewLabel(name)

	r.order = append(r.order, m)
	r.byName[name] = m
	r.byObject[m.Object] = m
	return m, nil
}

// All returns markers in insertion order. Callers must not modify the slice.
func (r *Registry) All() []*Marker { return r.order }

func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) Get(name string) (*Marker, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// FindByRenderObject maps a hit-tested primitive back to its marker.
func (r *Registry) FindByRenderObject(obj *scene.Node) (*Marker, bool) {
	if obj == nil {
		return nil, false
	}
	m, ok := r.byObject[obj]
	return m, ok
}

// Objects returns the markers' render primitives for ray casting.
func (r *Registry) Objects() []*scene.Node {
	objs := make([]*scene.Node, 0, len(r.order))
	for _, m := range r.order {
		objs = append(objs, m.Object)
	}
	return objs
}
