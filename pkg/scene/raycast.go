package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sudorandom/city-globe/pkg/geo"
)

// Hit is one ray intersection.
type Hit struct {
	Object   *Node
	Distance float64
	Point    mgl64.Vec3
}

// Intersect tests the ray against every visible sphere primitive in objects and
// returns the hits ordered nearest first. Children are not visited.
func Intersect(ray geo.Ray, objects ...*Node) []Hit {
	var hits []Hit
	for _, o := range objects {
		if o == nil || !o.Visible || o.Radius <= 0 {
			continue
		}
		d, ok := ray.IntersectSphere(o.WorldPosition(), o.WorldRadius())
		if !ok {
			continue
		}
		hits = append(hits, Hit{Object: o, Distance: d, Point: ray.At(d)})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// Nearest returns the closest hit, if any.
func Nearest(ray geo.Ray, objects ...*Node) (Hit, bool) {
	hits := Intersect(ray, objects...)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}
