package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"sort"

	geojson "github.com/paulmach/go.geojson"
	xdraw "golang.org/x/image/draw"
)

var (
	ColorBackground = color.RGBA{0x00, 0x0d, 0x21, 0xff}
	ColorSea        = color.RGBA{0x0b, 0x2a, 0x4f, 0xff}
	ColorLand       = color.RGBA{0x2c, 0x4a, 0x3a, 0xff}
	ColorCoast      = color.RGBA{0x8f, 0xb8, 0xd8, 0xff}
)

// Coastlines is a GeoJSON collection of land polygons or coast lines.
type Coastlines = geojson.FeatureCollection

// LoadCoastlines reads a GeoJSON feature collection of land polygons.
func LoadCoastlines(path string) (*Coastlines, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fc, nil
}

// BakeTexture builds the equirectangular globe texture: base scaled to w x h (or flat
// sea when base is nil), with land filled and outlined from fc when it is set.
func BakeTexture(base image.Image, fc *Coastlines, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if base != nil {
		xdraw.BiLinear.Scale(img, img.Bounds(), base, base.Bounds(), draw.Src, nil)
	} else {
		draw.Draw(img, img.Bounds(), &image.Uniform{ColorSea}, image.Point{}, draw.Src)
	}
	if fc == nil {
		return img
	}

	p := equirect{w: w, h: h}
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		switch {
		case f.Geometry.IsPolygon():
			if base == nil {
				p.fillPolygon(img, f.Geometry.Polygon, ColorLand)
			}
			for _, ring := range f.Geometry.Polygon {
				p.drawRing(img, ring, ColorCoast)
			}
		case f.Geometry.IsMultiPolygon():
			for _, poly := range f.Geometry.MultiPolygon {
				if base == nil {
					p.fillPolygon(img, poly, ColorLand)
				}
				for _, ring := range poly {
					p.drawRing(img, ring, ColorCoast)
				}
			}
		case f.Geometry.IsLineString():
			p.drawRing(img, f.Geometry.LineString, ColorCoast)
		case f.Geometry.IsMultiLineString():
			for _, line := range f.Geometry.MultiLineString {
				p.drawRing(img, line, ColorCoast)
			}
		}
	}
	return img
}

// equirect maps lon/lat onto a w x h texture using the same UV convention as the sphere mesh.
type equirect struct {
	w, h int
}

func (p equirect) project(lat, lon float64) (x, y float64) {
	return (lon + 180) / 360 * float64(p.w), (90 - lat) / 180 * float64(p.h)
}

func (p equirect) fillPolygon(img *image.RGBA, rings [][][]float64, c color.RGBA) {
	if len(rings) == 0 {
		return
	}
	type point struct{ x, y float64 }
	projected := make([][]point, len(rings))
	minY, maxY := float64(p.h), 0.0
	for i, ring := range rings {
		projected[i] = make([]point, len(ring))
		for j, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			x, y := p.project(pt[1], pt[0])
			projected[i][j] = point{x, y}
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}
	for y := int(minY); y <= int(maxY); y++ {
		if y < 0 || y >= p.h {
			continue
		}
		var nodes []int
		fy := float64(y) + 0.5
		for _, ring := range projected {
			for i := 0; i < len(ring); i++ {
				j := (i + 1) % len(ring)
				if (ring[i].y < fy && ring[j].y >= fy) || (ring[j].y < fy && ring[i].y >= fy) {
					nodeX := ring[i].x + (fy-ring[i].y)/(ring[j].y-ring[i].y)*(ring[j].x-ring[i].x)
					nodes = append(nodes, int(nodeX))
				}
			}
		}
		sort.Ints(nodes)
		for i := 0; i < len(nodes)-1; i += 2 {
			xs, xe := max(nodes[i], 0), min(nodes[i+1], p.w)
			for x := xs; x < xe; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func (p equirect) drawRing(img *image.RGBA, coords [][]float64, c color.RGBA) {
	for i := 0; i < len(coords)-1; i++ {
		if len(coords[i]) < 2 || len(coords[i+1]) < 2 {
			continue
		}
		x1, y1 := p.project(coords[i][1], coords[i][0])
		x2, y2 := p.project(coords[i+1][1], coords[i+1][0])
		// Segments crossing the antimeridian would streak across the whole map.
		if math.Abs(x2-x1) > float64(p.w)/2 {
			continue
		}
		p.drawLine(img, int(x1), int(y1), int(x2), int(y2), c)
	}
}

func (p equirect) drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy
	for {
		if x1 >= 0 && x1 < p.w && y1 >= 0 && y1 < p.h {
			img.SetRGBA(x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
