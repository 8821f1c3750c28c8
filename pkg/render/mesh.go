package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sudorandom/city-globe/pkg/geo"
	"github.com/sudorandom/city-globe/pkg/scene"
)

type meshVertex struct {
	pos  mgl64.Vec3
	u, v float64
}

// SphereMesh is a latitude/longitude grid over a sphere, textured equirectangularly.
type SphereMesh struct {
	Radius         float64
	Stacks, Slices int

	verts   []meshVertex
	indices []uint16

	world  []mgl64.Vec3
	screen []mgl64.Vec2
	inView []bool
}

// NewSphereMesh builds the grid. The vertex count must fit 16-bit indices.
func NewSphereMesh(radius float64, stacks, slices int) *SphereMesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)
	for (stacks+1)*(slices+1) > math.MaxUint16 {
		stacks /= 2
		slices /= 2
	}

	m := &SphereMesh{Radius: radius, Stacks: stacks, Slices: slices}
	for i := 0; i <= stacks; i++ {
		lat := 90 - 180*float64(i)/float64(stacks)
		for j := 0; j <= slices; j++ {
			lon := -180 + 360*float64(j)/float64(slices)
			u, v := geo.TextureUV(lat, lon)
			m.verts = append(m.verts, meshVertex{pos: geo.ToCartesian(lat, lon, radius), u: u, v: v})
		}
	}
	row := slices + 1
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint16(i*row + j)
			b := a + 1
			c := a + uint16(row)
			d := c + 1
			m.indices = append(m.indices, a, c, b, b, c, d)
		}
	}
	m.world = make([]mgl64.Vec3, len(m.verts))
	m.screen = make([]mgl64.Vec2, len(m.verts))
	m.inView = make([]bool, len(m.verts))
	return m
}

func (m *SphereMesh) VertexCount() int { return len(m.verts) }

func (m *SphereMesh) TriangleCount() int { return len(m.indices) / 3 }

// Project transforms the mesh by model and returns screen vertices and the indices of the
// triangles facing the camera. Vertices are shaded by how squarely they face the camera.
// The returned slices reuse vs and is.
func (m *SphereMesh) Project(model mgl64.Mat4, cam *scene.Camera, width, height float64, texW, texH int, vs []ebiten.Vertex, is []uint16) ([]ebiten.Vertex, []uint16) {
	vs, is = vs[:0], is[:0]
	center := mgl64.TransformCoordinate(mgl64.Vec3{}, model)
	forward := cam.Forward()

	for k, mv := range m.verts {
		p := mgl64.TransformCoordinate(mv.pos, model)
		m.world[k] = p
		m.inView[k] = forward.Dot(p.Sub(cam.Position)) > cam.Near
		x, y := geo.ToScreen(p, cam, width, height)
		m.screen[k] = mgl64.Vec2{x, y}

		shade := float32(0.35)
		if n, toCam := p.Sub(center), cam.Position.Sub(p); n.Len() > 0 && toCam.Len() > 0 {
			shade += 0.65 * float32(math.Max(0, n.Normalize().Dot(toCam.Normalize())))
		}
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   float32(mv.u * float64(texW)),
			SrcY:   float32(mv.v * float64(texH)),
			ColorR: shade,
			ColorG: shade,
			ColorB: shade,
			ColorA: 1,
		})
	}

	for t := 0; t+2 < len(m.indices); t += 3 {
		a, b, c := m.indices[t], m.indices[t+1], m.indices[t+2]
		if !m.inView[a] || !m.inView[b] || !m.inView[c] {
			continue
		}
		centroid := m.world[a].Add(m.world[b]).Add(m.world[c]).Mul(1.0 / 3)
		if centroid.Sub(center).Dot(cam.Position.Sub(centroid)) <= 0 {
			continue
		}
		is = append(is, a, b, c)
	}
	return vs, is
}
