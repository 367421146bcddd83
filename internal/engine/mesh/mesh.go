// Package mesh builds the CPU-side geometry of the book parts.
package mesh

import (
	"github.com/Faultbox/folio/pkg/math"
)

// Vertex is the interleaved GPU vertex layout: position, normal, uv.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the byte stride of Vertex.
const VertexSize = 8 * 4

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Plane builds a width x height grid in the XY plane centred on the origin,
// facing +Z, with segX x segY quads. UV v runs from the top edge (0) down
// so images upload without flipping.
func Plane(width, height float32, segX, segY int) *Mesh {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}
	m := &Mesh{
		Vertices: make([]Vertex, 0, (segX+1)*(segY+1)),
		Indices:  make([]uint32, 0, segX*segY*6),
	}
	for iy := 0; iy <= segY; iy++ {
		v := float32(iy) / float32(segY)
		for ix := 0; ix <= segX; ix++ {
			u := float32(ix) / float32(segX)
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{-width/2 + u*width, height/2 - v*height, 0},
				Normal:   [3]float32{0, 0, 1},
				UV:       [2]float32{u, v},
			})
		}
	}
	row := uint32(segX + 1)
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint32(iy)*row + uint32(ix)
			b := a + row
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// Box builds an axis-aligned box centred on the origin with flat-shaded
// faces.
func Box(width, height, depth float32) *Mesh {
	hx, hy, hz := width/2, height/2, depth/2
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, hy, hz}, {-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, hy, -hz}, {hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, hy, hz}, {hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, hy, -hz}, {-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, hz}, {-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}}},
	}
	uvs := [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal, UV: uvs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Positions returns the vertex positions as vectors.
func (m *Mesh) Positions() []math.Vec3 {
	out := make([]math.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = math.V3(v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}

// SetPositions overwrites vertex positions from ps, which must match the
// vertex count.
func (m *Mesh) SetPositions(ps []math.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i].Position = ps[i].Array()
	}
}

// RecomputeNormals rebuilds smooth normals from the triangles.
func (m *Mesh) RecomputeNormals() {
	acc := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := m.position(ia)
		n := m.position(ib).Sub(a).Cross(m.position(ic).Sub(a))
		acc[ia] = acc[ia].Add(n)
		acc[ib] = acc[ib].Add(n)
		acc[ic] = acc[ic].Add(n)
	}
	for i, n := range acc {
		m.Vertices[i].Normal = n.Normalize().Array()
	}
}

func (m *Mesh) position(i uint32) math.Vec3 {
	p := m.Vertices[i].Position
	return math.V3(p[0], p[1], p[2])
}
