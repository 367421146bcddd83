package mesh

import "github.com/Faultbox/folio/pkg/math"

// Sheet is a mesh that is re-shaped every frame from an immutable rest
// pose. Reset and Deform report whether the vertices need re-uploading.
type Sheet struct {
	*Mesh

	rest        []math.Vec3
	restNormals [][3]float32
	work        []math.Vec3
	deformed    bool
}

// NewSheet takes ownership of m and records its current shape as rest.
func NewSheet(m *Mesh) *Sheet {
	s := &Sheet{
		Mesh:        m,
		rest:        m.Positions(),
		restNormals: make([][3]float32, len(m.Vertices)),
		work:        make([]math.Vec3, len(m.Vertices)),
	}
	for i, v := range m.Vertices {
		s.restNormals[i] = v.Normal
	}
	return s
}

// NewPage builds a page sheet with segments quads along each edge.
func NewPage(width, height float32, segments int) *Sheet {
	return NewSheet(Plane(width, height, segments, segments))
}

// Rest returns the rest positions. Callers must not modify them.
func (s *Sheet) Rest() []math.Vec3 {
	return s.rest
}

// Deformed reports whether the sheet currently differs from rest.
func (s *Sheet) Deformed() bool {
	return s.deformed
}

// Reset restores the rest shape. It returns false when already at rest.
func (s *Sheet) Reset() bool {
	if !s.deformed {
		return false
	}
	for i := range s.Vertices {
		s.Vertices[i].Position = s.rest[i].Array()
		s.Vertices[i].Normal = s.restNormals[i]
	}
	s.deformed = false
	return true
}

// Deform writes apply's output over the rest shape and rebuilds normals.
func (s *Sheet) Deform(apply func(dst, rest []math.Vec3)) {
	apply(s.work, s.rest)
	s.SetPositions(s.work)
	s.RecomputeNormals()
	s.deformed = true
}
