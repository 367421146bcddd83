// Package scene provides the hinged scene graph the book is built from.
//
// A Hinge is a pivot transform with a part attached off-centre. Rotating
// the hinge about Y swings the part around the pivot, which is how covers,
// the spine and pages turn about their physical edges.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/pkg/math"
)

// Pose is the animatable state of a hinge.
type Pose struct {
	Position     math.Vec3 // Pivot, relative to the parent hinge
	Rotation     float32   // Pivot rotation about Y, radians
	Offset       math.Vec3 // Part centre relative to the pivot
	PartRotation float32   // Part's own rotation about Y, applied after Offset
}

// ApproxEqual reports whether two poses match within tol.
func (p Pose) ApproxEqual(other Pose, tol float32) bool {
	return p.Position.ApproxEqual(other.Position, tol) &&
		p.Offset.ApproxEqual(other.Offset, tol) &&
		math32.Abs(p.Rotation-other.Rotation) <= tol &&
		math32.Abs(p.PartRotation-other.PartRotation) <= tol
}

// Hinge is a scene graph node.
type Hinge struct {
	Name string
	Pose

	parent   *Hinge
	children []*Hinge
}

// NewHinge creates an unrotated hinge at position with its part at offset.
func NewHinge(name string, position, offset math.Vec3) *Hinge {
	return &Hinge{
		Name: name,
		Pose: Pose{Position: position, Offset: offset},
	}
}

// Attach makes child a child of h, detaching it from any previous parent.
func (h *Hinge) Attach(child *Hinge) {
	if child.parent != nil {
		child.parent.detach(child)
	}
	child.parent = h
	h.children = append(h.children, child)
}

func (h *Hinge) detach(child *Hinge) {
	for i, c := range h.children {
		if c == child {
			h.children = append(h.children[:i], h.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// Parent returns the parent hinge, or nil for a root.
func (h *Hinge) Parent() *Hinge {
	return h.parent
}

// Children returns the attached hinges in attach order.
func (h *Hinge) Children() []*Hinge {
	return h.children
}

// Local returns Translate(Position) * RotateY(Rotation).
func (h *Hinge) Local() math.Mat4 {
	return math.Translate(h.Position).Mul(math.RotateY(h.Rotation))
}

// World returns the pivot transform including all ancestors.
func (h *Hinge) World() math.Mat4 {
	if h.parent == nil {
		return h.Local()
	}
	return h.parent.World().Mul(h.Local())
}

// PartMatrix returns the model matrix of the attached part.
func (h *Hinge) PartMatrix() math.Mat4 {
	return h.World().Mul(math.Translate(h.Offset)).Mul(math.RotateY(h.PartRotation))
}

// Radius is the distance from the pivot axis to the part centre, the
// radius of the arc the part sweeps.
func (h *Hinge) Radius() float32 {
	return math32.Hypot(h.Offset.X, h.Offset.Z)
}

// Snapshot returns a copy of the current pose.
func (h *Hinge) Snapshot() Pose {
	return h.Pose
}

// Restore sets the pose exactly.
func (h *Hinge) Restore(p Pose) {
	h.Pose = p
}

// Walk visits h and its descendants depth-first.
func (h *Hinge) Walk(fn func(*Hinge)) {
	fn(h)
	for _, c := range h.children {
		c.Walk(fn)
	}
}
