// Package camera provides the viewer camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/pkg/math"
)

// Viewport supplies the drawable pixel size the projection follows.
type Viewport interface {
	DrawableSize() (width, height int)
}

// OrbitCamera orbits a centre point. At zero pitch and yaw it sits on +Z
// looking down -Z at the book.
type OrbitCamera struct {
	Center math.Vec3

	Distance float32
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	FOV  float32 // Vertical field of view, degrees
	Near float32
	Far  float32

	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	aspect       float32
	homeDistance float32
}

// New creates a camera with a vertical fov in degrees at distance.
func New(fov, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        distance,
		FOV:             fov,
		Near:            0.1,
		Far:             100,
		MinDistance:     distance / 3,
		MaxDistance:     distance * 3,
		MaxPitch:        1.4,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		aspect:          16.0 / 9.0,
		homeDistance:    distance,
	}
}

// Position returns the eye position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sp, cp := math32.Sincos(c.Pitch)
	sy, cy := math32.Sincos(c.Yaw)
	return c.Center.Add(math.V3(c.Distance*cp*sy, c.Distance*sp, c.Distance*cp*cy))
}

// ViewMatrix returns the view matrix.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.V3(0, 1, 0))
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Aspect returns the current width / height ratio.
func (c *OrbitCamera) Aspect() float32 {
	return c.aspect
}

// SetViewport updates the aspect ratio. Degenerate sizes are ignored.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// Follow reads the size from vp.
func (c *OrbitCamera) Follow(vp Viewport) {
	c.SetViewport(vp.DrawableSize())
}

// HandleDrag orbits by a mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.DragSensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleZoom moves toward or away from the centre by wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = math.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Reset returns to the initial front view.
func (c *OrbitCamera) Reset() {
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = c.homeDistance
	c.Center = math.Vec3{}
}
