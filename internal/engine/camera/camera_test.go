package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/folio/pkg/math"
)

type fixedViewport struct{ w, h int }

func (v fixedViewport) DrawableSize() (int, int) { return v.w, v.h }

func TestDefaultPosition(t *testing.T) {
	c := New(35, 15)
	assert.True(t, c.Position().ApproxEqual(math.V3(0, 0, 15), 1e-5))

	// The centre projects to the middle of the screen.
	clip := c.ViewProjection().MulPoint(math.Vec3{})
	assert.InDelta(t, 0, clip.X, 1e-5)
	assert.InDelta(t, 0, clip.Y, 1e-5)
}

func TestFollowViewport(t *testing.T) {
	c := New(35, 15)
	c.Follow(fixedViewport{1920, 1080})
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-5)

	c.SetViewport(0, 600)
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-5, "degenerate size ignored")

	c.Follow(fixedViewport{800, 800})
	assert.InDelta(t, 1, c.Aspect(), 1e-5)
}

func TestDragClampsPitch(t *testing.T) {
	c := New(35, 15)
	c.HandleDrag(0, 10000)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -20000)
	assert.Equal(t, -c.MaxPitch, c.Pitch)

	c.HandleDrag(100, 0)
	assert.InDelta(t, -0.5, c.Yaw, 1e-5)
}

func TestZoomClampsAndReset(t *testing.T) {
	c := New(35, 15)
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	assert.Equal(t, c.MaxDistance, c.Distance)

	c.HandleDrag(50, 50)
	c.Reset()
	assert.Equal(t, float32(15), c.Distance)
	assert.Zero(t, c.Pitch)
	assert.Zero(t, c.Yaw)
}
