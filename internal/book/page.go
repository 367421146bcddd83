package book

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/internal/deform"
	"github.com/Faultbox/folio/internal/engine/scene"
	"github.com/Faultbox/folio/pkg/math"
)

// SurfaceKind is what a page displays.
type SurfaceKind int

const (
	SolidColor SurfaceKind = iota
	StaticTexture
	Video
)

func (k SurfaceKind) String() string {
	switch k {
	case SolidColor:
		return "solid"
	case StaticTexture:
		return "texture"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Dynamic reports whether the surface changes while the page is showing.
func (k SurfaceKind) Dynamic() bool {
	return k == Video
}

// PageActor is one interior page: a hinge plus the state its deformation
// is evaluated from.
type PageActor struct {
	Index   int
	Hinge   *scene.Hinge
	Surface SurfaceKind

	Progress  float32 // Turn progress in [0, 1]
	Direction int     // +1 forward, -1 backward, 0 idle
	Bend      float32 // Bend intensity, 0 at rest
}

// DeformState returns the input for the deformation model, sampling the
// hinge rotation at call time.
func (p *PageActor) DeformState() deform.State {
	return deform.State{
		Progress:  p.Progress,
		Direction: p.Direction,
		Bend:      p.Bend,
		Rotation:  p.Hinge.Rotation,
	}
}

// beginTurn resets the deformation for a new turn in dir.
func (p *PageActor) beginTurn(dir int) {
	p.Progress = 0
	p.Direction = dir
	p.Bend = 0
}

// pulse is sin(pi*t) on (0, 1) and exactly zero outside it, so poses at
// either end of a transition carry no residual bend.
func pulse(t float32) float32 {
	if t <= 0 || t >= 1 {
		return 0
	}
	return math32.Sin(math.Pi * t)
}

// triangle peaks at 1 for t = 0.5 and is zero at both ends.
func triangle(t float32) float32 {
	t = math.Clamp01(t)
	return 1 - math32.Abs(2*t-1)
}
