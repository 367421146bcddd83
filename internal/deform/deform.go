// Package deform implements the procedural page deformation: a bend that
// stiffens the page near its turning edge and a curl that rolls the outer
// half of the page around a fold line as a turn progresses.
//
// Positions are in page-local space: the page is centred on the origin in
// the XY plane and its hinge edge lies at x = -Width/2.
package deform

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/pkg/math"
)

// Curl phase boundaries, indices into Model.Thresholds.
const (
	rampUpEnd = iota
	rampDownEnd
	reverseEnd
	settleEnd
)

// State is the per-page input to the deformation.
type State struct {
	Progress  float32 // Turn progress in [0, 1]
	Direction int     // +1 forward, -1 backward, 0 idle
	Bend      float32 // Bend intensity, 0 at rest
	Rotation  float32 // Current hinge rotation about Y
}

// Model holds the bend and curl profile for one page size.
type Model struct {
	Width  float32
	Height float32

	BendPeak      float32 // Fraction of width where the bend peaks
	BendEnd       float32 // Fraction of width where the bend reaches zero
	BendAmplitude float32 // Displacement at intensity 1, world units
	FoldRatio     float32 // Fold line distance from the hinge, fraction of width
	MaxCurl       float32 // Full curl angle, radians
	CurlTaper     float32 // Curl reduction at the bottom edge
	ReverseCurl   float32 // Settling curl, fraction of MaxCurl
	Thresholds    [4]float32
}

// New creates a model for a width x height page.
func New(width, height float32, cfg config.DeformConfig) *Model {
	m := &Model{Width: width, Height: height}
	m.Configure(cfg)
	return m
}

// Configure replaces the profile parameters, keeping the page size.
func (m *Model) Configure(cfg config.DeformConfig) {
	m.BendPeak = cfg.BendPeak
	m.BendEnd = cfg.BendEnd
	m.BendAmplitude = cfg.BendAmplitude
	m.FoldRatio = cfg.FoldRatio
	m.MaxCurl = cfg.MaxCurl
	m.CurlTaper = cfg.CurlTaper
	m.ReverseCurl = cfg.ReverseCurl
	copy(m.Thresholds[:], cfg.Thresholds)
}

// BendProfile returns the bend shape at distance d from the hinge edge:
// zero at the edge, 1 at the peak, zero again at the end distance.
func (m *Model) BendProfile(d float32) float32 {
	peak := m.BendPeak * m.Width
	end := m.BendEnd * m.Width
	switch {
	case d <= 0 || d >= end:
		return 0
	case d <= peak:
		return math32.Sin(math.HalfPi * d / peak)
	default:
		return math32.Cos(math.HalfPi * (d - peak) / (end - peak))
	}
}

// BendSign keeps the bend leading the turning edge: positive until the
// hinge passes upright, negative after.
func BendSign(rotation float32) float32 {
	if rotation <= -math.HalfPi {
		return -1
	}
	return 1
}

// Curl returns the signed curl factor in [-ReverseCurl, 1] for a turn at
// progress t. v is the vertical position from the top edge (0) to the
// bottom edge (1); the forward curl weakens toward the bottom.
func (m *Model) Curl(t, v float32) float32 {
	th := m.Thresholds
	taper := 1 - m.CurlTaper*math.Clamp01(v)
	switch {
	case t <= 0:
		return 0
	case t <= th[rampUpEnd]:
		return t / th[rampUpEnd] * taper
	case t <= th[rampDownEnd]:
		return (1 - math.InvLerp(th[rampUpEnd], th[rampDownEnd], t)) * taper
	case t < th[reverseEnd]:
		local := math.InvLerp(th[rampDownEnd], th[reverseEnd], t)
		return -m.ReverseCurl * math32.Sin(math.HalfPi*local)
	case t < th[settleEnd]:
		local := math.InvLerp(th[reverseEnd], th[settleEnd], t)
		return -m.ReverseCurl * (1 - local)
	default:
		return 0
	}
}

// CurlAngle returns the fold rotation for a vertex, inverted for backward
// turns so a reversal retraces the forward path.
func (m *Model) CurlAngle(s State, v float32) float32 {
	if s.Direction == 0 {
		return 0
	}
	return m.Curl(s.Progress, v) * m.MaxCurl * float32(s.Direction)
}

// Displace returns the deformed position of a rest-pose vertex.
func (m *Model) Displace(p math.Vec3, s State) math.Vec3 {
	half := m.Width / 2
	d := p.X + half
	out := p

	if s.Bend != 0 {
		out.Z += m.BendAmplitude * s.Bend * BendSign(s.Rotation) * m.BendProfile(d)
	}

	fold := m.FoldRatio * m.Width
	if d <= fold {
		return out
	}
	v := (m.Height/2 - p.Y) / m.Height
	a := m.CurlAngle(s, v)
	if a == 0 {
		return out
	}
	sin, cos := math32.Sincos(a)
	dist := d - fold
	out.X = fold + cos*dist - half
	out.Z += sin * dist
	return out
}

// Flat reports whether s leaves every vertex at its rest position.
func (m *Model) Flat(s State) bool {
	if s.Bend != 0 {
		return false
	}
	if s.Direction == 0 {
		return true
	}
	// Curl is zero everywhere iff it is zero at the top edge.
	return m.Curl(s.Progress, 0) == 0
}

// Apply writes the deformed positions of rest into dst. dst must be at
// least as long as rest.
func (m *Model) Apply(dst, rest []math.Vec3, s State) {
	if m.Flat(s) {
		copy(dst, rest)
		return
	}
	for i, p := range rest {
		dst[i] = m.Displace(p, s)
	}
}
