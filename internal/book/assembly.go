// Package book assembles the hinged book and drives it, either through the
// turn state machine (click mode) or directly from scroll progress.
package book

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/engine/scene"
	"github.com/Faultbox/folio/pkg/math"
)

// ErrInvalidDimensions is returned when a book cannot be built from its
// configuration.
var ErrInvalidDimensions = errors.New("invalid book dimensions")

// Motion holds the cover-opening parameters shared by both drivers.
type Motion struct {
	CoverShift float32 // Cover pivot slide at full open; the spine slides half
	CoverBend  float32 // Peak page bend while the cover swings
	StackGap   float32 // Per-page X spread of the stack at full open
}

// Snapshot is a full pose record of the assembly.
type Snapshot struct {
	Root       scene.Pose
	Back       scene.Pose
	Cover      scene.Pose
	Spine      scene.Pose
	Pages      []scene.Pose
	CoverShift float32
	SpineShift float32
}

// Assembly is the book: a static back cover, a front cover and a spine on
// hinges, and a fixed stack of pages hinged to the spine.
type Assembly struct {
	Root  *scene.Hinge
	Back  *scene.Hinge
	Cover *scene.Hinge
	Spine *scene.Hinge
	Pages []*PageActor

	Dims   config.BookConfig
	Motion Motion

	rest       Snapshot
	coverShift float32
	spineShift float32
}

// NewAssembly builds the closed book and records its rest pose.
func NewAssembly(dims config.BookConfig, motion Motion) (*Assembly, error) {
	switch {
	case dims.Pages < 1 || dims.Pages > config.MaxPages:
		return nil, fmt.Errorf("%w: %d pages", ErrInvalidDimensions, dims.Pages)
	case dims.CoverWidth <= 0 || dims.CoverHeight <= 0 || dims.SpineWidth <= 0:
		return nil, fmt.Errorf("%w: cover %vx%v spine %v", ErrInvalidDimensions, dims.CoverWidth, dims.CoverHeight, dims.SpineWidth)
	case dims.PageWidth <= 0 || dims.PageHeight <= 0:
		return nil, fmt.Errorf("%w: page %vx%v", ErrInvalidDimensions, dims.PageWidth, dims.PageHeight)
	}

	a := &Assembly{Dims: dims, Motion: motion}
	halfCover := dims.CoverWidth / 2

	a.Root = scene.NewHinge("book", math.Vec3{}, math.Vec3{})
	a.Back = scene.NewHinge("back-cover", math.Vec3{}, math.Vec3{})
	a.Cover = scene.NewHinge("front-cover",
		math.V3(-halfCover, 0, dims.CoverLift),
		math.V3(halfCover, 0, 0))
	// The spine slab stands upright between the covers and lies down as
	// the cover passes vertical.
	a.Spine = scene.NewHinge("spine", math.V3(-halfCover, 0, 0), math.Vec3{})
	a.setSpineLean(math.HalfPi)

	a.Root.Attach(a.Back)
	a.Root.Attach(a.Cover)
	a.Root.Attach(a.Spine)

	last := dims.Pages - 1
	a.Pages = make([]*PageActor, dims.Pages)
	for i := range a.Pages {
		h := scene.NewHinge(fmt.Sprintf("page-%d", i),
			math.V3(0, 0, dims.PageLift),
			math.V3(dims.PageWidth/2, 0, dims.PageGap*float32(last-i)))
		a.Spine.Attach(h)
		a.Pages[i] = &PageActor{Index: i, Hinge: h, Surface: surfaceKind(dims, i)}
	}

	a.rest = a.Snapshot()
	return a, nil
}

func surfaceKind(dims config.BookConfig, i int) SurfaceKind {
	if _, ok := dims.PageVideos[i]; ok {
		return Video
	}
	if _, ok := dims.PageTextures[i]; ok {
		return StaticTexture
	}
	return SolidColor
}

// NumPages returns the fixed page count.
func (a *Assembly) NumPages() int {
	return len(a.Pages)
}

// Snapshot records every hinge pose.
func (a *Assembly) Snapshot() Snapshot {
	s := Snapshot{
		Root:       a.Root.Snapshot(),
		Back:       a.Back.Snapshot(),
		Cover:      a.Cover.Snapshot(),
		Spine:      a.Spine.Snapshot(),
		Pages:      make([]scene.Pose, len(a.Pages)),
		CoverShift: a.coverShift,
		SpineShift: a.spineShift,
	}
	for i, p := range a.Pages {
		s.Pages[i] = p.Hinge.Snapshot()
	}
	return s
}

// Restore sets every hinge to the poses in s.
func (a *Assembly) Restore(s Snapshot) {
	a.Root.Restore(s.Root)
	a.Back.Restore(s.Back)
	a.Cover.Restore(s.Cover)
	a.Spine.Restore(s.Spine)
	for i, p := range a.Pages {
		p.Hinge.Restore(s.Pages[i])
	}
	a.coverShift = s.CoverShift
	a.spineShift = s.SpineShift
}

// Rest returns the closed pose recorded at construction.
func (a *Assembly) Rest() Snapshot {
	s := a.rest
	s.Pages = append([]scene.Pose(nil), a.rest.Pages...)
	return s
}

// Reset returns the book to its closed rest pose with flat pages.
func (a *Assembly) Reset() {
	a.Restore(a.rest)
	for _, p := range a.Pages {
		p.beginTurn(0)
	}
}

// CoverProgress is how far the front cover has swung open, in [0, 1].
func (a *Assembly) CoverProgress() float32 {
	return math.Clamp01(-a.Cover.Rotation / math.Pi)
}

// SetCoverShift slides the cover pivot left and down by v of the full shift.
func (a *Assembly) SetCoverShift(v float32) {
	a.coverShift = v
	shift := a.Motion.CoverShift * v
	a.Cover.Position = a.rest.Cover.Position.Add(math.V3(-shift, 0, -shift))
}

// SetSpineShift slides the spine pivot left by v of half the cover shift.
func (a *Assembly) SetSpineShift(v float32) {
	a.spineShift = v
	a.Spine.Position = a.rest.Spine.Position.Add(math.V3(-a.Motion.CoverShift/2*v, 0, 0))
}

// CoverShift returns the current cover shift fraction.
func (a *Assembly) CoverShift() float32 { return a.coverShift }

// SpineShift returns the current spine shift fraction.
func (a *Assembly) SpineShift() float32 { return a.spineShift }

// setSpineLean rotates the spine slab about its pivot edge; pi/2 stands it
// upright between the covers, 0 lays it flat.
func (a *Assembly) setSpineLean(lean float32) {
	r := a.Dims.SpineWidth / 2
	sin, cos := math32.Sincos(lean)
	a.Spine.PartRotation = lean
	a.Spine.Offset = math.V3(-r*cos, 0, r*sin)
}

// PoseCoverDerived updates the parts that follow the cover: the spine lean,
// the page stack spread and the opening bend on every page.
func (a *Assembly) PoseCoverDerived() {
	p := a.CoverProgress()
	a.setSpineLean(math32.Min(math.HalfPi, math.Pi+a.Cover.Rotation))

	last := len(a.Pages) - 1
	bend := a.Motion.CoverBend * pulse(p)
	for i, page := range a.Pages {
		page.Hinge.Position.X = a.rest.Pages[i].Position.X - a.Motion.StackGap*float32(last-i)*p
		page.Bend = bend
	}
}

// PoseCover poses the cover, spine and page stack for cover progress p as a
// pure function of p.
func (a *Assembly) PoseCover(p float32) {
	p = math.Clamp01(p)
	a.Cover.Rotation = -math.Pi * p
	a.SetCoverShift(p)
	a.SetSpineShift(p)
	a.PoseCoverDerived()
}

// ExposedPage returns the page showing on the right at leaf, if any.
func ExposedPage(leaf, pages int) (int, bool) {
	if leaf < 1 || leaf > pages {
		return 0, false
	}
	return leaf - 1, true
}
