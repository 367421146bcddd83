package book

import (
	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/pkg/math"
)

// ScrollMapper poses the book directly from scroll progress. There is no
// state machine and no timeline: every Update recomputes the whole pose.
type ScrollMapper struct {
	asm *Assembly

	rangePx    float32
	coverShare float32
	slideMax   float32

	smoothing bool
	spring    harmonica.Spring
	pos, vel  float64

	offset   float32 // Scroll offset in pixels
	target   float32 // Requested progress
	progress float32 // Applied progress
	leaf     int

	onLeafChanged []func(leaf int)
}

// NewScrollMapper creates a mapper at progress 0. fps is the frame rate
// the smoothing spring is stepped at.
func NewScrollMapper(asm *Assembly, cfg config.ScrollConfig, fps int) *ScrollMapper {
	s := &ScrollMapper{asm: asm}
	s.Configure(cfg, fps)
	return s
}

// Configure replaces the mapping parameters, keeping the current offset.
func (s *ScrollMapper) Configure(cfg config.ScrollConfig, fps int) {
	if fps <= 0 {
		fps = 60
	}
	s.rangePx = cfg.Range
	s.coverShare = cfg.CoverShare
	if s.coverShare <= 0 {
		s.coverShare = 1 / float32(len(s.asm.Pages)+1)
	}
	s.slideMax = cfg.SlideMax
	s.smoothing = cfg.Smoothing
	s.spring = harmonica.NewSpring(harmonica.FPS(fps), cfg.SpringFrequency, cfg.SpringDamping)
}

// OnLeafChanged registers fn to run when scrolling crosses a leaf.
func (s *ScrollMapper) OnLeafChanged(fn func(leaf int)) {
	s.onLeafChanged = append(s.onLeafChanged, fn)
}

// MapOffset converts a scroll offset to progress: scrollY / scrollRange,
// clamped to [0, 1]. A non-positive range maps to 0.
func MapOffset(scrollY, scrollRange float32) float32 {
	if scrollRange <= 0 {
		return 0
	}
	return math.Clamp01(scrollY / scrollRange)
}

// SetRatio sets the target progress directly.
func (s *ScrollMapper) SetRatio(ratio float32) {
	s.target = math.Clamp01(ratio)
	s.offset = s.target * s.rangePx
}

// ScrollBy moves the scroll offset by px within the scrollable range.
func (s *ScrollMapper) ScrollBy(px float32) {
	s.offset = math.Clamp(s.offset+px, 0, math32.Max(s.rangePx, 0))
	s.target = MapOffset(s.offset, s.rangePx)
}

// Target returns the requested progress.
func (s *ScrollMapper) Target() float32 {
	return s.target
}

// Progress returns the progress last applied to the book.
func (s *ScrollMapper) Progress() float32 {
	return s.progress
}

// CurrentLeaf returns the leaf the scroll position has fully reached.
func (s *ScrollMapper) CurrentLeaf() int {
	return s.leaf
}

// Update steps the smoothing spring, if enabled, and poses the book.
func (s *ScrollMapper) Update() {
	p := s.target
	if s.smoothing {
		s.pos, s.vel = s.spring.Update(s.pos, s.vel, float64(s.target))
		p = math.Clamp01(float32(s.pos))
	}
	s.Apply(p)
}

// CoverProgress returns the cover swing for progress p.
func (s *ScrollMapper) CoverProgress(p float32) float32 {
	return math.InvLerp(0, s.coverShare, p)
}

// PageProgress returns the local flip progress of page i for progress p.
// Pages flip front to back in equal windows after the cover.
func (s *ScrollMapper) PageProgress(i int, p float32) float32 {
	w := (1 - s.coverShare) / float32(len(s.asm.Pages))
	start := s.coverShare + w*float32(i)
	return math.InvLerp(start, start+w, p)
}

// Slide returns the book's X translation for progress p.
func (s *ScrollMapper) Slide(p float32) float32 {
	return s.slideMax * p
}

// Apply poses the whole book for progress p.
func (s *ScrollMapper) Apply(p float32) {
	p = math.Clamp01(p)
	s.progress = p
	a := s.asm

	a.Root.Position.X = a.rest.Root.Position.X + s.Slide(p)

	cover := s.CoverProgress(p)
	a.PoseCover(cover)

	leaf := 0
	if cover >= 1 {
		leaf = 1
	}
	for i, page := range a.Pages {
		local := s.PageProgress(i, p)
		page.Hinge.Rotation = -math.Pi * local
		page.Progress = local
		page.Direction = 1
		if local > 0 && local < 1 {
			page.Bend = triangle(local)
		}
		if local >= 1 {
			leaf++
		}
	}

	if leaf != s.leaf {
		s.leaf = leaf
		for _, fn := range s.onLeafChanged {
			fn(leaf)
		}
	}
}
