package book

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/timeline"
)

// Animation holds resolved transition timing for click mode.
type Animation struct {
	CoverDuration time.Duration
	PageDuration  time.Duration
	SpineStagger  time.Duration
	CoverEasing   ease.TweenFunc
	PageEasing    ease.TweenFunc
	CurlEasing    ease.TweenFunc
	PageBend      float32
}

// NewAnimation resolves easing names from cfg.
func NewAnimation(cfg config.AnimationConfig) (Animation, error) {
	anim := Animation{
		CoverDuration: cfg.CoverDuration,
		PageDuration:  cfg.PageDuration,
		SpineStagger:  cfg.SpineStagger,
		PageBend:      cfg.PageBend,
	}
	var err error
	if anim.CoverEasing, err = timeline.Easing(cfg.CoverEasing); err != nil {
		return Animation{}, fmt.Errorf("cover easing: %w", err)
	}
	if anim.PageEasing, err = timeline.Easing(cfg.PageEasing); err != nil {
		return Animation{}, fmt.Errorf("page easing: %w", err)
	}
	if anim.CurlEasing, err = timeline.Easing(cfg.CurlEasing); err != nil {
		return Animation{}, fmt.Errorf("curl easing: %w", err)
	}
	return anim, nil
}

// MotionFrom extracts the cover motion parameters from cfg.
func MotionFrom(cfg config.AnimationConfig) Motion {
	return Motion{
		CoverShift: cfg.CoverShift,
		CoverBend:  cfg.CoverBend,
		StackGap:   cfg.StackGap,
	}
}
