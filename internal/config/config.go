// Package config handles folio configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// MaxPages bounds the fixed page count of a book.
const MaxPages = 32

// Book interaction modes.
const (
	ModeClick  = "click"
	ModeScroll = "scroll"
)

// Config holds all settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Book      BookConfig      `yaml:"book"`
	Animation AnimationConfig `yaml:"animation"`
	Deform    DeformConfig    `yaml:"deform"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Audio     AudioConfig     `yaml:"audio"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and camera settings.
type GraphicsConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Fullscreen     bool    `yaml:"fullscreen"`
	VSync          bool    `yaml:"vsync"`
	FOV            float32 `yaml:"fov"`             // Vertical field of view, degrees
	CameraDistance float32 `yaml:"camera_distance"` // Eye distance on +Z
	TextureSize    int     `yaml:"texture_size"`    // Page textures are resized to this square
	ScreenshotDir  string  `yaml:"screenshot_dir"`
	LightAzimuth   float32 `yaml:"light_azimuth"`   // Degrees around Y from the viewer side
	LightElevation float32 `yaml:"light_elevation"` // Degrees above the horizon
	Ambient        float32 `yaml:"ambient"`         // 0..1
}

// BookConfig describes the physical book. All lengths are world units.
type BookConfig struct {
	Pages          int     `yaml:"pages"`
	Mode           string  `yaml:"mode"` // "click" or "scroll"
	CoverWidth     float32 `yaml:"cover_width"`
	CoverHeight    float32 `yaml:"cover_height"`
	CoverThickness float32 `yaml:"cover_thickness"`
	CoverLift      float32 `yaml:"cover_lift"` // Front cover pivot Z above the back cover
	SpineWidth     float32 `yaml:"spine_width"`
	PageWidth      float32 `yaml:"page_width"`
	PageHeight     float32 `yaml:"page_height"`
	PageSegments   int     `yaml:"page_segments"`
	PageLift       float32 `yaml:"page_lift"` // Page pivot Z relative to the spine
	PageGap        float32 `yaml:"page_gap"`  // Z spacing between stacked pages

	CoverColor   string         `yaml:"cover_color"`
	PageColors   []string       `yaml:"page_colors"`   // Empty: hue wheel
	PageTextures map[int]string `yaml:"page_textures"` // Page index -> image file
	PageVideos   map[int]string `yaml:"page_videos"`   // Page index -> frame directory
	VideoFPS     float32        `yaml:"video_fps"`
	FontPath     string         `yaml:"font_path"` // TTF for page numbers; empty uses the built-in face
}

// AnimationConfig holds transition timing for click mode.
type AnimationConfig struct {
	CoverDuration time.Duration `yaml:"cover_duration"`
	PageDuration  time.Duration `yaml:"page_duration"`
	SpineStagger  time.Duration `yaml:"spine_stagger"` // Spine group start delay after the cover group
	CoverEasing   string        `yaml:"cover_easing"`
	PageEasing    string        `yaml:"page_easing"`
	CurlEasing    string        `yaml:"curl_easing"`
	CoverShift    float32       `yaml:"cover_shift"` // Cover pivot slide while opening; spine slides half
	CoverBend     float32       `yaml:"cover_bend"`  // Peak page bend while the cover swings
	PageBend      float32       `yaml:"page_bend"`   // Peak bend of a turning page
	StackGap      float32       `yaml:"stack_gap"`   // X spread of the page stack once open
}

// DeformConfig holds the bend and curl profile. Fractions are of page width.
type DeformConfig struct {
	BendPeak      float32   `yaml:"bend_peak"`
	BendEnd       float32   `yaml:"bend_end"`
	BendAmplitude float32   `yaml:"bend_amplitude"`
	FoldRatio     float32   `yaml:"fold_ratio"`
	MaxCurl       float32   `yaml:"max_curl"` // Radians
	CurlTaper     float32   `yaml:"curl_taper"`
	ReverseCurl   float32   `yaml:"reverse_curl"`
	Thresholds    []float32 `yaml:"thresholds"` // Four increasing curl phase boundaries
}

// ScrollConfig holds scroll-mode mapping settings.
type ScrollConfig struct {
	Range           float32 `yaml:"range"`       // Scrollable range in pixels
	WheelStep       float32 `yaml:"wheel_step"`  // Pixels per wheel notch
	CoverShare      float32 `yaml:"cover_share"` // Fraction of progress for the cover; 0 means 1/(pages+1)
	Smoothing       bool    `yaml:"smoothing"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
	SlideMax        float32 `yaml:"slide_max"` // Book translation at full progress
}

// AudioConfig holds sound effect settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	FlipSound    string  `yaml:"flip_sound"`
	CoverSound   string  `yaml:"cover_sound"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the reference book.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:          1280,
			Height:         720,
			VSync:          true,
			FOV:            35,
			CameraDistance: 15,
			TextureSize:    512,
			ScreenshotDir:  "screenshots",
			LightAzimuth:   20,
			LightElevation: 25,
			Ambient:        0.35,
		},
		Book: BookConfig{
			Pages:          5,
			Mode:           ModeClick,
			CoverWidth:     6.5,
			CoverHeight:    8,
			CoverThickness: 0.1,
			CoverLift:      0.5,
			SpineWidth:     0.5,
			PageWidth:      6.4,
			PageHeight:     7.8,
			PageSegments:   50,
			PageLift:       0.1,
			PageGap:        0.01,
			CoverColor:     "#2727e6",
			VideoFPS:       24,
		},
		Animation: AnimationConfig{
			CoverDuration: 1200 * time.Millisecond,
			PageDuration:  1000 * time.Millisecond,
			SpineStagger:  150 * time.Millisecond,
			CoverEasing:   "in-out-cubic",
			PageEasing:    "in-out-sine",
			CurlEasing:    "linear",
			CoverShift:    0.5,
			CoverBend:     0.3,
			PageBend:      1,
			StackGap:      0.009,
		},
		Deform: DeformConfig{
			BendPeak:      0.25,
			BendEnd:       0.7,
			BendAmplitude: 0.35,
			FoldRatio:     0.5,
			MaxCurl:       0.9,
			CurlTaper:     0.2,
			ReverseCurl:   0.1,
			Thresholds:    []float32{0.46, 0.8, 0.94, 0.99},
		},
		Scroll: ScrollConfig{
			Range:           4000,
			WheelStep:       120,
			SpringFrequency: 6,
			SpringDamping:   1,
			SlideMax:        2,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values the book core cannot recover from.
func (c *Config) Validate() error {
	b := c.Book
	switch {
	case b.Pages < 1 || b.Pages > MaxPages:
		return fmt.Errorf("%w: book.pages %d outside [1, %d]", ErrInvalid, b.Pages, MaxPages)
	case b.Mode != ModeClick && b.Mode != ModeScroll:
		return fmt.Errorf("%w: book.mode %q", ErrInvalid, b.Mode)
	case b.CoverWidth <= 0 || b.CoverHeight <= 0 || b.SpineWidth <= 0:
		return fmt.Errorf("%w: cover and spine dimensions must be positive", ErrInvalid)
	case b.PageWidth <= 0 || b.PageHeight <= 0:
		return fmt.Errorf("%w: page dimensions must be positive", ErrInvalid)
	case b.PageSegments < 1:
		return fmt.Errorf("%w: book.page_segments must be at least 1", ErrInvalid)
	}

	a := c.Animation
	if a.CoverDuration <= 0 || a.PageDuration <= 0 || a.SpineStagger < 0 {
		return fmt.Errorf("%w: animation durations must be positive", ErrInvalid)
	}

	d := c.Deform
	if len(d.Thresholds) != 4 {
		return fmt.Errorf("%w: deform.thresholds needs 4 values, got %d", ErrInvalid, len(d.Thresholds))
	}
	prev := float32(0)
	for i, th := range d.Thresholds {
		if th <= prev || th > 1 {
			return fmt.Errorf("%w: deform.thresholds[%d]=%v must increase within (0, 1]", ErrInvalid, i, th)
		}
		prev = th
	}
	if d.BendPeak <= 0 || d.BendEnd <= d.BendPeak || d.BendEnd > 1 {
		return fmt.Errorf("%w: deform bend needs 0 < bend_peak < bend_end <= 1", ErrInvalid)
	}
	if d.FoldRatio < 0 || d.FoldRatio >= 1 {
		return fmt.Errorf("%w: deform.fold_ratio must be in [0, 1)", ErrInvalid)
	}

	if c.Scroll.CoverShare < 0 || c.Scroll.CoverShare >= 1 {
		return fmt.Errorf("%w: scroll.cover_share must be in [0, 1)", ErrInvalid)
	}
	return nil
}
