// Package surface supplies the images shown on pages and covers: procedural
// page art, still textures and frame sequences that play while their page
// is exposed.
package surface

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
)

// Source is a page image that may change over time.
type Source interface {
	// Frame returns the current image. It is only valid when Ready.
	Frame() *image.RGBA
	// Ready reports whether a frame is available.
	Ready() bool
	// Advance moves playback forward and reports whether Frame changed.
	Advance(dt time.Duration) bool
	// Activate starts playback; Deactivate pauses it.
	Activate()
	Deactivate()
	// Dynamic reports whether frames change while active.
	Dynamic() bool
}

// Provider maps a page index to a live source. ok is false when the page
// should use its static fallback.
type Provider interface {
	Source(page int) (src Source, ok bool)
}

// Decode decodes png, jpeg, bmp or tga data and resizes it to a
// size x size RGBA image suitable for texture upload.
func Decode(data []byte, size int) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		img, err = DecodeTGA(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if size <= 0 {
		return toRGBA(img), nil
	}
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return toRGBA(img), nil
	}
	return transform.Resize(img, size, size, transform.Linear), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Still is a single static image.
type Still struct {
	img *image.RGBA
}

// NewStill wraps img.
func NewStill(img *image.RGBA) *Still {
	return &Still{img: img}
}

func (s *Still) Frame() *image.RGBA         { return s.img }
func (s *Still) Ready() bool                { return s.img != nil }
func (s *Still) Advance(time.Duration) bool { return false }
func (s *Still) Activate()                  {}
func (s *Still) Deactivate()                {}
func (s *Still) Dynamic() bool              { return false }
