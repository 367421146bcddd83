package surface

import (
	"fmt"
	"image"
	"image/color"
	stdmath "math"

	"github.com/fogleman/gg"
)

// ArtStyle controls procedural page art.
type ArtStyle struct {
	Size     int    // Square texture size in pixels
	FontPath string // TTF face for the page number; empty uses gg's built-in face
	Number   bool   // Draw the page number
}

// HueColor returns the fully saturated colour at hue deg with 50%
// lightness, the page colour wheel.
func HueColor(deg float64) color.RGBA {
	h := stdmath.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	x := 1 - stdmath.Abs(stdmath.Mod(h/60, 2)-1)
	var r, g, b float64
	switch {
	case h < 60:
		r, g = 1, x
	case h < 120:
		r, g = x, 1
	case h < 180:
		g, b = 1, x
	case h < 240:
		g, b = x, 1
	case h < 300:
		r, b = x, 1
	default:
		r, b = 1, x
	}
	return color.RGBA{uint8(r*255 + 0.5), uint8(g*255 + 0.5), uint8(b*255 + 0.5), 255}
}

// PageColor returns the background for page i: the configured hex colour
// if there is one, otherwise the hue wheel stepped 60 degrees per page.
func PageColor(i int, configured []string) string {
	if i < len(configured) && configured[i] != "" {
		return configured[i]
	}
	c := HueColor(float64(i) * 60)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RenderPage draws the art for page i on a background colour given as hex.
func RenderPage(i int, hex string, style ArtStyle) (*image.RGBA, error) {
	size := style.Size
	if size <= 0 {
		size = 256
	}
	dc := gg.NewContext(size, size)
	dc.SetHexColor(hex)
	dc.Clear()

	margin := float64(size) * 0.04
	dc.SetRGBA(1, 1, 1, 0.35)
	dc.SetLineWidth(float64(size) * 0.01)
	dc.DrawRectangle(margin, margin, float64(size)-2*margin, float64(size)-2*margin)
	dc.Stroke()

	if style.Number {
		label := fmt.Sprintf("%d", i+1)
		dc.SetRGB(1, 1, 1)
		if style.FontPath != "" {
			if err := dc.LoadFontFace(style.FontPath, float64(size)/6); err != nil {
				return nil, fmt.Errorf("loading font %s: %w", style.FontPath, err)
			}
			dc.DrawStringAnchored(label, float64(size)/2, float64(size)/2, 0.5, 0.5)
		} else {
			// The built-in face is tiny; scale it up around the centre.
			scale := float64(size) / 64
			dc.Push()
			dc.ScaleAbout(scale, scale, float64(size)/2, float64(size)/2)
			dc.DrawStringAnchored(label, float64(size)/2, float64(size)/2, 0.5, 0.5)
			dc.Pop()
		}
	}
	return toRGBA(dc.Image()), nil
}

// RenderFill returns a size x size image filled with a hex colour.
func RenderFill(hex string, size int) *image.RGBA {
	dc := gg.NewContext(size, size)
	dc.SetHexColor(hex)
	dc.Clear()
	return toRGBA(dc.Image())
}
