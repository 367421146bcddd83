// Package lighting provides the directional light the book is shaded with.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/folio/pkg/math"
)

// Sun is a directional light placed by angles in degrees. Azimuth turns
// around Y starting from +Z (the viewer side); elevation rises from the
// horizon.
type Sun struct {
	Azimuth   float32
	Elevation float32
	Ambient   float32 // Light reaching faces turned away, 0..1
}

// ToSun returns the unit vector from the scene toward the sun.
func (s Sun) ToSun() math.Vec3 {
	sinLon, cosLon := math32.Sincos(math.Radians(s.Azimuth))
	sinLat, cosLat := math32.Sincos(math.Radians(s.Elevation))
	return math.V3(cosLat*sinLon, sinLat, cosLat*cosLon)
}

// Direction returns the direction light travels, the negated ToSun.
func (s Sun) Direction() math.Vec3 {
	return s.ToSun().Scale(-1)
}

// Intensity is the Lambert term the shader computes for normal n.
func (s Sun) Intensity(n math.Vec3) float32 {
	d := math32.Max(n.Normalize().Dot(s.ToSun()), 0)
	a := math.Clamp01(s.Ambient)
	return a + (1-a)*d
}
