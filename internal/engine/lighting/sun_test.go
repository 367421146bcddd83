package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/folio/pkg/math"
)

func TestToSun(t *testing.T) {
	tests := []struct {
		az, el float32
		want   math.Vec3
	}{
		{0, 0, math.V3(0, 0, 1)},
		{90, 0, math.V3(1, 0, 0)},
		{0, 90, math.V3(0, 1, 0)},
		{180, 0, math.V3(0, 0, -1)},
	}
	for _, tt := range tests {
		got := Sun{Azimuth: tt.az, Elevation: tt.el}.ToSun()
		assert.True(t, got.ApproxEqual(tt.want, 1e-5), "az=%v el=%v got %v", tt.az, tt.el, got)
	}

	s := Sun{Azimuth: 20, Elevation: 35}
	assert.InDelta(t, 1, s.ToSun().Length(), 1e-5)
	assert.True(t, s.Direction().Add(s.ToSun()).ApproxEqual(math.Vec3{}, 1e-6))
}

func TestIntensity(t *testing.T) {
	s := Sun{Ambient: 0.3}
	assert.InDelta(t, 1, s.Intensity(math.V3(0, 0, 2)), 1e-5, "facing the sun")
	assert.InDelta(t, 0.3, s.Intensity(math.V3(0, 0, -1)), 1e-5, "facing away keeps ambient")
	assert.InDelta(t, 0.3, s.Intensity(math.V3(1, 0, 0)), 1e-5, "grazing")
}
