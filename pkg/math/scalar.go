package math

import "github.com/chewxy/math32"

// Pi as float32.
const Pi = math32.Pi

// HalfPi is a quarter turn.
const HalfPi = math32.Pi / 2

// Lerp interpolates linearly between a and b; t is not clamped.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// InvLerp returns where v sits between a and b, clamped to [0, 1].
// A degenerate range yields 0 below a and 1 otherwise.
func InvLerp(a, b, v float32) float32 {
	if b == a {
		if v < a {
			return 0
		}
		return 1
	}
	return Clamp01((v - a) / (b - a))
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
