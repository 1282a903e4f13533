package math

import "github.com/chewxy/math32"

// Pi as float32.
const Pi = math32.Pi

// Lerp interpolates linearly between a and b.
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

// RoundTo rounds v to the given number of decimal places. Halves round
// towards positive infinity.
func RoundTo(v float32, decimals int) float32 {
	p := math32.Pow(10, float32(decimals))
	return math32.Floor(v*p+0.5) / p
}

// SnapTo rounds v to the nearest multiple of step, halves towards positive
// infinity. A non-positive step returns v.
func SnapTo(v, step float32) float32 {
	if step <= 0 {
		return v
	}
	return math32.Floor(v/step+0.5) * step
}

// EaseOutCubic maps t in [0,1] to 1-(1-t)^3.
func EaseOutCubic(t float32) float32 {
	t = Clamp(t, 0, 1)
	inv := 1 - t
	return 1 - inv*inv*inv
}
