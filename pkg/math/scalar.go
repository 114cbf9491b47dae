// Package math provides float32 math types and helpers for 3D camera work.
package math

import "github.com/chewxy/math32"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ApproxEqual reports whether a and b are within epsilon of each other.
func ApproxEqual(a, b, epsilon float32) bool {
	return math32.Abs(a-b) < epsilon
}

// WrapAngle wraps an angle to the range (-pi, pi].
func WrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a <= -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

// EaseInOutCubic maps t in [0, 1] onto a smooth S-curve.
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
