// Package math provides the vector and matrix types used by the room viewer.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector. Pointer positions and normalized device coordinates use it.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// InRange reports whether both components lie in [lo, hi].
func (v Vec2) InRange(lo, hi float32) bool {
	return v.X >= lo && v.X <= hi && v.Y >= lo && v.Y <= hi
}

// Clamp returns v with both components clamped to [lo, hi].
func (v Vec2) Clamp(lo, hi float32) Vec2 {
	return Vec2{Clamp(v.X, lo, hi), Clamp(v.Y, lo, hi)}
}
