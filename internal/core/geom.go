// Package core provides fundamental types and utilities for Subterra.
// It contains no external dependencies (especially no Bubble Tea) so that
// the simulation and session logic stay pure and testable.
package core

import "math"

// Vec is a 2D vector in cave cell units. Y grows downward, matching the
// terminal row order.
type Vec struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// ClampLen shortens v so that its length does not exceed max.
func (v Vec) ClampLen(max float64) Vec {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Heading returns the unit vector for an angle in degrees, where 0 points
// up and positive angles rotate clockwise.
func Heading(deg float64) Vec {
	rad := deg * math.Pi / 180
	return Vec{X: math.Sin(rad), Y: -math.Cos(rad)}
}

// Rect represents an axis-aligned area on the screen grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w by h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp interpolates linearly between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*ClampF(t, 0, 1)
}

// MoveTowards moves current towards target by at most step.
func MoveTowards(current, target, step float64) float64 {
	if math.Abs(target-current) <= step {
		return target
	}
	if target > current {
		return current + step
	}
	return current - step
}
