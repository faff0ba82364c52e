// Package core provides fundamental types and utilities shared by the engine
// and the terminal platform. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

import "fmt"

// Vec is an integer grid coordinate or offset.
// In board space X grows to the right and Y grows upward (row 0 is the floor).
type Vec struct {
	X, Y int
}

// V is a convenience constructor for Vec.
func V(x, y int) Vec {
	return Vec{X: x, Y: y}
}

// Common unit vectors.
var (
	Left  = Vec{X: -1}
	Right = Vec{X: 1}
	Down  = Vec{Y: -1}
	Up    = Vec{Y: 1}
)

// Add returns the component-wise sum.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns the opposite vector.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// Less orders vectors lexicographically: by X, then by Y.
func (v Vec) Less(o Vec) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

// Compare returns -1, 0 or 1 following the Less ordering.
// Suitable for slices.SortFunc.
func (v Vec) Compare(o Vec) int {
	switch {
	case v.Less(o):
		return -1
	case o.Less(v):
		return 1
	default:
		return 0
	}
}

// String returns a string representation of the vector.
func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// VecF is a floating point vector, used for centroids.
type VecF struct {
	X, Y float64
}

// Mean returns the arithmetic mean of the given vectors.
// The mean of an empty slice is the zero vector.
func Mean(vs []Vec) VecF {
	if len(vs) == 0 {
		return VecF{}
	}
	var sx, sy int
	for _, v := range vs {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(vs))
	return VecF{X: float64(sx) / n, Y: float64(sy) / n}
}

// String returns a string representation of the vector.
func (v VecF) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

// Rect represents an axis-aligned rectangle in screen space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
