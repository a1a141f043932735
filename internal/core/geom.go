// Package core provides the runtime types shared by games and the
// terminal platform: input frames, a colour cell buffer and geometry
// helpers. It has no Bubble Tea dependency so game logic stays pure.
package core

import "math"

// Rect is an axis-aligned area on the screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inset shrinks the rectangle by n cells on every side.
// The result never has negative dimensions.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(0, r.W-2*n),
		H: max(0, r.H-2*n),
	}
}

// OnRing returns the cell at angleDeg on an ellipse centred on (cx, cy).
// Angle 0 is 12 o'clock and angles grow clockwise. Terminal cells are
// about twice as tall as wide, so callers usually pass rx = 2*ry.
func OnRing(cx, cy int, rx, ry, angleDeg float64) (int, int) {
	rad := angleDeg * math.Pi / 180
	x := cx + int(math.Round(rx*math.Sin(rad)))
	y := cy - int(math.Round(ry*math.Cos(rad)))
	return x, y
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
