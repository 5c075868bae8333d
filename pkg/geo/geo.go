// Package geo provides the geometric primitives shared by the layout
// intelligence pipeline: points, sizes, and axis-aligned rectangles.
//
// All coordinates are viewport-relative with the origin at the top-left
// corner, x growing right and y growing down, matching the coordinate
// system reported by the host scene graph.
package geo

import "math"

// Point is a 2D position in viewport coordinates.
type Point struct {
	X float64 `json:"x" bson:"x" toml:"x"`
	Y float64 `json:"y" bson:"y" toml:"y"`
}

// Add returns the point translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a 2D extent.
type Size struct {
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`
}

// Rect is an axis-aligned rectangle described by its top-left corner
// and its extent.
type Rect struct {
	X      float64 `json:"x" bson:"x" toml:"x"`
	Y      float64 `json:"y" bson:"y" toml:"y"`
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`
}

// RectAround returns the rectangle of the given size centered on p.
func RectAround(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, Width: w, Height: h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Area returns the rectangle's area. Degenerate rectangles (zero or
// negative extent) have area 0.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// MaxX returns the x coordinate of the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the y coordinate of the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside the rectangle. Points on the
// boundary are considered inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Intersect returns the intersection of two rectangles and whether it
// is non-empty. Rectangles that merely touch along an edge do not
// intersect.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	x1 := math.Max(r.X, o.X)
	y1 := math.Max(r.Y, o.Y)
	x2 := math.Min(r.MaxX(), o.MaxX())
	y2 := math.Min(r.MaxY(), o.MaxY())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// Intersects reports whether two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	_, ok := r.Intersect(o)
	return ok
}

// Inset returns the rectangle shrunk by m units on every side.
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X + m, Y: r.Y + m, Width: r.Width - 2*m, Height: r.Height - 2*m}
}

// Viewport is the current drawable area. All region and position math
// in the pipeline is relative to a single Viewport snapshot per pass.
type Viewport struct {
	Width  float64 `json:"width" bson:"width" toml:"width"`
	Height float64 `json:"height" bson:"height" toml:"height"`
}

// Rect returns the viewport as a rectangle anchored at the origin.
func (v Viewport) Rect() Rect {
	return Rect{X: 0, Y: 0, Width: v.Width, Height: v.Height}
}

// Center returns the viewport's center point.
func (v Viewport) Center() Point {
	return Point{X: v.Width / 2, Y: v.Height / 2}
}

// Valid reports whether the viewport has positive, finite dimensions.
// Analysis refuses to run against an invalid viewport; everything
// downstream would silently produce degenerate geometry otherwise.
func (v Viewport) Valid() bool {
	for _, d := range [2]float64{v.Width, v.Height} {
		if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
	}
	return true
}
