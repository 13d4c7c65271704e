// Package geom provides the small amount of 2D geometry the visualizer
// needs: coordinates, containment tests and window helpers.
package geom

import "math"

// Coordinate is a point in pixel space. It is used both for screen
// positions and for pointer samples.
type Coordinate struct {
	X float64
	Y float64
}

// Pt is shorthand for constructing a Coordinate.
func Pt(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// PointInRectangle reports whether p lies inside the rectangle with
// top-left corner (x, y) and size w×h. All edges are inclusive.
func PointInRectangle(p Coordinate, x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}

// PointInCircle reports whether p lies within r of (cx, cy).
func PointInCircle(p Coordinate, cx, cy, r float64) bool {
	return math.Hypot(p.X-cx, p.Y-cy) <= r
}

// Center returns the center of a w×h area.
func Center(w, h float64) Coordinate {
	return Coordinate{X: w / 2, Y: h / 2}
}

// ShortestSide returns min(w, h). All proportional sizing is based on it.
func ShortestSide(w, h float64) float64 {
	return math.Min(w, h)
}

// LongestSide returns max(w, h).
func LongestSide(w, h float64) float64 {
	return math.Max(w, h)
}
