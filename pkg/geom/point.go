package geom

import (
	"fmt"
	"math"
)

// Point is a location (or vector) in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Undefined is the sentinel returned when an operation has no answer,
// for example the intersection of two parallel lines.
var Undefined = Point{X: -999999, Y: -999999}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// IsUndefined reports whether p is the [Undefined] sentinel.
func (p Point) IsUndefined() bool { return p == Undefined }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p−q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Div returns p divided by k, or [Undefined] when k is zero.
func (p Point) Div(k float64) Point {
	if k == 0 {
		return Undefined
	}
	return Point{p.X / k, p.Y / k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Length returns the Euclidean norm of p treated as a vector.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 { return p.Sub(q).Length() }

// Rotate rotates p counterclockwise about the origin by angle radians.
func (p Point) Rotate(angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
}

// RotateAbout rotates p counterclockwise about pivot by angle radians.
func (p Point) RotateAbout(pivot Point, angle float64) Point {
	return p.Sub(pivot).Rotate(angle).Add(pivot)
}

// LineThrough returns the line passing through p and q.
// If p and q share an x-coordinate the result is vertical.
func (p Point) LineThrough(q Point) Line {
	if p.X == q.X {
		return VerticalLine(p.X)
	}
	slope := (q.Y - p.Y) / (q.X - p.X)
	return Line{Slope: slope, Intercept: p.Y - slope*p.X}
}

// String formats p as "(x, y)".
func (p Point) String() string {
	if p.IsUndefined() {
		return "(undefined)"
	}
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
