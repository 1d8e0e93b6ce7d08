package geom

import "math"

// slopeTolerance is the slope difference below which two lines are treated
// as parallel.
const slopeTolerance = 1e-12

// Line is an infinite line, either y = Slope·x + Intercept or, when Vertical
// is set, x = X.
type Line struct {
	Slope     float64
	Intercept float64
	Vertical  bool
	X         float64
}

// VerticalLine returns the line x = x.
func VerticalLine(x float64) Line { return Line{Vertical: true, X: x} }

// Intersect returns the point where l and o cross. Distinct parallel lines
// yield [Undefined]. Coincident lines yield a point on the line: (X, 0) for
// vertical lines, (0, Intercept) otherwise.
func (l Line) Intersect(o Line) Point {
	switch {
	case l.Vertical && o.Vertical:
		if l.X == o.X {
			return Point{l.X, 0}
		}
		return Undefined
	case l.Vertical:
		return Point{l.X, o.Slope*l.X + o.Intercept}
	case o.Vertical:
		return Point{o.X, l.Slope*o.X + l.Intercept}
	}
	if math.Abs(l.Slope-o.Slope) < slopeTolerance {
		if l.Intercept == o.Intercept {
			return Point{0, l.Intercept}
		}
		return Undefined
	}
	x := (o.Intercept - l.Intercept) / (l.Slope - o.Slope)
	return Point{x, l.Slope*x + l.Intercept}
}

// YAt returns the y-coordinate of l at x. Vertical lines yield NaN.
func (l Line) YAt(x float64) float64 {
	if l.Vertical {
		return math.NaN()
	}
	return l.Slope*x + l.Intercept
}
