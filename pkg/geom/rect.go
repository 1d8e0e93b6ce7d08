package geom

import "math"

// Rect is an axis-aligned rectangle. Top holds the smaller y-coordinate and
// Bottom the larger one, so Left ≤ Right and Top ≤ Bottom always hold for
// values built with [NewRect].
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewRect returns the rectangle spanned by two opposite corners in any order.
func NewRect(a, b Point) Rect {
	return Rect{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Right:  math.Max(a.X, b.X),
		Bottom: math.Max(a.Y, b.Y),
	}
}

// Width returns Right−Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom−Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Area returns the area of r.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// TopLeft returns the corner with the smallest coordinates.
func (r Rect) TopLeft() Point { return Point{r.Left, r.Top} }

// BottomRight returns the corner with the largest coordinates.
func (r Rect) BottomRight() Point { return Point{r.Right, r.Bottom} }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{(r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsSegment reports whether both endpoints of s lie in r.
func (r Rect) ContainsSegment(s Segment) bool {
	return r.Contains(s.P1) && r.Contains(s.P2)
}

// Overlaps reports whether the interiors of r and o intersect. Rectangles
// that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Segments returns the four edges of r: top, right, bottom, left.
func (r Rect) Segments() [4]Segment {
	tl, tr := Point{r.Left, r.Top}, Point{r.Right, r.Top}
	br, bl := Point{r.Right, r.Bottom}, Point{r.Left, r.Bottom}
	return [4]Segment{{tl, tr}, {tr, br}, {br, bl}, {bl, tl}}
}

// DistanceFrom returns the minimum distance from p to the four edges of r.
// For a point inside r this is its clearance to the boundary.
func (r Rect) DistanceFrom(p Point) float64 {
	d := math.Inf(1)
	for _, s := range r.Segments() {
		d = math.Min(d, s.DistanceFrom(p))
	}
	return d
}

// Expand grows r by d on every side. A negative d shrinks it; shrinking
// never inverts the rectangle and stops at a degenerate rectangle at the
// center.
func (r Rect) Expand(d float64) Rect {
	c := r.Center()
	out := Rect{r.Left - d, r.Top - d, r.Right + d, r.Bottom + d}
	if out.Left > out.Right {
		out.Left, out.Right = c.X, c.X
	}
	if out.Top > out.Bottom {
		out.Top, out.Bottom = c.Y, c.Y
	}
	return out
}
