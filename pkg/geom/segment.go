package geom

import (
	"fmt"
	"math"
)

// Orientation classifies a point against a directed segment.
type Orientation int

const (
	// CounterClockwise means the turn p→q→r is counterclockwise.
	CounterClockwise Orientation = -1
	// Collinear means p, q and r lie on one line.
	Collinear Orientation = 0
	// Clockwise means the turn p→q→r is clockwise.
	Clockwise Orientation = 1
)

// String returns a lowercase name for o.
func (o Orientation) String() string {
	switch o {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return "collinear"
	}
}

// Orient returns the orientation of r relative to the directed segment p→q.
func Orient(p, q, r Point) Orientation {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case val > 0:
		return Clockwise
	case val < 0:
		return CounterClockwise
	default:
		return Collinear
	}
}

// Segment is the closed line segment between P1 and P2.
type Segment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Seg is shorthand for a segment from (x1, y1) to (x2, y2).
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Point{x1, y1}, Point{x2, y2}}
}

// Length returns the Euclidean length of s.
func (s Segment) Length() float64 { return s.P1.DistanceTo(s.P2) }

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point { return s.P1.Add(s.P2).Scale(0.5) }

// Endpoints returns P1 and P2 in order.
func (s Segment) Endpoints() [2]Point { return [2]Point{s.P1, s.P2} }

// IsVertical reports whether both endpoints share an x-coordinate.
func (s Segment) IsVertical() bool { return s.P1.X == s.P2.X }

// IsHorizontal reports whether both endpoints share a y-coordinate.
func (s Segment) IsHorizontal() bool { return s.P1.Y == s.P2.Y }

// Line returns the infinite line through s.
func (s Segment) Line() Line { return s.P1.LineThrough(s.P2) }

// Bounds returns the bounding rectangle of s.
func (s Segment) Bounds() Rect { return NewRect(s.P1, s.P2) }

// Orientation returns the orientation of r relative to P1→P2.
func (s Segment) Orientation(r Point) Orientation { return Orient(s.P1, s.P2, r) }

// DistanceFrom returns the distance from p to the closest point of s.
// The projection onto s is clamped to the segment, and a zero-length
// segment behaves like a single point.
func (s Segment) DistanceFrom(p Point) float64 {
	d := s.P2.Sub(s.P1)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return p.DistanceTo(s.P1)
	}
	t := p.Sub(s.P1).Dot(d) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.DistanceTo(s.P1.Add(d.Scale(t)))
}

// Intersects reports whether s and o share at least one point, either by a
// proper crossing or by an endpoint touching the other segment.
func (s Segment) Intersects(o Segment) bool {
	o1 := Orient(s.P1, s.P2, o.P1)
	o2 := Orient(s.P1, s.P2, o.P2)
	o3 := Orient(o.P1, o.P2, s.P1)
	o4 := Orient(o.P1, o.P2, s.P2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	switch {
	case o1 == Collinear && withinExtent(s.P1, o.P1, s.P2):
		return true
	case o2 == Collinear && withinExtent(s.P1, o.P2, s.P2):
		return true
	case o3 == Collinear && withinExtent(o.P1, s.P1, o.P2):
		return true
	case o4 == Collinear && withinExtent(o.P1, s.P2, o.P2):
		return true
	}
	return false
}

// DistanceToSegment returns the minimum distance between s and o, which is
// zero when they intersect.
func (s Segment) DistanceToSegment(o Segment) float64 {
	if s.Intersects(o) {
		return 0
	}
	return math.Min(
		math.Min(s.DistanceFrom(o.P1), s.DistanceFrom(o.P2)),
		math.Min(o.DistanceFrom(s.P1), o.DistanceFrom(s.P2)),
	)
}

// String formats s as "(x1, y1)-(x2, y2)".
func (s Segment) String() string { return fmt.Sprintf("%v-%v", s.P1, s.P2) }

// withinExtent reports whether q lies inside the bounding box of p and r,
// checking each axis independently.
func withinExtent(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}
