package geom

// Triangle is the triangle with corners A, B and C.
type Triangle struct {
	A, B, C Point
}

// Edges returns the three edges AB, BC and CA.
func (t Triangle) Edges() [3]Segment {
	return [3]Segment{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
}

// ContainsInterior reports whether p lies strictly inside t. Points on an
// edge are excluded, and a degenerate triangle contains nothing.
func (t Triangle) ContainsInterior(p Point) bool {
	o1 := Orient(t.A, t.B, p)
	o2 := Orient(t.B, t.C, p)
	o3 := Orient(t.C, t.A, p)
	if o1 == Collinear || o2 == Collinear || o3 == Collinear {
		return false
	}
	return o1 == o2 && o2 == o3
}

// IntersectsSegment reports whether s crosses or touches an edge of t, or
// has an endpoint strictly inside it.
func (t Triangle) IntersectsSegment(s Segment) bool {
	for _, e := range t.Edges() {
		if e.Intersects(s) {
			return true
		}
	}
	return t.ContainsInterior(s.P1) || t.ContainsInterior(s.P2)
}

// Bounds returns the bounding rectangle of t.
func (t Triangle) Bounds() Rect {
	r := NewRect(t.A, t.B)
	r = NewRect(Point{min(r.Left, t.C.X), min(r.Top, t.C.Y)}, Point{max(r.Right, t.C.X), max(r.Bottom, t.C.Y)})
	return r
}
