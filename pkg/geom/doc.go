// Package geom provides the planar geometry kernel used by rackwatch.
//
// All values are small immutable structs passed by value, and every operation
// is pure. The kernel covers exactly what rack layout and visibility need:
//
//   - [Point] with vector arithmetic, rotation and distance
//   - [Line] in slope/intercept form, or vertical with a fixed x
//   - [Segment] with clamped point distance, orientation and intersection
//   - [Rect], an axis-aligned rectangle stored as left/top/right/bottom
//   - [Triangle] with a strict interior test and a segment crossing test
//
// # Degenerate Geometry
//
// Operations that have no well-defined answer, such as intersecting two
// parallel lines, return the [Undefined] point instead of an error. Callers
// must check [Point.IsUndefined] before using such a result. Zero-length
// segments are handled without dividing by zero.
//
// # Orientation
//
// [Orient] classifies a point against a directed segment using the sign of
// (q.y−p.y)(r.x−q.x) − (q.x−p.x)(r.y−q.y): positive is [Clockwise], negative
// is [CounterClockwise] and zero is [Collinear]. Segment intersection and the
// triangle interior test are both built on it.
package geom
