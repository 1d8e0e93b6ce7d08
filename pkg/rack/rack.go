// Package rack models racks: axis-aligned segments that must be watched
// from a given side.
//
// A [Rack] is either fixed or growable. Growable racks carry a [Growth]
// value holding four permission flags. Only the two flags along the rack's
// length start set, so a rack that faces left or right grows up and down,
// and a rack that faces up or down grows left and right. Layout strategies
// call [Rack.Grow] one unit at a time and [Rack.Revoke] when an extension
// is rejected; once layout completes, [Rack.Freeze] drops the growth state.
//
// Racks are owned by an [Arena], which hands out stable [ID]s so that the
// grid, the coverage matrix and snapshots can refer to racks by index.
package rack

import (
	"fmt"

	"github.com/matzehuels/rackwatch/pkg/geom"
)

// ID identifies a rack within its [Arena].
type ID int

// Side is a growth end of a rack.
type Side int

const (
	GrowUp Side = iota
	GrowDown
	GrowLeft
	GrowRight
)

// Sides lists all growth ends in a fixed order.
var Sides = [4]Side{GrowUp, GrowDown, GrowLeft, GrowRight}

func (s Side) String() string {
	switch s {
	case GrowUp:
		return "up"
	case GrowDown:
		return "down"
	case GrowLeft:
		return "left"
	case GrowRight:
		return "right"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Growth holds the per-side extension permissions of a growable rack.
type Growth struct {
	allowed [4]bool
}

// Any reports whether at least one side may still grow.
func (g *Growth) Any() bool {
	return g.allowed[GrowUp] || g.allowed[GrowDown] || g.allowed[GrowLeft] || g.allowed[GrowRight]
}

// Rack is a segment with a guarding direction. Seg is normalized so that
// P1 is the lower-left endpoint.
type Rack struct {
	ID  ID           `json:"id"`
	Seg geom.Segment `json:"segment"`
	Dir Direction    `json:"direction"`

	growth *Growth
}

// NewFixed returns a rack that cannot grow.
func NewFixed(seg geom.Segment, dir Direction) *Rack {
	return &Rack{Seg: normalize(seg), Dir: dir}
}

// NewGrowable returns a rack whose growth permissions follow its
// orientation. Racks facing Either or BothSides take their growth axis
// from the segment itself: a segment at least as tall as it is wide is
// treated as vertical.
func NewGrowable(seg geom.Segment, dir Direction) *Rack {
	r := &Rack{Seg: normalize(seg), Dir: dir, growth: &Growth{}}
	if r.growsVertically() {
		r.growth.allowed[GrowUp] = true
		r.growth.allowed[GrowDown] = true
	} else {
		r.growth.allowed[GrowLeft] = true
		r.growth.allowed[GrowRight] = true
	}
	return r
}

func (r *Rack) growsVertically() bool {
	switch {
	case r.Dir.Horizontal():
		return true
	case r.Dir.Vertical():
		return false
	}
	dx := r.Seg.P2.X - r.Seg.P1.X
	dy := r.Seg.P2.Y - r.Seg.P1.Y
	return abs(dy) >= abs(dx)
}

// IsVertical reports whether the rack runs along the y-axis.
func (r *Rack) IsVertical() bool { return r.growsVertically() }

// Growable reports whether the rack still carries growth state.
func (r *Rack) Growable() bool { return r.growth != nil }

// CanGrow reports whether side is still permitted.
func (r *Rack) CanGrow(side Side) bool {
	return r.growth != nil && r.growth.allowed[side]
}

// CanGrowAny reports whether any side is still permitted.
func (r *Rack) CanGrowAny() bool { return r.growth != nil && r.growth.Any() }

// Revoke permanently forbids growth on side.
func (r *Rack) Revoke(side Side) {
	if r.growth != nil {
		r.growth.allowed[side] = false
	}
}

// Extended returns the segment that growing side by step would produce,
// without modifying the rack.
func (r *Rack) Extended(side Side, step float64) geom.Segment {
	s := r.Seg
	switch side {
	case GrowUp:
		s.P2.Y += step
	case GrowDown:
		s.P1.Y -= step
	case GrowLeft:
		s.P1.X -= step
	case GrowRight:
		s.P2.X += step
	}
	return s
}

// Grow replaces the segment with [Rack.Extended]. It is a no-op when side
// is not permitted.
func (r *Rack) Grow(side Side, step float64) {
	if r.CanGrow(side) {
		r.Seg = r.Extended(side, step)
	}
}

// Freeze discards growth state, making the rack fixed.
func (r *Rack) Freeze() { r.growth = nil }

// Length returns the rack's segment length.
func (r *Rack) Length() float64 { return r.Seg.Length() }

// String formats the rack for logs.
func (r *Rack) String() string {
	return fmt.Sprintf("rack %d %v %s", r.ID, r.Seg, r.Dir)
}

func normalize(s geom.Segment) geom.Segment {
	if s.P2.X < s.P1.X || (s.P2.X == s.P1.X && s.P2.Y < s.P1.Y) {
		s.P1, s.P2 = s.P2, s.P1
	}
	return s
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
