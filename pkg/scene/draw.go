package scene

import (
	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

// LogicalSize is the side length of the logical drawing space.
const LogicalSize = 100.0

// TickLength is the length of a rack's direction tick in logical units.
const TickLength = 0.5

// Kind identifies a drawable primitive.
type Kind int

const (
	KindBoundary Kind = iota
	KindRack
	KindTick
	KindGridLine
	KindGuard
)

func (k Kind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindRack:
		return "rack"
	case KindTick:
		return "tick"
	case KindGridLine:
		return "gridline"
	case KindGuard:
		return "guard"
	}
	return "unknown"
}

// Primitive is one shape in logical space, y pointing up. Boundary uses
// Rect, Rack, Tick and GridLine use Seg, Guard uses At and Selected.
type Primitive struct {
	Kind     Kind
	Rect     geom.Rect
	Seg      geom.Segment
	At       geom.Point
	Selected bool
}

// DrawOptions selects optional layers.
type DrawOptions struct {
	Grid       bool // Draw grid lines
	Candidates bool // Draw unselected candidate guards
}

// Drawables returns the scene's primitives in back-to-front order: the
// boundary, racks with their ticks, grid lines, then guards. Ticks are
// drawn only under [visibility.PosersChoice].
func (s *Scene) Drawables(opts DrawOptions) []Primitive {
	tf := newTransform(s.Boundary)
	out := []Primitive{{Kind: KindBoundary, Rect: geom.Rect{Right: LogicalSize, Bottom: LogicalSize}}}

	ticks := s.Visibility.Model == visibility.PosersChoice
	for _, r := range s.Racks.All() {
		seg := tf.segment(r.Seg)
		out = append(out, Primitive{Kind: KindRack, Seg: seg})
		if !ticks {
			continue
		}
		for _, t := range tickMarks(seg, r) {
			out = append(out, Primitive{Kind: KindTick, Seg: t})
		}
	}

	if opts.Grid {
		for _, l := range s.Grid.Lines() {
			out = append(out, Primitive{Kind: KindGridLine, Seg: tf.segment(l)})
		}
	}

	for _, g := range s.Grid.Guards() {
		if !g.Selected && !opts.Candidates {
			continue
		}
		out = append(out, Primitive{Kind: KindGuard, At: tf.point(g.Loc), Selected: g.Selected})
	}
	return out
}

// tickMarks returns the perpendicular marks from the rack's midpoint
// toward its guarded side. Either has none, BothSides has two.
func tickMarks(seg geom.Segment, r *rack.Rack) []geom.Segment {
	mid := seg.Midpoint()
	offset := func(d rack.Direction) geom.Segment {
		var v geom.Point
		switch d {
		case rack.Up:
			v = geom.Pt(0, TickLength)
		case rack.Down:
			v = geom.Pt(0, -TickLength)
		case rack.Left:
			v = geom.Pt(-TickLength, 0)
		case rack.Right:
			v = geom.Pt(TickLength, 0)
		}
		return geom.Segment{P1: mid, P2: mid.Add(v)}
	}

	switch r.Dir {
	case rack.Either:
		return nil
	case rack.BothSides:
		if r.IsVertical() {
			return []geom.Segment{offset(rack.Left), offset(rack.Right)}
		}
		return []geom.Segment{offset(rack.Up), offset(rack.Down)}
	}
	return []geom.Segment{offset(r.Dir)}
}

// transform maps boundary coordinates onto [0, LogicalSize] per axis.
type transform struct {
	origin geom.Point
	sx, sy float64
}

func newTransform(b geom.Rect) transform {
	tf := transform{origin: b.TopLeft(), sx: 1, sy: 1}
	if w := b.Width(); w > 0 {
		tf.sx = LogicalSize / w
	}
	if h := b.Height(); h > 0 {
		tf.sy = LogicalSize / h
	}
	return tf
}

func (t transform) point(p geom.Point) geom.Point {
	return geom.Pt((p.X-t.origin.X)*t.sx, (p.Y-t.origin.Y)*t.sy)
}

func (t transform) segment(s geom.Segment) geom.Segment {
	return geom.Segment{P1: t.point(s.P1), P2: t.point(s.P2)}
}
