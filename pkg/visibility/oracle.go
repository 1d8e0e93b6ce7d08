// Package visibility decides whether a guard location can watch a rack.
//
// The [Oracle] answers [Oracle.CanSee] for a fixed set of racks under a
// [Config] holding the guarding [Model] and the coverage [Mode].
//
// # Side Filter
//
// Under [PosersChoice] a rack facing RIGHT is visible only from guards with
// x strictly greater than the rack's x; LEFT, UP and DOWN are analogous.
// [SolversChoice] and [BothSides] skip the filter.
//
// # Occlusion
//
// The guard and the target's endpoints form the guarding triangle. In
// [Complete] mode any other rack touching that triangle blocks the guard.
// In [AllButDelta] mode each blocker's shadow on the target is measured and
// the guard is rejected only when a shadow exceeds Delta:
//
//   - no blocker endpoint inside: a crossing blocker may shadow the whole
//     target, so the target's length is compared with Delta
//   - both endpoints inside: the span between their projections onto the
//     target line is compared with Delta
//   - one endpoint inside: its projection is measured to the target
//     endpoint on the side where the blocker enters the triangle
//
// Rejection conditions have the form "measure > Delta", so raising Delta
// can only turn rejections into acceptances.
//
// # Collinear Guards
//
// A guard on the target's own line spans no triangle. Such guards are
// rejected as [Degenerate]; they are not treated as visible even when no
// rack touches the flat triangle. Grid cell centres never lie
// on a rack line, so candidate guards never hit this case.
//
// Candidate blockers come from an R-tree over rack bounding boxes; only
// racks whose boxes meet the triangle's box are examined.
package visibility

import (
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/dhconnelly/rtreego"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

// boxPad widens every bounding box so zero-width rack boxes are valid
// R-tree rectangles and touching boxes still meet.
const boxPad = 1e-6

// Config selects the guarding model and coverage mode.
type Config struct {
	Model  Model       `json:"guarding_model"`
	Mode   Mode        `json:"coverage"`
	Delta  float64     `json:"delta"`
	Logger *log.Logger `json:"-"`
}

// Verdict explains the outcome of a visibility check.
type Verdict int

const (
	Visible Verdict = iota
	WrongSide
	Degenerate
	Occluded
	ShadowTooLong
	UnknownRack
)

func (v Verdict) String() string {
	switch v {
	case Visible:
		return "visible"
	case WrongSide:
		return "wrong side"
	case Degenerate:
		return "collinear with rack"
	case Occluded:
		return "occluded"
	case ShadowTooLong:
		return "shadow exceeds delta"
	default:
		return "unknown rack"
	}
}

// Oracle answers visibility queries for a fixed rack arena.
type Oracle struct {
	cfg   Config
	racks []*rack.Rack
	tree  *rtreego.Rtree
	debug bool
}

type entry struct {
	id     rack.ID
	bounds rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.bounds }

// New indexes the racks in arena. The arena must not change afterwards.
func New(arena *rack.Arena, cfg Config) *Oracle {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o := &Oracle{
		cfg:   cfg,
		racks: arena.All(),
		debug: cfg.Logger.GetLevel() <= log.DebugLevel,
	}
	spatials := make([]rtreego.Spatial, 0, len(o.racks))
	for _, r := range o.racks {
		spatials = append(spatials, &entry{id: r.ID, bounds: box(r.Seg.Bounds())})
	}
	o.tree = rtreego.NewTree(2, 4, 16, spatials...)
	return o
}

// Config returns the oracle's configuration.
func (o *Oracle) Config() Config { return o.cfg }

// CanSee reports whether a guard at g can watch the rack with the given ID.
func (o *Oracle) CanSee(g geom.Point, id rack.ID) bool {
	return o.Check(g, id) == Visible
}

// Check is CanSee with the reason for a rejection.
func (o *Oracle) Check(g geom.Point, id rack.ID) Verdict {
	if int(id) < 0 || int(id) >= len(o.racks) {
		return UnknownRack
	}
	target := o.racks[id]
	v := o.check(g, target)
	if o.debug && v != Visible {
		o.cfg.Logger.Debug("guard rejected", "guard", g, "rack", id, "reason", v)
	}
	return v
}

func (o *Oracle) check(g geom.Point, target *rack.Rack) Verdict {
	if o.cfg.Model == PosersChoice && !onGuardedSide(g, target) {
		return WrongSide
	}
	t := target.Seg
	if geom.Orient(t.P1, t.P2, g) == geom.Collinear {
		return Degenerate
	}
	tri := geom.Triangle{A: g, B: t.P1, C: t.P2}
	for _, b := range o.blockers(tri, target.ID) {
		if v := o.occlusion(tri, t, b.Seg); v != Visible {
			return v
		}
	}
	return Visible
}

// onGuardedSide applies the strict side filter for a rack's direction.
// Either and BothSides racks accept any side.
func onGuardedSide(g geom.Point, r *rack.Rack) bool {
	p := r.Seg.P1
	switch r.Dir {
	case rack.Right:
		return g.X > p.X
	case rack.Left:
		return g.X < p.X
	case rack.Down:
		return g.Y < p.Y
	case rack.Up:
		return g.Y > p.Y
	}
	return true
}

// blockers returns the racks other than self whose boxes meet the
// triangle's box, in ID order.
func (o *Oracle) blockers(tri geom.Triangle, self rack.ID) []*rack.Rack {
	hits := o.tree.SearchIntersect(box(tri.Bounds()))
	ids := make([]rack.ID, 0, len(hits))
	for _, h := range hits {
		if e := h.(*entry); e.id != self {
			ids = append(ids, e.id)
		}
	}
	slices.Sort(ids)
	out := make([]*rack.Rack, len(ids))
	for i, id := range ids {
		out[i] = o.racks[id]
	}
	return out
}

// occlusion judges one blocker against the guarding triangle.
func (o *Oracle) occlusion(tri geom.Triangle, target, blocker geom.Segment) Verdict {
	if o.cfg.Mode == Complete {
		if tri.IntersectsSegment(blocker) {
			return Occluded
		}
		return Visible
	}

	in1 := tri.ContainsInterior(blocker.P1)
	in2 := tri.ContainsInterior(blocker.P2)
	var shadow float64
	switch {
	case !in1 && !in2:
		if !tri.IntersectsSegment(blocker) {
			return Visible
		}
		shadow = target.Length()
	case in1 && in2:
		s1 := project(tri.A, blocker.P1, target)
		s2 := project(tri.A, blocker.P2, target)
		if s1.IsUndefined() || s2.IsUndefined() {
			return Degenerate
		}
		shadow = s1.DistanceTo(s2)
	case in1:
		shadow = partialShadow(tri.A, target, blocker, blocker.P1)
	default:
		shadow = partialShadow(tri.A, target, blocker, blocker.P2)
	}
	if shadow > o.cfg.Delta {
		return ShadowTooLong
	}
	return Visible
}

// project returns where the ray from g through p meets the target's line.
func project(g, p geom.Point, target geom.Segment) geom.Point {
	return target.Line().Intersect(g.LineThrough(p))
}

// partialShadow measures the shadow cast by a blocker with exactly one
// endpoint (inside) in the triangle. The shadow runs from the projection
// of inside to the target endpoint whose guard edge the blocker crosses.
func partialShadow(g geom.Point, target, blocker geom.Segment, inside geom.Point) float64 {
	s := project(g, inside, target)
	if s.IsUndefined() {
		return math.Inf(1)
	}
	switch {
	case geom.Segment{P1: g, P2: target.P1}.Intersects(blocker):
		return target.P1.DistanceTo(s)
	case geom.Segment{P1: g, P2: target.P2}.Intersects(blocker):
		return target.P2.DistanceTo(s)
	}
	// The blocker leaves through the target itself.
	return target.Length()
}

// box converts r to a padded R-tree rectangle.
func box(r geom.Rect) rtreego.Rect {
	out, err := rtreego.NewRect(
		rtreego.Point{r.Left - boxPad, r.Top - boxPad},
		[]float64{r.Width() + 2*boxPad, r.Height() + 2*boxPad},
	)
	if err != nil {
		// Unreachable: padded lengths are always positive.
		panic(err)
	}
	return out
}
