package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

func floor(v float64) float64 { return math.Floor(v) }

// allVertical places full-height racks at uniformly sampled x positions.
func (g *generator) allVertical() error {
	b, eps := g.opts.Boundary, g.opts.Epsilon
	if b.Height() <= 2*eps {
		return fmt.Errorf("%w: boundary height %g leaves no rack length", ErrNoRoom, b.Height())
	}
	midY := b.Center().Y
	for i := 0; i < g.opts.Count; i++ {
		placed := false
		for attempt := 0; attempt < g.opts.MaxAttempts && !placed; attempt++ {
			x := b.Left + b.Width()*g.rng.Float64()
			if !g.pointClear(geom.Pt(x, midY), eps, nil) {
				continue
			}
			r := rack.NewFixed(geom.Seg(x, b.Top+eps, x, b.Bottom-eps), g.facing(true))
			g.arena.Add(r)
			g.opts.Logger.Debug("placed rack", "id", r.ID, "x", x, "direction", r.Dir)
			placed = true
		}
		if !placed {
			return fmt.Errorf("%w: rack %d after %d attempts", ErrSeedBudget, i, g.opts.MaxAttempts)
		}
	}
	return nil
}

// randomOrientations returns a sequence in which a horizontal rack never
// directly follows another horizontal rack. true means vertical.
func (g *generator) randomOrientations() []bool {
	out := make([]bool, g.opts.Count)
	for i := range out {
		if i == 0 || out[i-1] {
			out[i] = g.rng.Float64() <= 0.5
		} else {
			out[i] = true
		}
	}
	return out
}

// fixedOrientations forces the first, second and last racks vertical and
// inserts a horizontal connector after every run of two verticals.
func fixedOrientations(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		switch {
		case i == 0 || i == 1 || i == n-1:
			out[i] = true
		case out[i-1] && out[i-2]:
			out[i] = false
		default:
			out[i] = true
		}
	}
	return out
}

func (g *generator) randomFacings(orients []bool) []rack.Direction {
	dirs := make([]rack.Direction, len(orients))
	for i, v := range orients {
		dirs[i] = g.facing(v)
	}
	return dirs
}

// alternatingDirections faces horizontal racks up and alternates vertical
// racks left, right, left... The last vertical always faces right.
func alternatingDirections(orients []bool) []rack.Direction {
	dirs := make([]rack.Direction, len(orients))
	last := rack.Right
	for i, v := range orients {
		if !v {
			dirs[i] = rack.Up
			continue
		}
		dirs[i] = last.Opposite()
		if i == len(orients)-1 {
			dirs[i] = rack.Right
		}
		last = dirs[i]
	}
	return dirs
}

// hStyle lays racks out left to right. Vertical racks span the boundary
// height less epsilon at each end; horizontal racks sit at mid-height and
// share the remaining width equally.
func (g *generator) hStyle(orients []bool, directions func([]bool) []rack.Direction) error {
	b, eps := g.opts.Boundary, g.opts.Epsilon
	n := len(orients)
	if b.Height() <= 2*eps {
		return fmt.Errorf("%w: boundary height %g leaves no rack length", ErrNoRoom, b.Height())
	}

	horizontal := 0
	for _, v := range orients {
		if !v {
			horizontal++
		}
	}
	avail := b.Width() - eps - float64(n)*eps
	sep := avail / float64(n)
	if horizontal > 0 {
		sep = avail / float64(horizontal)
	}
	if sep <= 0 {
		return fmt.Errorf("%w: %d racks need more than width %g", ErrNoRoom, n, b.Width())
	}
	g.opts.Logger.Debug("h-style spacing", "horizontal", horizontal, "width", sep)

	dirs := directions(orients)
	lastX := b.Left
	midY := b.Center().Y
	for i, vertical := range orients {
		var seg geom.Segment
		switch {
		case vertical && horizontal > 0:
			lastX += eps
			seg = geom.Seg(lastX, b.Top+eps, lastX, b.Bottom-eps)
		case vertical:
			lastX += eps + sep
			seg = geom.Seg(lastX, b.Top+eps, lastX, b.Bottom-eps)
		default:
			seg = geom.Seg(lastX+eps, midY, lastX+eps+sep, midY)
			lastX += eps + sep
		}
		r := rack.NewFixed(seg, dirs[i])
		g.arena.Add(r)
		g.opts.Logger.Debug("placed rack", "id", r.ID, "segment", r.Seg, "direction", r.Dir)
	}
	return nil
}
