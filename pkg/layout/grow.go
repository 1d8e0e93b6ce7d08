package layout

import (
	"fmt"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

// growthOrder is the order in which a rack's ends are tried each step.
var growthOrder = [4]rack.Side{rack.GrowRight, rack.GrowLeft, rack.GrowUp, rack.GrowDown}

// tryGrow extends r by one step on side if the result is clear, and
// revokes the side otherwise.
func (g *generator) tryGrow(r *rack.Rack, side rack.Side) bool {
	if !r.CanGrow(side) {
		return false
	}
	if g.segmentClear(r.Extended(side, g.opts.GrowthStep), r) {
		r.Grow(side, g.opts.GrowthStep)
		return true
	}
	r.Revoke(side)
	return false
}

// growStep tries every permitted side of r once.
func (g *generator) growStep(r *rack.Rack) bool {
	grew := false
	for _, side := range growthOrder {
		if g.tryGrow(r, side) {
			grew = true
		}
	}
	return grew
}

// growTogether seeds every rack first, then grows all of them in lockstep
// rounds until no rack can extend.
func (g *generator) growTogether() error {
	b, eps, n := g.opts.Boundary, g.opts.Epsilon, g.opts.Count
	need := (1 + g.opts.AreaBuffer) * float64(n) * 4 * eps * eps
	if need > b.Area() {
		return fmt.Errorf("%w: need area %g, boundary has %g", ErrNoRoom, need, b.Area())
	}

	for i := 0; i < n; i++ {
		placed := false
		for attempt := 0; attempt < g.opts.MaxAttempts && !placed; attempt++ {
			p := g.randomPoint()
			if !g.pointClear(p, 2*eps, nil) {
				continue
			}
			dir := g.randomDirection()
			var seg geom.Segment
			if dir.Vertical() {
				seg = geom.Seg(p.X-eps/2, p.Y, p.X+eps/2, p.Y)
			} else {
				seg = geom.Seg(p.X, p.Y-eps/2, p.X, p.Y+eps/2)
			}
			r := rack.NewGrowable(seg, dir)
			g.arena.Add(r)
			g.opts.Logger.Debug("seeded rack", "id", r.ID, "at", p, "direction", dir)
			placed = true
		}
		if !placed {
			return fmt.Errorf("%w: rack %d after %d attempts", ErrSeedBudget, i, g.opts.MaxAttempts)
		}
	}

	rounds := 0
	for grew := true; grew; rounds++ {
		grew = false
		for _, r := range g.arena.All() {
			if g.growStep(r) {
				grew = true
			}
		}
	}
	g.opts.Logger.Debug("growth finished", "rounds", rounds)
	return nil
}

// growOneByOne seeds a point rack and grows it to completion before moving
// on. Racks no longer than epsilon are discarded and count as a failed
// attempt.
func (g *generator) growOneByOne() error {
	eps := g.opts.Epsilon
	for i := 0; i < g.opts.Count; i++ {
		placed := false
		for attempt := 0; attempt < g.opts.MaxAttempts && !placed; attempt++ {
			p := g.randomPoint()
			if !g.pointClear(p, eps, nil) {
				continue
			}
			r := rack.NewGrowable(geom.Segment{P1: p, P2: p}, g.randomDirection())
			for r.CanGrowAny() {
				g.growStep(r)
			}
			if r.Length() <= eps {
				g.opts.Logger.Debug("discarded short rack", "at", p, "length", r.Length())
				continue
			}
			g.arena.Add(r)
			g.opts.Logger.Debug("grew rack", "id", r.ID, "segment", r.Seg, "direction", r.Dir)
			placed = true
		}
		if !placed {
			return fmt.Errorf("%w: rack %d after %d attempts", ErrSeedBudget, i, g.opts.MaxAttempts)
		}
	}
	return nil
}
