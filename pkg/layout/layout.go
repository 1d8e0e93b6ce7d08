// Package layout places racks inside a boundary rectangle.
//
// Every strategy produces racks that keep at least Epsilon of clearance from
// the boundary and from each other. [Generate] checks the result with
// [Validate] before returning it, and any failure is reported as a
// LAYOUT_FAILURE error with no partial layout.
//
// # Strategies
//
//   - [AllVertical]: parallel full-height racks at random x positions.
//   - [HStyleRandom]: vertical racks with horizontal connectors that never
//     follow each other, directions drawn at random.
//   - [HStyleFixed]: a fixed V V H V V H ... pattern whose vertical racks
//     alternate left and right so neighbours cover each other.
//   - [GrowTogether]: short seeds grown one unit at a time in lockstep.
//   - [GrowOneByOne]: each rack seeded and grown to completion before the
//     next one is placed.
//
// # Growth
//
// A growth step extends a permitted end by [Options.GrowthStep]. The step is
// kept only when the whole extended segment still clears the boundary and
// every other rack; otherwise that end's permission is revoked for good.
// Growth is monotonic inside a finite boundary, so it always terminates.
//
// # Randomness
//
// Strategies draw from the *rand.Rand passed to [Generate]. The same seed
// and options always yield the same racks; see [NewRand].
package layout

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

var (
	// ErrNoRoom is returned when the boundary cannot hold the requested
	// racks, either by the up-front area check or because derived spacing
	// is not positive.
	ErrNoRoom = errors.New("not enough room for requested racks")

	// ErrSeedBudget is returned when no valid seed point was found for a
	// rack within [Options.MaxAttempts] samples.
	ErrSeedBudget = errors.New("seed attempt budget exhausted")

	// ErrClearance is returned by [Validate] when a rack leaves the boundary
	// or comes closer than epsilon to the boundary or another rack.
	ErrClearance = errors.New("clearance violated")

	// ErrUnknownStrategy is returned for a strategy name not in [Strategies].
	ErrUnknownStrategy = errors.New("unknown layout strategy")
)

// Strategy names a rack placement algorithm.
type Strategy string

const (
	AllVertical  Strategy = "all-vertical"
	HStyleRandom Strategy = "h-style-random"
	HStyleFixed  Strategy = "h-style-fixed"
	GrowTogether Strategy = "grow-together"
	GrowOneByOne Strategy = "grow-one-by-one"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{AllVertical, HStyleRandom, HStyleFixed, GrowTogether, GrowOneByOne}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Default option values.
const (
	DefaultMaxAttempts = 1000
	DefaultGrowthStep  = 1.0
	DefaultAreaBuffer  = 0.1
)

// Options configures a layout run.
type Options struct {
	Boundary    geom.Rect   // Region racks must stay inside
	Epsilon     float64     // Minimum clearance
	Count       int         // Number of racks requested
	MaxAttempts int         // Seed samples per rack before giving up
	GrowthStep  float64     // Extension per growth step
	AreaBuffer  float64     // Slack factor for the grow-together area check; zero means DefaultAreaBuffer, negative means none
	Logger      *log.Logger // Diagnostic sink (discarded when nil)
}

func (o *Options) setDefaults() {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.GrowthStep <= 0 {
		o.GrowthStep = DefaultGrowthStep
	}
	switch {
	case o.AreaBuffer == 0:
		o.AreaBuffer = DefaultAreaBuffer
	case o.AreaBuffer < 0:
		o.AreaBuffer = 0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (o *Options) validate() error {
	if o.Boundary.Area() <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "boundary must have positive area")
	}
	if err := errs.ValidatePositive("epsilon", o.Epsilon); err != nil {
		return err
	}
	return errs.ValidateCount("rack count", o.Count, 1)
}

// NewRand returns the deterministic generator used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Generate places opts.Count racks using strategy s and returns them frozen
// in a new arena.
func Generate(s Strategy, opts Options, rng *rand.Rand) (*rack.Arena, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(0)
	}

	start := time.Now()
	g := &generator{opts: opts, rng: rng, arena: rack.NewArena()}

	var err error
	switch s {
	case AllVertical:
		err = g.allVertical()
	case HStyleRandom:
		err = g.hStyle(g.randomOrientations(), g.randomFacings)
	case HStyleFixed:
		err = g.hStyle(fixedOrientations(opts.Count), alternatingDirections)
	case GrowTogether:
		err = g.growTogether()
	case GrowOneByOne:
		err = g.growOneByOne()
	default:
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, ErrUnknownStrategy, "strategy %q", s)
	}
	if err != nil {
		opts.Logger.Warn("layout failed", "strategy", s, "placed", g.arena.Len(), "requested", opts.Count, "error", err)
		return nil, errs.Wrap(errs.ErrCodeLayoutFailure, err, "%s layout of %d racks", s, opts.Count)
	}

	g.arena.Freeze()
	if err := Validate(g.arena.All(), opts.Boundary, opts.Epsilon); err != nil {
		return nil, errs.Wrap(errs.ErrCodeLayoutFailure, err, "%s layout of %d racks", s, opts.Count)
	}

	opts.Logger.Info("layout complete",
		"strategy", s,
		"racks", g.arena.Len(),
		"duration", time.Since(start).Round(time.Microsecond))
	return g.arena, nil
}

type generator struct {
	opts  Options
	rng   *rand.Rand
	arena *rack.Arena
}

// pointClear reports whether p lies inside the boundary with at least tol
// clearance from it and from every rack other than self.
func (g *generator) pointClear(p geom.Point, tol float64, self *rack.Rack) bool {
	b := g.opts.Boundary
	if !b.Contains(p) || b.DistanceFrom(p) < tol {
		return false
	}
	for _, r := range g.arena.All() {
		if r != self && r.Seg.DistanceFrom(p) < tol {
			return false
		}
	}
	return true
}

// segmentClear reports whether s stays inside the boundary with epsilon
// clearance from it and from every rack other than self.
func (g *generator) segmentClear(s geom.Segment, self *rack.Rack) bool {
	b, eps := g.opts.Boundary, g.opts.Epsilon
	if !b.ContainsSegment(s) || b.DistanceFrom(s.P1) < eps || b.DistanceFrom(s.P2) < eps {
		return false
	}
	for _, r := range g.arena.All() {
		if r != self && r.Seg.DistanceToSegment(s) < eps {
			return false
		}
	}
	return true
}

// randomPoint samples an integer-offset point inside the boundary.
func (g *generator) randomPoint() geom.Point {
	b := g.opts.Boundary
	return geom.Pt(
		b.Left+floor(b.Width()*g.rng.Float64()),
		b.Top+floor(b.Height()*g.rng.Float64()),
	)
}

// randomDirection picks one of the four axis directions with equal odds.
func (g *generator) randomDirection() rack.Direction {
	switch u := g.rng.Float64(); {
	case u < 0.25:
		return rack.Right
	case u < 0.50:
		return rack.Down
	case u < 0.75:
		return rack.Left
	default:
		return rack.Up
	}
}

// facing picks a direction valid for a rack of the given orientation.
func (g *generator) facing(vertical bool) rack.Direction {
	u := g.rng.Float64()
	if vertical {
		if u <= 0.5 {
			return rack.Right
		}
		return rack.Left
	}
	if u <= 0.5 {
		return rack.Up
	}
	return rack.Down
}
