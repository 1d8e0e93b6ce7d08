package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

// tolerance absorbs floating error when comparing distances to epsilon.
const tolerance = 1e-9

// Validate checks that every rack lies inside boundary, keeps at least eps
// from its edges and at least eps from every other rack.
func Validate(racks []*rack.Rack, boundary geom.Rect, eps float64) error {
	for i, r := range racks {
		if !boundary.Expand(tolerance).ContainsSegment(r.Seg) {
			return fmt.Errorf("%w: rack %d %v outside boundary", ErrClearance, r.ID, r.Seg)
		}
		d := math.Min(boundary.DistanceFrom(r.Seg.P1), boundary.DistanceFrom(r.Seg.P2))
		if d < eps-tolerance {
			return fmt.Errorf("%w: rack %d is %g from boundary", ErrClearance, r.ID, d)
		}
		for _, o := range racks[i+1:] {
			if d := r.Seg.DistanceToSegment(o.Seg); d < eps-tolerance {
				return fmt.Errorf("%w: racks %d and %d are %g apart", ErrClearance, r.ID, o.ID, d)
			}
		}
	}
	return nil
}
