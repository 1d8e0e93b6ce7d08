package scene

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/grid"
	"github.com/matzehuels/rackwatch/pkg/rack"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

// NotApplicable is written in place of delta under complete coverage.
const NotApplicable = "NA"

// Snapshot is the serializable record of a solved (or unsolved) scene.
// Labels are the display forms: "FROM ABOVE", "Poser's Choice",
// "Complete Coverage".
type Snapshot struct {
	RunID     string        `json:"run_id,omitempty"`
	Round     int           `json:"round"`
	Boundary  Bounds        `json:"boundary_rect"`
	Epsilon   float64       `json:"epsilon"`
	NumRacks  int           `json:"num_racks"`
	Racks     []RackRecord  `json:"racks"`
	NumGuards int           `json:"num_guards"`
	Guards    []GuardRecord `json:"guards"`
	Model     string        `json:"guarding_model"`
	Coverage  string        `json:"coverage_requirement"`
	Delta     Delta         `json:"delta"`
	Grid      *Crosses      `json:"grid,omitempty"`
}

// Bounds stores a rectangle by its corners in y-up terms: TopLeft has the
// larger y.
type Bounds struct {
	TopLeft     geom.Point `json:"top_left"`
	BottomRight geom.Point `json:"bottom_right"`
}

// Rect converts b back to a [geom.Rect].
func (b Bounds) Rect() geom.Rect { return geom.NewRect(b.TopLeft, b.BottomRight) }

func boundsOf(r geom.Rect) Bounds {
	return Bounds{
		TopLeft:     geom.Pt(r.Left, r.Bottom),
		BottomRight: geom.Pt(r.Right, r.Top),
	}
}

// RackRecord is one rack in a snapshot.
type RackRecord struct {
	Seg Endpoints `json:"seg"`
	Dir string    `json:"guarding_dir"`
}

// Endpoints is a segment stored as two named points.
type Endpoints struct {
	Pt1 geom.Point `json:"pt1"`
	Pt2 geom.Point `json:"pt2"`
}

// GuardRecord is one selected guard in a snapshot.
type GuardRecord struct {
	Loc geom.Point `json:"loc"`
}

// Crosses holds the grid's interior cross coordinates so a restored scene
// keeps its refinement level.
type Crosses struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Delta is the coverage tolerance, encoded as a number or as "NA" when it
// does not apply.
type Delta struct {
	Value float64
	Valid bool
}

// MarshalJSON writes the number or "NA".
func (d Delta) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return json.Marshal(NotApplicable)
	}
	return json.Marshal(d.Value)
}

// UnmarshalJSON accepts a number, "NA" or null.
func (d *Delta) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*d = Delta{}
	case float64:
		*d = Delta{Value: x, Valid: true}
	case string:
		if x != NotApplicable {
			return fmt.Errorf("delta: unexpected string %q", x)
		}
		*d = Delta{}
	default:
		return fmt.Errorf("delta: unexpected value %v", v)
	}
	return nil
}

// Snapshot records the scene and its selected guards.
func (s *Scene) Snapshot(runID string, round int) Snapshot {
	racks := make([]RackRecord, 0, s.Racks.Len())
	for _, r := range s.Racks.All() {
		racks = append(racks, RackRecord{
			Seg: Endpoints{Pt1: r.Seg.P1, Pt2: r.Seg.P2},
			Dir: r.Dir.Label(),
		})
	}
	selected := s.SelectedGuards()
	guards := make([]GuardRecord, 0, len(selected))
	for _, g := range selected {
		guards = append(guards, GuardRecord{Loc: g.Loc})
	}

	snap := Snapshot{
		RunID:     runID,
		Round:     round,
		Boundary:  boundsOf(s.Boundary),
		Epsilon:   s.Epsilon,
		NumRacks:  len(racks),
		Racks:     racks,
		NumGuards: len(guards),
		Guards:    guards,
		Model:     s.Visibility.Model.Label(),
		Coverage:  s.Visibility.Mode.Label(),
		Grid:      &Crosses{X: s.Grid.XCrosses(), Y: s.Grid.YCrosses()},
	}
	if s.Visibility.Mode == visibility.AllButDelta {
		snap.Delta = Delta{Value: s.Visibility.Delta, Valid: true}
	}
	return snap
}

// FromSnapshot rebuilds a scene. Racks are restored fixed in the stored
// order; grid crosses and guard selections are restored when present.
func FromSnapshot(snap Snapshot) (*Scene, error) {
	model, err := visibility.ParseModel(snap.Model)
	if err != nil {
		return nil, err
	}
	mode, err := visibility.ParseMode(snap.Coverage)
	if err != nil {
		return nil, err
	}
	if mode == visibility.AllButDelta && !snap.Delta.Valid {
		return nil, fmt.Errorf("%s requires a numeric delta", mode.Label())
	}

	arena := rack.NewArena()
	for i, rr := range snap.Racks {
		dir, err := rack.ParseDirection(rr.Dir)
		if err != nil {
			return nil, fmt.Errorf("rack %d: %w", i, err)
		}
		arena.Add(rack.NewFixed(geom.Segment{P1: rr.Seg.Pt1, P2: rr.Seg.Pt2}, dir))
	}

	vis := visibility.Config{Model: model, Mode: mode}
	if snap.Delta.Valid {
		vis.Delta = snap.Delta.Value
	}
	boundary := snap.Boundary.Rect()
	sc := New(boundary, snap.Epsilon, arena, vis)
	if snap.Grid != nil {
		sc.Grid = grid.FromCrosses(boundary, arena, snap.Grid.X, snap.Grid.Y)
	}

	locs := sc.Grid.Locations()
	for _, g := range snap.Guards {
		if i := slices.Index(locs, g.Loc); i >= 0 {
			sc.Grid.Select(i)
		}
	}
	return sc, nil
}
