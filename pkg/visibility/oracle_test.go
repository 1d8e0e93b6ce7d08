package visibility

import (
	"testing"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/grid"
	"github.com/matzehuels/rackwatch/pkg/layout"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

func TestSingleRackSideFilter(t *testing.T) {
	arena := rack.NewArena(rack.NewFixed(geom.Seg(50, 10, 50, 90), rack.Right))
	o := New(arena, Config{Model: PosersChoice, Mode: Complete})

	if !o.CanSee(geom.Pt(60, 50), 0) {
		t.Error("guard at (60,50) should see a right-facing rack at x=50")
	}
	if got := o.Check(geom.Pt(40, 50), 0); got != WrongSide {
		t.Errorf("guard at (40,50): %v, want wrong side", got)
	}
	if got := o.Check(geom.Pt(50, 95), 0); got != WrongSide {
		t.Errorf("guard on the rack line: %v, want wrong side", got)
	}
}

func TestSideFilterDirections(t *testing.T) {
	tests := []struct {
		name  string
		rack  *rack.Rack
		guard geom.Point
		want  bool
	}{
		{"left sees smaller x", rack.NewFixed(geom.Seg(50, 10, 50, 90), rack.Left), geom.Pt(40, 50), true},
		{"left rejects larger x", rack.NewFixed(geom.Seg(50, 10, 50, 90), rack.Left), geom.Pt(60, 50), false},
		{"up sees larger y", rack.NewFixed(geom.Seg(10, 50, 90, 50), rack.Up), geom.Pt(50, 60), true},
		{"up rejects smaller y", rack.NewFixed(geom.Seg(10, 50, 90, 50), rack.Up), geom.Pt(50, 40), false},
		{"down sees smaller y", rack.NewFixed(geom.Seg(10, 50, 90, 50), rack.Down), geom.Pt(50, 40), true},
		{"down rejects larger y", rack.NewFixed(geom.Seg(10, 50, 90, 50), rack.Down), geom.Pt(50, 60), false},
		{"either accepts any side", rack.NewFixed(geom.Seg(10, 50, 90, 50), rack.Either), geom.Pt(50, 40), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := New(rack.NewArena(tt.rack), Config{Model: PosersChoice})
			if got := o.CanSee(tt.guard, 0); got != tt.want {
				t.Errorf("CanSee = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOtherModelsSkipSideFilter(t *testing.T) {
	arena := rack.NewArena(rack.NewFixed(geom.Seg(50, 10, 50, 90), rack.Right))
	for _, m := range []Model{SolversChoice, BothSides} {
		o := New(arena, Config{Model: m})
		if !o.CanSee(geom.Pt(40, 50), 0) || !o.CanSee(geom.Pt(60, 50), 0) {
			t.Errorf("%v: both sides should be visible", m)
		}
		if got := o.Check(geom.Pt(50, 95), 0); got != Degenerate {
			t.Errorf("%v: collinear guard = %v, want degenerate", m, got)
		}
	}
}

func threeRacks() *rack.Arena {
	return rack.NewArena(
		rack.NewFixed(geom.Seg(20, 10, 20, 90), rack.Right),
		rack.NewFixed(geom.Seg(50, 10, 50, 90), rack.Right),
		rack.NewFixed(geom.Seg(80, 10, 80, 90), rack.Left),
	)
}

func TestOcclusionCompleteVersusDelta(t *testing.T) {
	guard := geom.Pt(35, 50)

	complete := New(threeRacks(), Config{Model: PosersChoice, Mode: Complete})
	if got := complete.Check(guard, 2); got != Occluded {
		t.Errorf("complete: guard behind rack@50 sees rack@80: %v", got)
	}
	if !complete.CanSee(guard, 0) {
		t.Error("complete: nothing blocks rack@20")
	}

	delta := New(threeRacks(), Config{Model: PosersChoice, Mode: AllButDelta, Delta: 80})
	if !delta.CanSee(guard, 2) {
		t.Error("delta 80: rack@80 should be visible past rack@50")
	}

	tight := New(threeRacks(), Config{Model: PosersChoice, Mode: AllButDelta, Delta: 79})
	if got := tight.Check(guard, 2); got != ShadowTooLong {
		t.Errorf("delta 79: %v, want shadow too long", got)
	}
}

// The target is a left-facing rack at x=80 seen from (40,50). Each fixture
// has a mirror image across y=50, exercising the first-endpoint-inside and
// second-endpoint-inside cases separately.
func TestPartialShadowMirrorFixtures(t *testing.T) {
	target := rack.NewFixed(geom.Seg(80, 10, 80, 90), rack.Left)
	guard := geom.Pt(40, 50)

	tests := []struct {
		name    string
		blocker geom.Segment
		shadow  float64 // exact shadow length on the target
	}{
		{"first endpoint inside, enters over upper edge", geom.Seg(70, 40, 70, 85), 160.0 / 3},
		{"second endpoint inside, enters over lower edge", geom.Seg(70, 15, 70, 60), 160.0 / 3},
		{"horizontal, enters over lower edge", geom.Seg(50, 30, 70, 30), 40.0 / 3},
		{"horizontal mirror, enters over upper edge", geom.Seg(50, 70, 70, 70), 40.0 / 3},
		{"both endpoints inside", geom.Seg(70, 40, 70, 60), 80.0 / 3},
		{"crossing with no endpoint inside", geom.Seg(60, 10, 60, 90), 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arena := rack.NewArena(
				rack.NewFixed(target.Seg, target.Dir),
				rack.NewFixed(tt.blocker, rack.Up),
			)
			below := New(arena, Config{Model: PosersChoice, Mode: AllButDelta, Delta: tt.shadow - 0.01})
			if got := below.Check(guard, 0); got != ShadowTooLong {
				t.Errorf("delta just below shadow: %v, want shadow too long", got)
			}
			above := New(arena, Config{Model: PosersChoice, Mode: AllButDelta, Delta: tt.shadow + 0.01})
			if got := above.Check(guard, 0); got != Visible {
				t.Errorf("delta just above shadow: %v, want visible", got)
			}
			complete := New(arena, Config{Model: PosersChoice, Mode: Complete})
			if complete.CanSee(guard, 0) {
				t.Error("complete mode must reject any blocker")
			}
		})
	}
}

func TestDeltaMonotonic(t *testing.T) {
	box := geom.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100}
	arena, err := layout.Generate(layout.GrowTogether, layout.Options{
		Boundary: box, Epsilon: 3, Count: 12,
	}, layout.NewRand(5))
	if err != nil {
		t.Fatal(err)
	}
	g := grid.New(box, arena)
	g.Refine()

	deltas := []float64{0, 2, 5, 10, 20, 40, 100}
	var prev [][]bool
	for _, d := range deltas {
		o := New(arena, Config{Model: PosersChoice, Mode: AllButDelta, Delta: d})
		cur := make([][]bool, arena.Len())
		for _, r := range arena.All() {
			cur[r.ID] = make([]bool, g.Len())
			for j, loc := range g.Locations() {
				cur[r.ID][j] = o.CanSee(loc, r.ID)
				if prev != nil && prev[r.ID][j] && !cur[r.ID][j] {
					t.Fatalf("delta %g removed entry (%d,%d)", d, r.ID, j)
				}
			}
		}
		prev = cur
	}
}

func TestCompleteImpliesDelta(t *testing.T) {
	arena := threeRacks()
	complete := New(arena, Config{Mode: Complete})
	delta := New(arena, Config{Mode: AllButDelta, Delta: 0})
	for x := 5.0; x < 100; x += 10 {
		for y := 5.0; y < 100; y += 10 {
			for _, r := range arena.All() {
				p := geom.Pt(x, y)
				if complete.CanSee(p, r.ID) && !delta.CanSee(p, r.ID) {
					t.Errorf("(%v, rack %d): complete visible but delta 0 rejects", p, r.ID)
				}
			}
		}
	}
}

func TestUnknownRack(t *testing.T) {
	o := New(threeRacks(), Config{})
	if got := o.Check(geom.Pt(1, 1), 7); got != UnknownRack {
		t.Errorf("Check = %v, want unknown rack", got)
	}
}

func TestParseModelAndMode(t *testing.T) {
	if m, err := ParseModel("Poser's Choice"); err != nil || m != PosersChoice {
		t.Errorf("ParseModel label: %v %v", m, err)
	}
	if m, err := ParseModel("solvers"); err != nil || m != SolversChoice {
		t.Errorf("ParseModel name: %v %v", m, err)
	}
	if _, err := ParseMode("partial"); err == nil {
		t.Error("expected error")
	}
	if AllButDelta.Label() != "All-But-Delta Coverage" {
		t.Errorf("Label = %q", AllButDelta.Label())
	}
}
