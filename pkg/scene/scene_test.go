package scene

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
	"github.com/matzehuels/rackwatch/pkg/visibility"
)

func testScene(vis visibility.Config) *Scene {
	arena := rack.NewArena(
		rack.NewFixed(geom.Seg(20, 10, 20, 60), rack.Right),
		rack.NewFixed(geom.Seg(40, 30, 80, 30), rack.Up),
		rack.NewFixed(geom.Seg(60, 50, 60, 90), rack.BothSides),
		rack.NewFixed(geom.Seg(85, 20, 85, 70), rack.Either),
	)
	return New(geom.Rect{Right: 100, Bottom: 100}, 3, arena, vis)
}

func TestSnapshotFields(t *testing.T) {
	sc := testScene(visibility.Config{Model: visibility.PosersChoice, Mode: visibility.Complete, Delta: 10})
	sc.Grid.Select(0, 3)

	snap := sc.Snapshot("run-1", 2)
	if snap.NumRacks != 4 || len(snap.Racks) != 4 {
		t.Errorf("racks = %d/%d, want 4", snap.NumRacks, len(snap.Racks))
	}
	if snap.NumGuards != 2 {
		t.Errorf("guards = %d, want 2", snap.NumGuards)
	}
	if snap.Racks[0].Dir != "FROM RIGHT" || snap.Racks[2].Dir != "FROM BOTH SIDES" {
		t.Errorf("direction labels = %q, %q", snap.Racks[0].Dir, snap.Racks[2].Dir)
	}
	if snap.Model != "Poser's Choice" || snap.Coverage != "Complete Coverage" {
		t.Errorf("model/coverage = %q/%q", snap.Model, snap.Coverage)
	}
	if snap.Boundary.TopLeft != geom.Pt(0, 100) || snap.Boundary.BottomRight != geom.Pt(100, 0) {
		t.Errorf("boundary = %+v", snap.Boundary)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"delta":"NA"`) {
		t.Errorf("complete coverage should write delta NA: %s", b)
	}
}

func TestSnapshotDelta(t *testing.T) {
	sc := testScene(visibility.Config{Mode: visibility.AllButDelta, Delta: 7.5})
	b, err := json.Marshal(sc.Snapshot("", 0))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"delta":7.5`) {
		t.Errorf("delta missing: %s", b)
	}
	if !strings.Contains(string(b), `"coverage_requirement":"All-But-Delta Coverage"`) {
		t.Errorf("coverage label missing: %s", b)
	}
}

func TestFromSnapshotRoundTrip(t *testing.T) {
	sc := testScene(visibility.Config{Model: visibility.SolversChoice, Mode: visibility.AllButDelta, Delta: 4})
	sc.Grid.Refine()
	sc.Grid.Select(1, 5, 8)

	b, err := json.Marshal(sc.Snapshot("r", 1))
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		t.Fatal(err)
	}
	got, err := FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot: %v", err)
	}

	if got.Boundary != sc.Boundary || got.Epsilon != 3 {
		t.Errorf("boundary/eps = %v/%v", got.Boundary, got.Epsilon)
	}
	if got.Visibility.Model != visibility.SolversChoice || got.Visibility.Mode != visibility.AllButDelta || got.Visibility.Delta != 4 {
		t.Errorf("visibility = %+v", got.Visibility)
	}
	for i, r := range got.Racks.All() {
		want := sc.Racks.All()[i]
		if r.Seg != want.Seg || r.Dir != want.Dir {
			t.Errorf("rack %d = %v, want %v", i, r, want)
		}
	}
	if got.Grid.Len() != sc.Grid.Len() {
		t.Errorf("candidates = %d, want %d", got.Grid.Len(), sc.Grid.Len())
	}
	if n := len(got.SelectedGuards()); n != 3 {
		t.Errorf("selected = %d, want 3", n)
	}
}

func TestFromSnapshotRejects(t *testing.T) {
	base := testScene(visibility.Config{}).Snapshot("", 0)
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"model", func(s *Snapshot) { s.Model = "Nobody's Choice" }},
		{"coverage", func(s *Snapshot) { s.Coverage = "Partial" }},
		{"direction", func(s *Snapshot) { s.Racks[0].Dir = "FROM NOWHERE" }},
		{"delta", func(s *Snapshot) { s.Coverage = "All-But-Delta Coverage"; s.Delta = Delta{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base
			snap.Racks = append([]RackRecord(nil), base.Racks...)
			tt.mutate(&snap)
			if _, err := FromSnapshot(snap); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDeltaUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    Delta
		wantErr bool
	}{
		{`"NA"`, Delta{}, false},
		{`null`, Delta{}, false},
		{`12`, Delta{Value: 12, Valid: true}, false},
		{`"twelve"`, Delta{}, true},
		{`true`, Delta{}, true},
	}
	for _, tt := range tests {
		var d Delta
		err := json.Unmarshal([]byte(tt.in), &d)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && d != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.in, d, tt.want)
		}
	}
}

func count(ps []Primitive, k Kind) int {
	n := 0
	for _, p := range ps {
		if p.Kind == k {
			n++
		}
	}
	return n
}

func TestDrawablesTicks(t *testing.T) {
	posers := testScene(visibility.Config{Model: visibility.PosersChoice}).Drawables(DrawOptions{})
	// Right and Up get one tick, BothSides two, Either none.
	if n := count(posers, KindTick); n != 4 {
		t.Errorf("ticks = %d, want 4", n)
	}
	if n := count(posers, KindRack); n != 4 {
		t.Errorf("racks = %d, want 4", n)
	}
	if posers[0].Kind != KindBoundary {
		t.Errorf("first primitive = %v, want boundary", posers[0].Kind)
	}

	solvers := testScene(visibility.Config{Model: visibility.SolversChoice}).Drawables(DrawOptions{})
	if n := count(solvers, KindTick); n != 0 {
		t.Errorf("ticks under solver's choice = %d, want 0", n)
	}
}

func TestTickPointsAtGuardedSide(t *testing.T) {
	sc := testScene(visibility.Config{})
	for _, p := range sc.Drawables(DrawOptions{}) {
		if p.Kind != KindTick {
			continue
		}
		if l := p.Seg.Length(); l < TickLength-1e-9 || l > TickLength+1e-9 {
			t.Errorf("tick length = %v", l)
		}
	}
	// The first rack faces right: its tick starts at (20, 35) and ends to
	// the right.
	ps := sc.Drawables(DrawOptions{})
	tick := ps[2]
	if tick.Kind != KindTick || tick.Seg.P1 != geom.Pt(20, 35) || tick.Seg.P2 != geom.Pt(20.5, 35) {
		t.Errorf("tick = %+v", tick)
	}
}

func TestDrawablesLayers(t *testing.T) {
	sc := testScene(visibility.Config{})
	sc.Grid.Select(0)

	plain := sc.Drawables(DrawOptions{})
	if count(plain, KindGridLine) != 0 || count(plain, KindGuard) != 1 {
		t.Errorf("plain: lines %d guards %d", count(plain, KindGridLine), count(plain, KindGuard))
	}
	full := sc.Drawables(DrawOptions{Grid: true, Candidates: true})
	if got, want := count(full, KindGridLine), len(sc.Grid.Lines()); got != want {
		t.Errorf("grid lines = %d, want %d", got, want)
	}
	if got, want := count(full, KindGuard), sc.Grid.Len(); got != want {
		t.Errorf("guards = %d, want %d", got, want)
	}
}

func TestDrawablesNormalize(t *testing.T) {
	arena := rack.NewArena(rack.NewFixed(geom.Seg(50, 100, 150, 100), rack.Up))
	sc := New(geom.Rect{Left: 0, Top: 0, Right: 200, Bottom: 400}, 3, arena, visibility.Config{Model: visibility.SolversChoice})
	for _, p := range sc.Drawables(DrawOptions{}) {
		if p.Kind == KindRack && p.Seg != geom.Seg(25, 25, 75, 25) {
			t.Errorf("rack in logical space = %v", p.Seg)
		}
	}
}

func TestCaption(t *testing.T) {
	sc := testScene(visibility.Config{})
	sc.Grid.Select(0, 1)
	if got, want := sc.Caption(), "# Racks = 4, # Guards = 2"; got != want {
		t.Errorf("Caption() = %q, want %q", got, want)
	}
}
