package rack

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/rackwatch/pkg/geom"
)

func TestGrowthPermissions(t *testing.T) {
	tests := []struct {
		name string
		seg  geom.Segment
		dir  Direction
		want [4]bool // up, down, left, right
	}{
		{"faces left grows vertically", geom.Seg(5, 5, 5, 5), Left, [4]bool{true, true, false, false}},
		{"faces right grows vertically", geom.Seg(5, 5, 5, 8), Right, [4]bool{true, true, false, false}},
		{"faces up grows horizontally", geom.Seg(5, 5, 5, 5), Up, [4]bool{false, false, true, true}},
		{"faces down grows horizontally", geom.Seg(4, 5, 6, 5), Down, [4]bool{false, false, true, true}},
		{"either on tall segment", geom.Seg(1, 0, 1, 9), Either, [4]bool{true, true, false, false}},
		{"both sides on wide segment", geom.Seg(0, 1, 9, 1), BothSides, [4]bool{false, false, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGrowable(tt.seg, tt.dir)
			for i, side := range Sides {
				if got := r.CanGrow(side); got != tt.want[i] {
					t.Errorf("CanGrow(%v) = %v, want %v", side, got, tt.want[i])
				}
			}
		})
	}
}

func TestGrowAndRevoke(t *testing.T) {
	r := NewGrowable(geom.Seg(5, 5, 5, 5), Right)
	r.Grow(GrowUp, 1)
	r.Grow(GrowDown, 1)
	r.Grow(GrowLeft, 1) // not permitted
	if want := geom.Seg(5, 4, 5, 6); r.Seg != want {
		t.Fatalf("Seg = %v, want %v", r.Seg, want)
	}

	r.Revoke(GrowUp)
	r.Grow(GrowUp, 1)
	if r.Seg.P2.Y != 6 {
		t.Errorf("revoked side grew to %v", r.Seg.P2.Y)
	}
	if !r.CanGrowAny() {
		t.Error("down should still be permitted")
	}
	r.Revoke(GrowDown)
	if r.CanGrowAny() {
		t.Error("all sides revoked")
	}

	r.Freeze()
	if r.Growable() || r.CanGrow(GrowUp) {
		t.Error("frozen rack must not grow")
	}
}

func TestExtendedDoesNotMutate(t *testing.T) {
	r := NewGrowable(geom.Seg(2, 3, 6, 3), Up)
	ext := r.Extended(GrowLeft, 1)
	if ext != geom.Seg(1, 3, 6, 3) {
		t.Errorf("Extended = %v", ext)
	}
	if r.Seg != geom.Seg(2, 3, 6, 3) {
		t.Errorf("Extended mutated rack: %v", r.Seg)
	}
}

func TestNormalize(t *testing.T) {
	r := NewFixed(geom.Seg(5, 10, 5, 2), Left)
	if r.Seg.P1 != geom.Pt(5, 2) {
		t.Errorf("P1 = %v, want lower endpoint", r.Seg.P1)
	}
	if r.Growable() {
		t.Error("fixed rack reports growable")
	}
}

func TestArena(t *testing.T) {
	a := NewArena(
		NewFixed(geom.Seg(0, 0, 0, 1), Left),
		NewFixed(geom.Seg(2, 0, 2, 1), Right),
	)
	if a.Len() != 2 || a.Get(1).ID != 1 || a.Get(5) != nil {
		t.Fatalf("unexpected arena state")
	}
	id := a.Add(NewGrowable(geom.Seg(4, 4, 4, 4), Up))
	if id != 2 {
		t.Errorf("Add ID = %d, want 2", id)
	}
	a.RemoveLast()
	if a.Len() != 2 {
		t.Errorf("Len after RemoveLast = %d", a.Len())
	}
	a.Add(NewGrowable(geom.Seg(4, 4, 4, 4), Up))
	a.Freeze()
	for _, r := range a.All() {
		if r.Growable() {
			t.Errorf("rack %d still growable after Freeze", r.ID)
		}
	}
}

func TestDirectionText(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right, Either, BothSides} {
		b, err := json.Marshal(d)
		if err != nil {
			t.Fatal(err)
		}
		var back Direction
		if err := json.Unmarshal(b, &back); err != nil || back != d {
			t.Errorf("round trip %v: got %v, err %v", d, back, err)
		}
		if got, err := ParseDirection(d.Label()); err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.Label(), got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("expected error for unknown direction")
	}
	if Up.Label() != "FROM ABOVE" || Right.Opposite() != Left {
		t.Error("labels or opposites wrong")
	}
}
