// Package grid partitions the boundary into cells and places one candidate
// guard at the center of each cell.
//
// Cell walls are the distinct x and y coordinates of rack endpoints (the
// "cross lines") plus the boundary edges. Only crosses strictly inside the
// boundary are kept, so the cells tile the boundary exactly with no
// zero-width slivers.
//
// The grid is derived state: [Grid.Build] recomputes cells and candidates
// from the cross sets, and [Grid.Refine] adds each cell's center to both
// sets before rebuilding. Cross sets only ever grow, so candidate counts
// never decrease across rounds.
package grid

import (
	"slices"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

// Guard is a candidate guard location. Selected is set only by the solver.
type Guard struct {
	Loc      geom.Point `json:"loc"`
	Selected bool       `json:"selected,omitempty"`
	Cell     int        `json:"-"` // Index into Cells()
}

// Grid holds the cross sets, cells and candidate guards for a rack arena.
type Grid struct {
	boundary geom.Rect
	arena    *rack.Arena
	xs, ys   map[float64]struct{}
	cells    []geom.Rect
	guards   []Guard
}

// New seeds the cross sets from every rack endpoint in arena and builds
// the initial cells.
func New(boundary geom.Rect, arena *rack.Arena) *Grid {
	g := &Grid{
		boundary: boundary,
		arena:    arena,
		xs:       make(map[float64]struct{}),
		ys:       make(map[float64]struct{}),
	}
	if arena != nil {
		for _, r := range arena.All() {
			for _, p := range r.Seg.Endpoints() {
				g.addCross(p)
			}
		}
	}
	g.Build()
	return g
}

// FromCrosses rebuilds a grid from explicit cross coordinates, for example
// ones restored from a snapshot.
func FromCrosses(boundary geom.Rect, arena *rack.Arena, xs, ys []float64) *Grid {
	g := New(boundary, arena)
	for _, x := range xs {
		g.addCross(geom.Pt(x, boundary.Top))
	}
	for _, y := range ys {
		g.addCross(geom.Pt(boundary.Left, y))
	}
	g.Build()
	return g
}

func (g *Grid) addCross(p geom.Point) {
	if p.X > g.boundary.Left && p.X < g.boundary.Right {
		g.xs[p.X] = struct{}{}
	}
	if p.Y > g.boundary.Top && p.Y < g.boundary.Bottom {
		g.ys[p.Y] = struct{}{}
	}
}

// Boundary returns the partitioned rectangle.
func (g *Grid) Boundary() geom.Rect { return g.boundary }

// Arena returns the racks the grid was derived from.
func (g *Grid) Arena() *rack.Arena { return g.arena }

// XCrosses returns the interior vertical cross coordinates in ascending order.
func (g *Grid) XCrosses() []float64 { return sortedKeys(g.xs) }

// YCrosses returns the interior horizontal cross coordinates in ascending order.
func (g *Grid) YCrosses() []float64 { return sortedKeys(g.ys) }

// Build recomputes cells and candidate guards from the cross sets. Cells
// are ordered column by column, bottom to top within a column. All
// selections are cleared.
func (g *Grid) Build() {
	xs := append(append([]float64{g.boundary.Left}, g.XCrosses()...), g.boundary.Right)
	ys := append(append([]float64{g.boundary.Top}, g.YCrosses()...), g.boundary.Bottom)

	g.cells = g.cells[:0]
	g.guards = g.guards[:0]
	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(ys); j++ {
			cell := geom.NewRect(geom.Pt(xs[i], ys[j]), geom.Pt(xs[i+1], ys[j+1]))
			g.guards = append(g.guards, Guard{Loc: cell.Center(), Cell: len(g.cells)})
			g.cells = append(g.cells, cell)
		}
	}
}

// Refine inserts the center of every current cell into both cross sets
// and rebuilds, splitting each cell into up to four.
func (g *Grid) Refine() {
	if len(g.cells) == 0 {
		g.Build()
	}
	for _, c := range g.cells {
		g.addCross(c.Center())
	}
	g.Build()
}

// Cells returns the current cell partition. The slice is owned by the grid.
func (g *Grid) Cells() []geom.Rect { return g.cells }

// Guards returns the candidate guards. The slice is owned by the grid.
func (g *Grid) Guards() []Guard { return g.guards }

// Len returns the number of candidate guards.
func (g *Grid) Len() int { return len(g.guards) }

// Locations returns the candidate guard positions in index order.
func (g *Grid) Locations() []geom.Point {
	out := make([]geom.Point, len(g.guards))
	for i, gd := range g.guards {
		out[i] = gd.Loc
	}
	return out
}

// Select marks the guards at the given indices as selected. Out-of-range
// indices are ignored.
func (g *Grid) Select(idx ...int) {
	for _, i := range idx {
		if i >= 0 && i < len(g.guards) {
			g.guards[i].Selected = true
		}
	}
}

// ClearSelection unselects every guard.
func (g *Grid) ClearSelection() {
	for i := range g.guards {
		g.guards[i].Selected = false
	}
}

// Selected returns copies of the selected guards in index order.
func (g *Grid) Selected() []Guard {
	var out []Guard
	for _, gd := range g.guards {
		if gd.Selected {
			out = append(out, gd)
		}
	}
	return out
}

// Lines returns one boundary-spanning segment per interior cross: vertical
// lines first, then horizontal ones.
func (g *Grid) Lines() []geom.Segment {
	b := g.boundary
	var out []geom.Segment
	for _, x := range g.XCrosses() {
		out = append(out, geom.Seg(x, b.Top, x, b.Bottom))
	}
	for _, y := range g.YCrosses() {
		out = append(out, geom.Seg(b.Left, y, b.Right, y))
	}
	return out
}

func sortedKeys(m map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
