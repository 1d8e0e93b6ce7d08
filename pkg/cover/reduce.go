package cover

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInfeasible is returned when some rack is seen by no candidate.
	ErrInfeasible = errors.New("coverage infeasible")

	// ErrNotProven is returned when the time limit passes before the
	// optimality gap is closed.
	ErrNotProven = errors.New("optimality not proven within time limit")
)

// Reduction is an equivalent, smaller set-cover instance. Every optimal
// cover of the reduced instance plus Forced is an optimal cover of the
// original matrix.
type Reduction struct {
	Forced  []int   // Original columns present in every optimal cover
	Columns []int   // Representative original column per reduced column
	ColRows [][]int // Reduced rows covered by each reduced column
	RowCols [][]int // Reduced columns covering each reduced row
}

// Rows returns the number of reduced rows.
func (r *Reduction) Rows() int { return len(r.RowCols) }

type column struct {
	rep  int
	rows bitset
}

// Reduce applies exact set-cover reductions to m until none applies.
func Reduce(m *Matrix) (*Reduction, error) {
	active := newBitset(m.rows)
	for i := 0; i < m.rows; i++ {
		active.set(i)
	}
	cols := distinctColumns(m)
	var forced []int

	for changed := true; changed; {
		changed = false

		// Uncoverable and essential rows.
		essential := map[int]bool{}
		for _, i := range active.members() {
			n, last := 0, -1
			for ci, c := range cols {
				if c.rows.has(i) {
					n++
					last = ci
					if n > 1 {
						break
					}
				}
			}
			switch n {
			case 0:
				return nil, fmt.Errorf("%w: rack %d is seen by no candidate", ErrInfeasible, i)
			case 1:
				essential[last] = true
			}
		}
		if len(essential) > 0 {
			kept := cols[:0]
			for ci, c := range cols {
				if essential[ci] {
					forced = append(forced, c.rep)
					active.andNot(c.rows)
				} else {
					kept = append(kept, c)
				}
			}
			cols = kept
			changed = true
		}

		cols = maskColumns(cols, active)

		if dropDominatedColumns(&cols) {
			changed = true
		}
		if dropDominatedRows(cols, active) {
			changed = true
		}
	}

	slices.Sort(forced)
	return buildReduction(forced, cols, active), nil
}

// distinctColumns returns one column per distinct non-empty row set,
// represented by its lowest original index.
func distinctColumns(m *Matrix) []column {
	seen := make(map[string]int)
	var cols []column
	for j := 0; j < m.cols; j++ {
		rows := newBitset(m.rows)
		for i := 0; i < m.rows; i++ {
			if m.data[i].has(j) {
				rows.set(i)
			}
		}
		if rows.empty() {
			continue
		}
		k := rows.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = len(cols)
		cols = append(cols, column{rep: j, rows: rows})
	}
	return cols
}

// maskColumns restricts every column to active rows, dropping empty
// columns and merging duplicates.
func maskColumns(cols []column, active bitset) []column {
	seen := make(map[string]bool, len(cols))
	out := cols[:0]
	for _, c := range cols {
		c.rows.and(active)
		if c.rows.empty() {
			continue
		}
		k := c.rows.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// dropDominatedColumns removes columns whose row set is a strict subset of
// another column's. Columns must already be distinct.
func dropDominatedColumns(cols *[]column) bool {
	cs := *cols
	slices.SortStableFunc(cs, func(a, b column) int {
		if d := b.rows.count() - a.rows.count(); d != 0 {
			return d
		}
		return a.rep - b.rep
	})
	kept := make([]column, 0, len(cs))
	for _, c := range cs {
		dominated := false
		for _, k := range kept {
			if c.rows.subsetOf(k.rows) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, c)
		}
	}
	changed := len(kept) != len(cs)
	*cols = kept
	return changed
}

// dropDominatedRows deactivates any row whose covering columns include all
// columns covering some other active row: covering the smaller row always
// covers the larger one too.
func dropDominatedRows(cols []column, active bitset) bool {
	rows := active.members()
	sets := make([]bitset, len(rows))
	for ri, i := range rows {
		sets[ri] = newBitset(len(cols))
		for ci, c := range cols {
			if c.rows.has(i) {
				sets[ri].set(ci)
			}
		}
	}
	changed := false
	for a := range rows {
		for b := range rows {
			if a == b || !active.has(rows[b]) || !active.has(rows[a]) {
				continue
			}
			// Row a is implied by row b when every cover of b covers a.
			if sets[b].subsetOf(sets[a]) {
				if sets[a].subsetOf(sets[b]) && a < b {
					continue // equal sets: keep the lower row
				}
				active.clear(rows[a])
				changed = true
			}
		}
	}
	return changed
}

func buildReduction(forced []int, cols []column, active bitset) *Reduction {
	rows := active.members()
	index := make(map[int]int, len(rows))
	for ri, i := range rows {
		index[i] = ri
	}
	r := &Reduction{
		Forced:  forced,
		Columns: make([]int, len(cols)),
		ColRows: make([][]int, len(cols)),
		RowCols: make([][]int, len(rows)),
	}
	for ci, c := range cols {
		r.Columns[ci] = c.rep
		for _, i := range c.rows.members() {
			ri, ok := index[i]
			if !ok {
				continue
			}
			r.ColRows[ci] = append(r.ColRows[ci], ri)
			r.RowCols[ri] = append(r.RowCols[ri], ci)
		}
	}
	return r
}
