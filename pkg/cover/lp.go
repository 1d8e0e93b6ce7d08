package cover

import (
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

const simplexTol = 1e-10

// relaxation is the LP bound of a subproblem.
type relaxation struct {
	value   float64         // Lower bound on the number of further columns
	x       map[int]float64 // LP value per reduced column, nil when the LP failed
	simplex bool            // Whether value came from the simplex
}

// relax bounds the cover of rows, where rowCols[i] lists the columns still
// allowed for the i-th uncovered row. The LP is
//
//	min Σx  s.t.  Σ_{j∈row} x_j − s_i = 1,  x, s ≥ 0
//
// in the standard form gonum's simplex expects. x ≤ 1 is implied at the
// optimum. When the simplex fails the bound falls back to a greedy count of
// rows with pairwise disjoint candidates.
func relax(rowCols [][]int) relaxation {
	if len(rowCols) == 0 {
		return relaxation{simplex: true}
	}

	index := map[int]int{}
	var cols []int
	for _, rc := range rowCols {
		for _, c := range rc {
			if _, ok := index[c]; !ok {
				index[c] = len(cols)
				cols = append(cols, c)
			}
		}
	}

	m, k := len(rowCols), len(cols)
	A := mat.NewDense(m, k+m, nil)
	b := make([]float64, m)
	c := make([]float64, k+m)
	for j := 0; j < k; j++ {
		c[j] = 1
	}
	for i, rc := range rowCols {
		for _, col := range rc {
			A.Set(i, index[col], 1)
		}
		A.Set(i, k+i, -1)
		b[i] = 1
	}

	opt, x, err := lp.Simplex(c, A, b, simplexTol, nil)
	if err != nil {
		return relaxation{value: float64(disjointRows(rowCols))}
	}
	vals := make(map[int]float64, k)
	for j, col := range cols {
		vals[col] = x[j]
	}
	return relaxation{value: opt, x: vals, simplex: true}
}

// disjointRows greedily counts rows whose candidate sets are pairwise
// disjoint, smallest first. Each such row needs its own column.
func disjointRows(rowCols [][]int) int {
	order := make([]int, len(rowCols))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return len(rowCols[a]) - len(rowCols[b]) })

	used := map[int]bool{}
	n := 0
	for _, i := range order {
		clash := false
		for _, c := range rowCols[i] {
			if used[c] {
				clash = true
				break
			}
		}
		if clash {
			continue
		}
		for _, c := range rowCols[i] {
			used[c] = true
		}
		n++
	}
	return n
}
