package cover

import (
	"container/heap"
	"context"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/rackwatch/pkg/errors"
)

// Default solver settings.
const (
	DefaultGap       = 0.05
	DefaultTimeLimit = 60 * time.Second
)

// integralTol is how far an LP value may sit from 0 or 1 and still count
// as integral.
const integralTol = 1e-6

// Status describes how a solve ended.
type Status int

const (
	// Optimal means the cover is within the configured gap of optimal.
	Optimal Status = iota
	// NotProven means the time limit passed before the gap closed.
	NotProven
	// Infeasible means some rack is seen by no candidate.
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case NotProven:
		return "not proven"
	case Infeasible:
		return "infeasible"
	}
	return "unknown"
}

// Solution is the outcome of a solve.
type Solution struct {
	Selected  []int         `json:"selected"`  // Chosen guard columns, ascending
	Status    Status        `json:"status"`    // How the solve ended
	Objective int           `json:"objective"` // len(Selected)
	Bound     int           `json:"bound"`     // Proven lower bound on the optimum
	Nodes     int           `json:"nodes"`     // Search nodes expanded
	Duration  time.Duration `json:"duration"`  // Wall-clock solve time
}

// Solver finds a minimum guard set for a coverage matrix.
type Solver interface {
	Solve(ctx context.Context, m *Matrix) (*Solution, error)
}

// BranchAndBound is an exact set-cover solver. The zero value uses
// [DefaultGap] and [DefaultTimeLimit].
type BranchAndBound struct {
	// Gap is the accepted relative gap (incumbent−bound)/incumbent.
	Gap float64
	// TimeLimit bounds the search. Zero means DefaultTimeLimit.
	TimeLimit time.Duration
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
	// Progress, if set, is called periodically with the number of nodes
	// explored, nodes pruned and the current incumbent size.
	Progress func(explored, pruned, best int)
}

var _ Solver = BranchAndBound{}

// Solve returns a minimum cover of m. Infeasible instances and searches
// that run out of time return a SOLVER_FAILURE error; the Solution is still
// returned alongside for diagnostics. Context cancellation returns the
// context's error.
func (s BranchAndBound) Solve(ctx context.Context, m *Matrix) (*Solution, error) {
	start := time.Now()
	gap, limit, logger := s.Gap, s.TimeLimit, s.Logger
	if gap < 0 {
		gap = 0
	}
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if m.Rows() == 0 {
		return &Solution{Status: Optimal, Selected: []int{}}, nil
	}

	red, err := Reduce(m)
	if err != nil {
		sol := &Solution{Status: Infeasible, Duration: time.Since(start)}
		return sol, errs.Wrap(errs.ErrCodeSolverFailure, err, "minimum guard set")
	}
	logger.Debug("reduced instance",
		"racks", m.Rows(), "candidates", m.Cols(),
		"rows", red.Rows(), "columns", len(red.Columns), "forced", len(red.Forced))

	search := &search{
		red:      red,
		gap:      gap,
		deadline: start.Add(limit),
		progress: s.Progress,
	}
	status, err := search.run(ctx)
	if err != nil {
		return nil, err
	}

	sel := slices.Clone(red.Forced)
	for _, c := range search.best {
		sel = append(sel, red.Columns[c])
	}
	slices.Sort(sel)

	sol := &Solution{
		Selected:  sel,
		Status:    status,
		Objective: len(sel),
		Bound:     len(red.Forced) + search.bound,
		Nodes:     search.explored,
		Duration:  time.Since(start),
	}
	logger.Debug("search finished",
		"status", status, "guards", sol.Objective, "bound", sol.Bound,
		"nodes", sol.Nodes, "duration", sol.Duration.Round(time.Millisecond))

	if status != Optimal {
		return sol, errs.Wrap(errs.ErrCodeSolverFailure, ErrNotProven,
			"best cover %d, bound %d after %s", sol.Objective, sol.Bound, limit)
	}
	return sol, nil
}

// node is a partial assignment: chosen columns are in the cover, excluded
// columns may not be used.
type node struct {
	chosen   []int
	excluded bitset
	bound    float64 // len(chosen) + LP bound
	branch   []int   // Candidates of the row to branch on, best first
	depth    int
}

type nodeQueue []*node

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	return q[i].depth > q[j].depth
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x any)   { *q = append(*q, x.(*node)) }
func (q *nodeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	*q = old[:len(old)-1]
	return n
}

type search struct {
	red      *Reduction
	gap      float64
	deadline time.Time
	progress func(explored, pruned, best int)

	best     []int
	bound    int
	explored int
	pruned   int
}

func ceilBound(v float64) int { return int(math.Ceil(v - integralTol)) }

// gapClosed reports whether the incumbent is within the relative gap of
// lower.
func (s *search) gapClosed(lower int) bool {
	inc := len(s.best)
	if inc == 0 {
		return true
	}
	return float64(inc-lower)/float64(inc) <= s.gap
}

func (s *search) run(ctx context.Context) (Status, error) {
	if s.red.Rows() == 0 {
		return Optimal, nil
	}
	s.best = Greedy(s.red)

	root, done := s.evaluate(nil, newBitset(len(s.red.Columns)), 0)
	if done {
		s.bound = len(s.best)
		return Optimal, nil
	}
	if root == nil {
		// The reduction guarantees feasibility, so the greedy cover stands.
		s.bound = len(s.best)
		return Optimal, nil
	}

	q := &nodeQueue{root}
	for q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return NotProven, err
		}
		lower := ceilBound((*q)[0].bound)
		s.bound = min(lower, len(s.best))
		if s.gapClosed(lower) {
			return Optimal, nil
		}
		if time.Now().After(s.deadline) {
			return NotProven, nil
		}

		n := heap.Pop(q).(*node)
		if ceilBound(n.bound) >= len(s.best) {
			s.pruned++
			continue
		}
		s.explored++
		if s.progress != nil && s.explored%256 == 0 {
			s.progress(s.explored, s.pruned, len(s.best))
		}

		excluded := n.excluded.clone()
		for _, c := range n.branch {
			chosen := append(slices.Clone(n.chosen), c)
			child, complete := s.evaluate(chosen, excluded.clone(), n.depth+1)
			excluded.set(c)
			if complete || child == nil {
				continue
			}
			if ceilBound(child.bound) < len(s.best) {
				heap.Push(q, child)
			} else {
				s.pruned++
			}
		}
	}
	s.bound = len(s.best)
	return Optimal, nil
}

// evaluate computes the bound and branching row of a partial assignment.
// It records any complete or LP-integral cover it finds as the incumbent
// and reports complete=true when chosen already covers every row. A nil
// node means the assignment cannot be completed.
func (s *search) evaluate(chosen []int, excluded bitset, depth int) (*node, bool) {
	covered := newBitset(s.red.Rows())
	for _, c := range chosen {
		for _, ri := range s.red.ColRows[c] {
			covered.set(ri)
		}
	}

	var rowCols [][]int
	branchRow := -1
	for ri, cols := range s.red.RowCols {
		if covered.has(ri) {
			continue
		}
		allowed := make([]int, 0, len(cols))
		for _, c := range cols {
			if !excluded.has(c) {
				allowed = append(allowed, c)
			}
		}
		if len(allowed) == 0 {
			return nil, false
		}
		if branchRow < 0 || len(allowed) < len(rowCols[branchRow]) {
			branchRow = len(rowCols)
		}
		rowCols = append(rowCols, allowed)
	}
	if len(rowCols) == 0 {
		s.offer(chosen)
		return nil, true
	}

	rel := relax(rowCols)
	if rel.x != nil {
		if extra, ok := integralColumns(rel.x); ok {
			s.offer(append(slices.Clone(chosen), extra...))
		}
	}

	branch := slices.Clone(rowCols[branchRow])
	if rel.x != nil {
		slices.SortStableFunc(branch, func(a, b int) int {
			switch xa, xb := rel.x[a], rel.x[b]; {
			case xa > xb:
				return -1
			case xa < xb:
				return 1
			}
			return 0
		})
	}
	return &node{
		chosen:   chosen,
		excluded: excluded,
		bound:    float64(len(chosen)) + rel.value,
		branch:   branch,
		depth:    depth,
	}, false
}

// offer replaces the incumbent if cover is smaller.
func (s *search) offer(cover []int) {
	if s.best == nil || len(cover) < len(s.best) {
		s.best = slices.Clone(cover)
		slices.Sort(s.best)
	}
}

// integralColumns returns the columns at 1 when every LP value is 0 or 1.
func integralColumns(x map[int]float64) ([]int, bool) {
	var out []int
	for c, v := range x {
		switch {
		case math.Abs(v) <= integralTol:
		case math.Abs(v-1) <= integralTol:
			out = append(out, c)
		default:
			return nil, false
		}
	}
	slices.Sort(out)
	return out, true
}
