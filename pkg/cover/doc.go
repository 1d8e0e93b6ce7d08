// Package cover builds the rack-by-guard coverage matrix and solves the
// minimum guard-set problem on it.
//
// # Coverage Matrix
//
// [Build] evaluates a visibility oracle for every (rack, candidate) pair and
// stores the answers in a [Matrix] with one row per rack and one column per
// candidate guard. This is the expensive step: each pair scans the rack's
// potential occluders.
//
// # Minimum Set Cover
//
// Choosing the fewest guards so that every rack has at least one covering
// guard is minimum set cover: one binary variable per candidate, one
// "at least one" constraint per rack, and the count of chosen candidates
// as the objective.
//
// [BranchAndBound] solves it exactly:
//
//  1. [Reduce] applies rules that never change the optimum: a rack no
//     candidate sees makes the problem infeasible; duplicate and dominated
//     candidates are dropped; a rack seen by a single candidate forces it;
//     a rack whose watchers are a superset of another rack's is dropped.
//  2. A greedy cover provides the first incumbent.
//  3. Best-first search bounds each node with the linear relaxation
//     min Σx s.t. Ax ≥ 1, x ≥ 0, solved with gonum's simplex, and branches
//     on the rack with the fewest remaining candidates.
//
// The search stops once the relative gap between the incumbent and the
// best open bound is within [BranchAndBound.Gap]. If the time limit passes
// first, Solve returns a SOLVER_FAILURE wrapping [ErrNotProven] together with
// the incumbent for diagnostics. Callers must not use that incumbent as a
// result.
//
// # Usage
//
//	m, err := cover.Build(ctx, arena, grid.Locations(), oracle)
//	solver := cover.BranchAndBound{
//	    Gap:       0.05,
//	    TimeLimit: 60 * time.Second,
//	    Progress: func(explored, pruned, best int) {
//	        fmt.Printf("explored %d, pruned %d, best=%d\n", explored, pruned, best)
//	    },
//	}
//	sol, err := solver.Solve(ctx, m)
package cover
