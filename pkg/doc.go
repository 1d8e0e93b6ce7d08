// Package pkg provides the core libraries for rackwatch guard placement.
//
// # Overview
//
// Rackwatch models camera placement in a room full of equipment racks. Racks
// are axis-aligned segments that must be watched from a given side; guards
// are candidate camera positions on a grid. The pkg directory is organized
// into three areas:
//
//  1. Geometry and domain model: [geom], [rack], [layout], [grid]
//  2. Coverage: [visibility] decides which guard sees which rack, [cover]
//     finds a minimum guard set
//  3. Infrastructure: [pipeline], [scene], [io], [render], [cache], [store],
//     [config], [observability]
//
// # Architecture
//
// The data flow of a run:
//
//	layout strategy
//	     ↓
//	[rack] arena (frozen segments)
//	     ↓
//	[grid] candidate guards ──→ [visibility] oracle
//	     ↓                          ↓
//	[cover] matrix → reductions → branch and bound
//	     ↓
//	[scene] snapshot + drawables → SVG/PNG/JSON
//	     ↓
//	[grid] refine, next round
//
// # Quick Start
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/matzehuels/rackwatch/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	opts := pipeline.DefaultOptions()
//	opts.Racks = 10
//	result, err := runner.Execute(context.Background(), opts, nil)
//	if err != nil {
//	    return err
//	}
//	for _, r := range result.Rounds {
//	    fmt.Println(r.Round, r.Candidates, len(r.Guards))
//	}
//
// # Error Handling
//
// Packages return coded errors from [errors]: LAYOUT_FAILURE when racks
// cannot be placed, SOLVER_FAILURE when a cover is infeasible or not proven
// within the time budget, and input/config/format codes for bad files and
// options. Degenerate geometry never errors; it yields an undefined point.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/geom
// [rack]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/rack
// [layout]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/layout
// [grid]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/grid
// [visibility]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/visibility
// [cover]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/cover
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/pipeline
// [scene]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/scene
// [io]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/rackwatch/pkg/errors
package pkg
